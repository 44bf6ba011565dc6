package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetOrCreateAccount(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	registryUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(registryUC AccountService) *AccountHandler {
	return &AccountHandler{registryUC: registryUC}
}

// GetOrCreate opens an account for a holder, or returns the existing one.
func (h *AccountHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.GetOrCreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.registryUC.GetOrCreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get or create account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.registryUC.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByHolder looks up an account by its (type, holder) pair.
func (h *AccountHandler) GetByHolder(w http.ResponseWriter, r *http.Request) {
	accountType := chi.URLParam(r, "type")
	holderID := chi.URLParam(r, "holderID")
	if accountType == "" || holderID == "" {
		writeError(w, http.StatusBadRequest, "missing account type or holder ID", "")
		return
	}

	account, err := h.registryUC.GetAccountByHolder(r.Context(), domain.AccountType(accountType), holderID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.registryUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list accounts", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
