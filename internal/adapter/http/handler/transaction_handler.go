package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/usecase"
)

// TransactionHandler handles ledger transaction HTTP requests.
type TransactionHandler struct {
	postingUC *usecase.PostingUseCase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(postingUC *usecase.PostingUseCase) *TransactionHandler {
	return &TransactionHandler{postingUC: postingUC}
}

// Post posts a transaction to the ledger.
func (h *TransactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.postingUC.PostTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	transaction, err := h.postingUC.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Reverse posts a compensating transaction for an earlier one.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.ReverseTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversal, err := h.postingUC.ReverseTransaction(r.Context(), id, req.Reason)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reverse transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(reversal))
}

// ListByAccount lists an account's transactions newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.postingUC.ListTransactionsByAccount(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}
