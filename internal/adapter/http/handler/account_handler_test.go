package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

type accountServiceStub struct {
	getOrCreateFn func(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error)
	getFn         func(ctx context.Context, id string) (*domain.Account, error)
	getByHolderFn func(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error)
	listFn        func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) GetOrCreateAccount(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error) {
	return s.getOrCreateFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetAccountByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	return s.getByHolderFn(ctx, accountType, holderID)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func newAccountStub() *accountServiceStub {
	return &accountServiceStub{
		getOrCreateFn: func(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error) {
			return &domain.Account{ID: "acc"}, nil
		},
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return &domain.Account{ID: id}, nil
		},
		getByHolderFn: func(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error) {
			return &domain.Account{AccountType: accountType, HolderID: holderID}, nil
		},
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			return []*domain.Account{}, nil
		},
	}
}

func TestAccountHandler_GetOrCreate_Success(t *testing.T) {
	account := &domain.Account{
		ID:          "acc-1",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
		HolderName:  "Sara Ali",
		Balance:     decimal.Zero,
	}

	var captured usecase.GetOrCreateAccountInput
	stub := newAccountStub()
	stub.getOrCreateFn = func(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error) {
		captured = input
		return account, nil
	}
	h := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.GetOrCreateAccountRequest{
		AccountType: "patient",
		HolderID:    "patient-1",
		HolderName:  "Sara Ali",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.GetOrCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountType != domain.AccountTypePatient || captured.HolderID != "patient-1" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.AccountType != "patient" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_GetOrCreate_InvalidJSON(t *testing.T) {
	stub := newAccountStub()
	stub.getOrCreateFn = func(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error) {
		t.Fatal("GetOrCreateAccount should not be called for invalid payload")
		return nil, nil
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	h.GetOrCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_GetOrCreate_DomainError(t *testing.T) {
	stub := newAccountStub()
	stub.getOrCreateFn = func(ctx context.Context, input usecase.GetOrCreateAccountInput) (*domain.Account, error) {
		return nil, domain.ErrInvalidAccountType
	}
	h := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.GetOrCreateAccountRequest{AccountType: "warehouse"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.GetOrCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	stub := newAccountStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Account, error) {
		if id != "acc-1" {
			t.Fatalf("expected id acc-1, got %s", id)
		}
		return &domain.Account{ID: "acc-1"}, nil
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	stub := newAccountStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_GetByHolder(t *testing.T) {
	stub := newAccountStub()
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/by-holder/doctor/doc-1", nil)
	req = setChiURLParam(req, "type", "doctor")
	req = setChiURLParam(req, "holderID", "doc-1")
	rec := httptest.NewRecorder()

	h.GetByHolder(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountType != "doctor" || resp.HolderID != "doc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := newAccountStub()
	stub.listFn = func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
		if input.Limit != 5 || input.Offset != 2 {
			t.Fatalf("expected limit=5 offset=2, got %+v", input)
		}
		return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}
