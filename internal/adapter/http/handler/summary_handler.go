package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/usecase"
)

// SummaryHandler serves the reporting views.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC *usecase.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// Patient reports a patient's billed, paid, and outstanding figures.
func (h *SummaryHandler) Patient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summary, err := h.summaryUC.GetPatientSummary(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get patient summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Doctor reports a doctor's earnings, withdrawals, and available balance.
func (h *SummaryHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summary, err := h.summaryUC.GetDoctorSummary(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get doctor summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Clinic reports clinic-wide revenue, shares, expenses, and net profit.
func (h *SummaryHandler) Clinic(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryUC.GetClinicSummary(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get clinic summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Supplier reports purchases, payments, and the balance owed to a supplier.
func (h *SummaryHandler) Supplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summary, err := h.summaryUC.GetSupplierSummary(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get supplier summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Statement returns an account and its transactions newest first.
func (h *SummaryHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	statement, err := h.summaryUC.GetAccountStatement(r.Context(), usecase.GetAccountStatementInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account statement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountStatementFromUseCase(statement))
}

// Overview aggregates accounts by type.
func (h *SummaryHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.summaryUC.GetAccountsOverview(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get accounts overview", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Cashflow reports revenue against expenses per month.
func (h *SummaryHandler) Cashflow(w http.ResponseWriter, r *http.Request) {
	months := parseIntQuery(r, "months", 6)

	rows, err := h.summaryUC.GetMonthlyCashflow(r.Context(), months)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get monthly cashflow", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, rows)
}
