package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/usecase"
)

// ReconciliationHandler exposes balance replay checks.
type ReconciliationHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC *usecase.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Account replays one account's transactions against its stored balance.
func (h *ReconciliationHandler) Account(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.reconciliationUC.ReconcileAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultFromUseCase(result))
}

// All replays every account and reports drift.
func (h *ReconciliationHandler) All(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.ReconcileAllAccounts(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile accounts", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
