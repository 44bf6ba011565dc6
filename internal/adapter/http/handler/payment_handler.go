package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/usecase"
)

// PaymentHandler handles payment, withdrawal, supplier, and expense requests.
type PaymentHandler struct {
	paymentUC *usecase.PaymentUseCase
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a patient payment and its revenue-split fan-out.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.CreatePayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentResultFromUseCase(result))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// ListByPatient lists a patient's payments.
func (h *PaymentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")
	if patientID == "" {
		writeError(w, http.StatusBadRequest, "missing patient ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	payments, err := h.paymentUC.ListPaymentsByPatient(r.Context(), usecase.ListPaymentsInput{
		PatientID: patientID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list payments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}

// Withdraw pays out part of a doctor's accrued earnings.
func (h *PaymentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		writeError(w, http.StatusBadRequest, "missing doctor ID", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.WithdrawDoctorEarnings(r.Context(), req.ToUseCaseInput(doctorID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to withdraw earnings", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalResultFromUseCase(result))
}

// RecordPurchase accrues a purchase against a supplier's account.
func (h *PaymentHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "id")
	if supplierID == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	var req dto.SupplierPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.paymentUC.RecordSupplierPurchase(r.Context(), req.ToUseCaseInput(supplierID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record purchase", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// PaySupplier settles part of what the clinic owes a supplier.
func (h *PaymentHandler) PaySupplier(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "id")
	if supplierID == "" {
		writeError(w, http.StatusBadRequest, "missing supplier ID", "")
		return
	}

	var req dto.SupplierPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.PaySupplier(r.Context(), req.ToUseCaseInput(supplierID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to pay supplier", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalResultFromUseCase(result))
}

// RecordExpense records an operating cost.
func (h *PaymentHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.paymentUC.RecordExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}
