package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// GetOrCreateAccountRequest represents a request to open or fetch an account.
type GetOrCreateAccountRequest struct {
	AccountType string `json:"account_type"`
	HolderID    string `json:"holder_id"`
	HolderName  string `json:"holder_name"`
}

// ToUseCaseInput converts to use case input.
func (r *GetOrCreateAccountRequest) ToUseCaseInput() usecase.GetOrCreateAccountInput {
	return usecase.GetOrCreateAccountInput{
		AccountType: domain.AccountType(r.AccountType),
		HolderID:    r.HolderID,
		HolderName:  r.HolderName,
	}
}

// PostTransactionRequest represents a request to post a ledger transaction.
type PostTransactionRequest struct {
	AccountID       string          `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostTransactionRequest) ToUseCaseInput() usecase.PostTransactionInput {
	return usecase.PostTransactionInput{
		AccountID:       r.AccountID,
		TransactionType: domain.TransactionType(r.TransactionType),
		Amount:          r.Amount,
		Description:     r.Description,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
		TransactionDate: r.TransactionDate,
	}
}

// ReverseTransactionRequest represents a request to reverse a transaction.
type ReverseTransactionRequest struct {
	Reason string `json:"reason"`
}

// CreateAppointmentRequest represents a request to book an appointment.
type CreateAppointmentRequest struct {
	PatientID       string          `json:"patient_id"`
	DoctorID        string          `json:"doctor_id"`
	TreatmentID     string          `json:"treatment_id"`
	AppointmentDate time.Time       `json:"appointment_date"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Notes           string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAppointmentRequest) ToUseCaseInput() usecase.CreateAppointmentInput {
	return usecase.CreateAppointmentInput{
		PatientID:       r.PatientID,
		DoctorID:        r.DoctorID,
		TreatmentID:     r.TreatmentID,
		AppointmentDate: r.AppointmentDate,
		TotalCost:       r.TotalCost,
		Notes:           r.Notes,
	}
}

// UpdateAppointmentStatusRequest represents a status change.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// CreatePaymentRequest represents a request to record a patient payment.
type CreatePaymentRequest struct {
	PatientID     string          `json:"patient_id"`
	AppointmentID string          `json:"appointment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		PatientID:     r.PatientID,
		AppointmentID: r.AppointmentID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		PaymentDate:   r.PaymentDate,
	}
}

// WithdrawRequest represents a doctor withdrawal request.
type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(doctorID string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		DoctorID:      doctorID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// SupplierPurchaseRequest represents a supplier purchase accrual.
type SupplierPurchaseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SupplierPurchaseRequest) ToUseCaseInput(supplierID string) usecase.SupplierPurchaseInput {
	return usecase.SupplierPurchaseInput{
		SupplierID:  supplierID,
		Amount:      r.Amount,
		Description: r.Description,
		Notes:       r.Notes,
	}
}

// SupplierPaymentRequest represents a payment to a supplier.
type SupplierPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SupplierPaymentRequest) ToUseCaseInput(supplierID string) usecase.SupplierPaymentInput {
	return usecase.SupplierPaymentInput{
		SupplierID:    supplierID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// RecordExpenseRequest represents an operating expense.
type RecordExpenseRequest struct {
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   *time.Time      `json:"expense_date,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordExpenseRequest) ToUseCaseInput() usecase.RecordExpenseInput {
	return usecase.RecordExpenseInput{
		Category:      r.Category,
		Description:   r.Description,
		Amount:        r.Amount,
		ExpenseDate:   r.ExpenseDate,
		PaymentMethod: r.PaymentMethod,
		ReceiptNumber: r.ReceiptNumber,
		Notes:         r.Notes,
	}
}

// CreatePatientRequest represents a patient registration.
type CreatePatientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePatientRequest) ToUseCaseInput() usecase.CreatePatientInput {
	return usecase.CreatePatientInput{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
	}
}

// CreateDoctorRequest represents a doctor registration.
type CreateDoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDoctorRequest) ToUseCaseInput() usecase.CreateDoctorInput {
	return usecase.CreateDoctorInput{
		Name:           r.Name,
		Specialization: r.Specialization,
		Phone:          r.Phone,
		Email:          r.Email,
	}
}

// CreateSupplierRequest represents a supplier registration.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PaymentTerms  string `json:"payment_terms,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSupplierRequest) ToUseCaseInput() usecase.CreateSupplierInput {
	return usecase.CreateSupplierInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		PaymentTerms:  r.PaymentTerms,
	}
}

// CreateTreatmentRequest represents a treatment definition.
type CreateTreatmentRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	BasePrice        decimal.Decimal `json:"base_price"`
	DurationMinutes  int             `json:"duration_minutes,omitempty"`
	Category         string          `json:"category,omitempty"`
	DoctorPercentage decimal.Decimal `json:"doctor_percentage"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTreatmentRequest) ToUseCaseInput() usecase.CreateTreatmentInput {
	return usecase.CreateTreatmentInput{
		Name:             r.Name,
		Description:      r.Description,
		BasePrice:        r.BasePrice,
		DurationMinutes:  r.DurationMinutes,
		Category:         r.Category,
		DoctorPercentage: r.DoctorPercentage,
	}
}
