package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID                  string          `json:"id"`
	AccountType         string          `json:"account_type"`
	HolderID            string          `json:"holder_id"`
	HolderName          string          `json:"holder_name"`
	TotalDues           decimal.Decimal `json:"total_dues"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	Balance             decimal.Decimal `json:"balance"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:                  a.ID,
		AccountType:         string(a.AccountType),
		HolderID:            a.HolderID,
		HolderName:          a.HolderName,
		TotalDues:           a.TotalDues,
		TotalPaid:           a.TotalPaid,
		Balance:             a.Balance,
		LastTransactionDate: a.LastTransactionDate,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Description:     t.Description,
		ReferenceType:   t.ReferenceType,
		ReferenceID:     t.ReferenceID,
		TransactionDate: t.TransactionDate,
		PaymentMethod:   t.PaymentMethod,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// AppointmentResponse represents an appointment in API responses.
type AppointmentResponse struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patient_id"`
	DoctorID        string          `json:"doctor_id"`
	TreatmentID     string          `json:"treatment_id"`
	AppointmentDate time.Time       `json:"appointment_date"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AppointmentFromDomain converts domain appointment to response.
func AppointmentFromDomain(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		TreatmentID:     a.TreatmentID,
		AppointmentDate: a.AppointmentDate,
		Status:          string(a.Status),
		Notes:           a.Notes,
		TotalCost:       a.TotalCost,
		CreatedAt:       a.CreatedAt,
	}
}

// AppointmentsFromDomain converts domain appointments to responses.
func AppointmentsFromDomain(appointments []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, len(appointments))
	for i, a := range appointments {
		result[i] = AppointmentFromDomain(a)
	}
	return result
}

// PaymentResponse represents a payment in API responses. The shares frozen
// at payment time are included so receipts stay stable if percentages change.
type PaymentResponse struct {
	ID               string          `json:"id"`
	AppointmentID    string          `json:"appointment_id,omitempty"`
	PatientID        string          `json:"patient_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentDate      time.Time       `json:"payment_date"`
	Status           string          `json:"status"`
	DoctorShare      decimal.Decimal `json:"doctor_share"`
	ClinicShare      decimal.Decimal `json:"clinic_share"`
	DoctorPercentage decimal.Decimal `json:"doctor_percentage"`
	ClinicPercentage decimal.Decimal `json:"clinic_percentage"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PaymentFromDomain converts domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		AppointmentID:    p.AppointmentID,
		PatientID:        p.PatientID,
		Amount:           p.Amount,
		PaymentMethod:    p.PaymentMethod,
		PaymentDate:      p.PaymentDate,
		Status:           string(p.Status),
		DoctorShare:      p.DoctorShare,
		ClinicShare:      p.ClinicShare,
		DoctorPercentage: p.DoctorPercentage,
		ClinicPercentage: p.ClinicPercentage,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// VoucherResponse represents a voucher in API responses.
type VoucherResponse struct {
	ID            string          `json:"id"`
	VoucherType   string          `json:"voucher_type"`
	VoucherNumber string          `json:"voucher_number"`
	AccountID     string          `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Description   string          `json:"description,omitempty"`
	VoucherDate   time.Time       `json:"voucher_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// VoucherFromDomain converts domain voucher to response.
func VoucherFromDomain(v *domain.Voucher) *VoucherResponse {
	return &VoucherResponse{
		ID:            v.ID,
		VoucherType:   string(v.VoucherType),
		VoucherNumber: v.VoucherNumber,
		AccountID:     v.AccountID,
		Amount:        v.Amount,
		PaymentMethod: v.PaymentMethod,
		Description:   v.Description,
		VoucherDate:   v.VoucherDate,
		CreatedAt:     v.CreatedAt,
	}
}

// PaymentResultResponse pairs a recorded payment with its receipt voucher.
type PaymentResultResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Voucher *VoucherResponse `json:"voucher"`
}

// PaymentResultFromUseCase converts a payment result to a response.
func PaymentResultFromUseCase(r *usecase.PaymentResult) *PaymentResultResponse {
	return &PaymentResultResponse{
		Payment: PaymentFromDomain(r.Payment),
		Voucher: VoucherFromDomain(r.Voucher),
	}
}

// WithdrawalResultResponse pairs a posted disbursement with its voucher.
type WithdrawalResultResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Voucher     *VoucherResponse     `json:"voucher"`
}

// WithdrawalResultFromUseCase converts a withdrawal result to a response.
func WithdrawalResultFromUseCase(r *usecase.WithdrawalResult) *WithdrawalResultResponse {
	return &WithdrawalResultResponse{
		Transaction: TransactionFromDomain(r.Transaction),
		Voucher:     VoucherFromDomain(r.Voucher),
	}
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   time.Time       `json:"expense_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		ExpenseDate:   e.ExpenseDate,
		PaymentMethod: e.PaymentMethod,
		ReceiptNumber: e.ReceiptNumber,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

// PatientResponse represents a patient in API responses.
type PatientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientFromDomain converts domain patient to response.
func PatientFromDomain(p *domain.Patient) *PatientResponse {
	return &PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// PatientsFromDomain converts domain patients to responses.
func PatientsFromDomain(patients []*domain.Patient) []*PatientResponse {
	result := make([]*PatientResponse, len(patients))
	for i, p := range patients {
		result[i] = PatientFromDomain(p)
	}
	return result
}

// DoctorResponse represents a doctor in API responses.
type DoctorResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// DoctorFromDomain converts domain doctor to response.
func DoctorFromDomain(d *domain.Doctor) *DoctorResponse {
	return &DoctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Phone:          d.Phone,
		Email:          d.Email,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
	}
}

// DoctorsFromDomain converts domain doctors to responses.
func DoctorsFromDomain(doctors []*domain.Doctor) []*DoctorResponse {
	result := make([]*DoctorResponse, len(doctors))
	for i, d := range doctors {
		result[i] = DoctorFromDomain(d)
	}
	return result
}

// SupplierResponse represents a supplier in API responses.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	PaymentTerms  string    `json:"payment_terms,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierFromDomain converts domain supplier to response.
func SupplierFromDomain(s *domain.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		PaymentTerms:  s.PaymentTerms,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

// SuppliersFromDomain converts domain suppliers to responses.
func SuppliersFromDomain(suppliers []*domain.Supplier) []*SupplierResponse {
	result := make([]*SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		result[i] = SupplierFromDomain(s)
	}
	return result
}

// TreatmentResponse represents a treatment in API responses.
type TreatmentResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	BasePrice        decimal.Decimal `json:"base_price"`
	DurationMinutes  int             `json:"duration_minutes,omitempty"`
	Category         string          `json:"category,omitempty"`
	DoctorPercentage decimal.Decimal `json:"doctor_percentage"`
	ClinicPercentage decimal.Decimal `json:"clinic_percentage"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TreatmentFromDomain converts domain treatment to response.
func TreatmentFromDomain(t *domain.Treatment) *TreatmentResponse {
	return &TreatmentResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		BasePrice:        t.BasePrice,
		DurationMinutes:  t.DurationMinutes,
		Category:         t.Category,
		DoctorPercentage: t.DoctorPercentage,
		ClinicPercentage: t.ClinicPercentage,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
	}
}

// TreatmentsFromDomain converts domain treatments to responses.
func TreatmentsFromDomain(treatments []*domain.Treatment) []*TreatmentResponse {
	result := make([]*TreatmentResponse, len(treatments))
	for i, t := range treatments {
		result[i] = TreatmentFromDomain(t)
	}
	return result
}

// AccountStatementResponse pairs an account with its transactions.
type AccountStatementResponse struct {
	Account      *AccountResponse       `json:"account"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// AccountStatementFromUseCase converts a statement to a response.
func AccountStatementFromUseCase(s *usecase.AccountStatement) *AccountStatementResponse {
	return &AccountStatementResponse{
		Account:      AccountFromDomain(s.Account),
		Transactions: TransactionsFromDomain(s.Transactions),
	}
}

// ReconciliationResultResponse reports one account's replay check.
type ReconciliationResultResponse struct {
	AccountID        string          `json:"account_id"`
	AccountType      string          `json:"account_type"`
	HolderID         string          `json:"holder_id"`
	StoredBalance    decimal.Decimal `json:"stored_balance"`
	ReplayedBalance  decimal.Decimal `json:"replayed_balance"`
	StoredDues       decimal.Decimal `json:"stored_dues"`
	ReplayedDues     decimal.Decimal `json:"replayed_dues"`
	StoredPaid       decimal.Decimal `json:"stored_paid"`
	ReplayedPaid     decimal.Decimal `json:"replayed_paid"`
	Difference       decimal.Decimal `json:"difference"`
	TransactionCount int             `json:"transaction_count"`
	IsReconciled     bool            `json:"is_reconciled"`
	CheckedAt        time.Time       `json:"checked_at"`
}

// ReconciliationResultFromUseCase converts a reconciliation result.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:        r.AccountID,
		AccountType:      string(r.AccountType),
		HolderID:         r.HolderID,
		StoredBalance:    r.StoredBalance,
		ReplayedBalance:  r.ReplayedBalance,
		StoredDues:       r.StoredDues,
		ReplayedDues:     r.ReplayedDues,
		StoredPaid:       r.StoredPaid,
		ReplayedPaid:     r.ReplayedPaid,
		Difference:       r.Difference,
		TransactionCount: r.TransactionCount,
		IsReconciled:     r.IsReconciled,
		CheckedAt:        r.CheckedAt,
	}
}

// ReconciliationReportResponse summarizes a full reconciliation run.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationResultFromUseCase(d)
	}
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ActivityLogResponse represents an activity log entry in API responses.
type ActivityLogResponse struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityLogFromDomain converts a domain activity log entry.
func ActivityLogFromDomain(l *domain.ActivityLog) *ActivityLogResponse {
	return &ActivityLogResponse{
		ID:           l.ID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Details:      l.Details,
		RequestID:    l.RequestID,
		CreatedAt:    l.CreatedAt,
	}
}

// ActivityLogsFromDomain converts domain activity log entries.
func ActivityLogsFromDomain(logs []*domain.ActivityLog) []*ActivityLogResponse {
	result := make([]*ActivityLogResponse, len(logs))
	for i, l := range logs {
		result[i] = ActivityLogFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
