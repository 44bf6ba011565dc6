package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
)

// AccountRepository defines data access for ledger accounts.
type AccountRepository interface {
	// GetOrCreate inserts the candidate account unless one already exists for
	// its (account type, holder) key, and returns the surviving row.
	GetOrCreate(ctx context.Context, tx Transaction, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByHolderForUpdate(ctx context.Context, tx Transaction, accountType domain.AccountType, holderID string) (*domain.Account, error)
	UpdateBalances(ctx context.Context, tx Transaction, account *domain.Account) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListByAccount returns transactions newest first.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// ListByAccountOldestFirst returns the full history for replay.
	ListByAccountOldestFirst(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	HasReversal(ctx context.Context, originalID string) (bool, error)
	// HasReversalTx is the same check run inside an open database
	// transaction, so it sees rows committed after the caller's last read.
	HasReversalTx(ctx context.Context, tx Transaction, originalID string) (bool, error)
}

// PatientRepository defines data access for patient records.
type PatientRepository interface {
	Create(ctx context.Context, tx Transaction, p *domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Patient, error)
}

// DoctorRepository defines data access for doctor records.
type DoctorRepository interface {
	Create(ctx context.Context, tx Transaction, d *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Doctor, error)
}

// SupplierRepository defines data access for supplier records.
type SupplierRepository interface {
	Create(ctx context.Context, tx Transaction, s *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

// TreatmentRepository defines data access for treatments.
type TreatmentRepository interface {
	Create(ctx context.Context, t *domain.Treatment) error
	GetByID(ctx context.Context, id string) (*domain.Treatment, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Treatment, error)
}

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, tx Transaction, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Payment, error)
}

// ExpenseRepository defines data access for operating expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	List(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

// VoucherRepository defines data access for receipt/payment vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, tx Transaction, v *domain.Voucher) error
	// NextNumber reserves the next sequential number for a voucher type.
	NextNumber(ctx context.Context, tx Transaction, t domain.VoucherType) (int64, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Voucher, error)
}

// ActivityRepository defines data access for the audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, log *domain.ActivityLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

// ClinicTotals aggregates payment rows for the clinic summary.
type ClinicTotals struct {
	TotalRevenue decimal.Decimal
	ClinicShare  decimal.Decimal
	DoctorShare  decimal.Decimal
}

// MonthlyCashflow is one month of the revenue/expense comparison.
type MonthlyCashflow struct {
	Month    string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// AccountTypeOverview aggregates accounts of one type.
type AccountTypeOverview struct {
	AccountType  domain.AccountType
	Count        int64
	TotalDues    decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalBalance decimal.Decimal
}

// ReportRepository defines the aggregate queries behind the summary views.
type ReportRepository interface {
	PatientBilled(ctx context.Context, patientID string) (decimal.Decimal, error)
	PatientPaid(ctx context.Context, patientID string) (decimal.Decimal, error)
	DoctorEarnings(ctx context.Context, doctorID string) (decimal.Decimal, error)
	DoctorWithdrawn(ctx context.Context, doctorID string) (decimal.Decimal, error)
	ClinicTotals(ctx context.Context) (ClinicTotals, error)
	TotalExpenses(ctx context.Context) (decimal.Decimal, error)
	MonthlyCashflow(ctx context.Context, months int) ([]MonthlyCashflow, error)
	AccountsOverview(ctx context.Context) ([]AccountTypeOverview, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries a unit of work on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
