package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
)

// Cache keys and TTL for the clinic-wide views. Per-party summaries are
// cheap enough to compute on every request.
const (
	clinicSummaryCacheKey = "summary:clinic"
	cashflowCacheKey      = "summary:cashflow"
	summaryCacheTTL       = 30 * time.Second
)

// SummaryUseCase builds the read-side views over accounts and transactions.
type SummaryUseCase struct {
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	patientRepo  PatientRepository
	doctorRepo   DoctorRepository
	supplierRepo SupplierRepository
	reportRepo   ReportRepository
	cache        Cache
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	supplierRepo SupplierRepository,
	reportRepo ReportRepository,
	cache Cache,
) *SummaryUseCase {
	return &SummaryUseCase{
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		supplierRepo: supplierRepo,
		reportRepo:   reportRepo,
		cache:        cache,
	}
}

// PatientSummary is a patient's financial standing.
type PatientSummary struct {
	PatientID           string          `json:"patient_id"`
	Name                string          `json:"name"`
	TotalBilled         decimal.Decimal `json:"total_billed"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	Outstanding         decimal.Decimal `json:"outstanding"`
	Status              string          `json:"status"`
	Balance             decimal.Decimal `json:"balance"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
}

// paymentStatus renders the outstanding amount as the status line shown on
// the patient card.
func paymentStatus(outstanding decimal.Decimal) string {
	if outstanding.LessThanOrEqual(decimal.Zero) {
		return "fully paid"
	}

	return "remaining " + outstanding.StringFixed(2)
}

// GetPatientSummary reports what a patient was billed, what they paid, and
// what remains outstanding. A patient with no account yet reports zeros.
func (uc *SummaryUseCase) GetPatientSummary(ctx context.Context, patientID string) (*PatientSummary, error) {
	patient, err := uc.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	billed, err := uc.reportRepo.PatientBilled(ctx, patientID)
	if err != nil {
		return nil, err
	}

	paid, err := uc.reportRepo.PatientPaid(ctx, patientID)
	if err != nil {
		return nil, err
	}

	summary := &PatientSummary{
		PatientID:   patient.ID,
		Name:        patient.Name,
		TotalBilled: billed,
		TotalPaid:   paid,
		Outstanding: billed.Sub(paid),
		Status:      paymentStatus(billed.Sub(paid)),
	}

	account, err := uc.accountRepo.GetByHolder(ctx, domain.AccountTypePatient, patientID)
	if err == nil {
		summary.Balance = account.Balance
		summary.LastTransactionDate = account.LastTransactionDate
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	return summary, nil
}

// DoctorSummary is a doctor's earnings position.
type DoctorSummary struct {
	DoctorID            string          `json:"doctor_id"`
	Name                string          `json:"name"`
	TotalEarnings       decimal.Decimal `json:"total_earnings"`
	TotalWithdrawn      decimal.Decimal `json:"total_withdrawn"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
}

// GetDoctorSummary reports a doctor's accrued share, withdrawals, and the
// balance still available to withdraw.
func (uc *SummaryUseCase) GetDoctorSummary(ctx context.Context, doctorID string) (*DoctorSummary, error) {
	doctor, err := uc.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	earnings, err := uc.reportRepo.DoctorEarnings(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	withdrawn, err := uc.reportRepo.DoctorWithdrawn(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	summary := &DoctorSummary{
		DoctorID:       doctor.ID,
		Name:           doctor.Name,
		TotalEarnings:  earnings,
		TotalWithdrawn: withdrawn,
	}

	account, err := uc.accountRepo.GetByHolder(ctx, domain.AccountTypeDoctor, doctorID)
	if err == nil {
		summary.CurrentBalance = account.Balance
		summary.LastTransactionDate = account.LastTransactionDate
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	return summary, nil
}

// ClinicSummary is the clinic-wide revenue picture.
type ClinicSummary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ClinicShare    decimal.Decimal `json:"clinic_share"`
	DoctorShare    decimal.Decimal `json:"doctor_share"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// GetClinicSummary reports total revenue, how it split between doctors and
// the clinic, and net profit after expenses. The result is cached briefly.
func (uc *SummaryUseCase) GetClinicSummary(ctx context.Context) (*ClinicSummary, error) {
	if cached, err := uc.cache.Get(ctx, clinicSummaryCacheKey); err == nil && cached != "" {
		var summary ClinicSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	totals, err := uc.reportRepo.ClinicTotals(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.reportRepo.TotalExpenses(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ClinicSummary{
		TotalRevenue:  totals.TotalRevenue,
		ClinicShare:   totals.ClinicShare,
		DoctorShare:   totals.DoctorShare,
		TotalExpenses: expenses,
		NetProfit:     totals.ClinicShare.Sub(expenses),
	}

	account, err := uc.accountRepo.GetByHolder(ctx, domain.AccountTypeClinic, domain.ClinicHolderID)
	if err == nil {
		summary.CurrentBalance = account.Balance
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		_ = uc.cache.Set(ctx, clinicSummaryCacheKey, string(encoded), summaryCacheTTL)
	}

	return summary, nil
}

// SupplierSummary is what the clinic owes a supplier.
type SupplierSummary struct {
	SupplierID     string          `json:"supplier_id"`
	Name           string          `json:"name"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// GetSupplierSummary reports purchases, payments, and the open balance owed
// to a supplier. A supplier with no account yet reports zeros.
func (uc *SummaryUseCase) GetSupplierSummary(ctx context.Context, supplierID string) (*SupplierSummary, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	summary := &SupplierSummary{
		SupplierID: supplier.ID,
		Name:       supplier.Name,
	}

	account, err := uc.accountRepo.GetByHolder(ctx, domain.AccountTypeSupplier, supplierID)
	if err == nil {
		summary.TotalPurchases = account.TotalDues
		summary.TotalPaid = account.TotalPaid
		summary.Outstanding = account.Outstanding()
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	return summary, nil
}

// AccountStatement is an account with its transaction history.
type AccountStatement struct {
	Account      *domain.Account       `json:"account"`
	Transactions []*domain.Transaction `json:"transactions"`
}

// GetAccountStatementInput represents input for an account statement.
type GetAccountStatementInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// GetAccountStatement returns an account and its transactions newest first.
func (uc *SummaryUseCase) GetAccountStatement(ctx context.Context, input GetAccountStatementInput) (*AccountStatement, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	transactions, err := uc.txRepo.ListByAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &AccountStatement{Account: account, Transactions: transactions}, nil
}

// GetAccountsOverview aggregates all accounts by type.
func (uc *SummaryUseCase) GetAccountsOverview(ctx context.Context) ([]AccountTypeOverview, error) {
	return uc.reportRepo.AccountsOverview(ctx)
}

// GetMonthlyCashflow compares revenue against expenses for the trailing
// months, newest month first. The result is cached briefly.
func (uc *SummaryUseCase) GetMonthlyCashflow(ctx context.Context, months int) ([]MonthlyCashflow, error) {
	if months <= 0 {
		months = 6
	}
	if months > 36 {
		months = 36
	}

	if cached, err := uc.cache.Get(ctx, cashflowCacheKey); err == nil && cached != "" {
		var rows []MonthlyCashflow
		if err := json.Unmarshal([]byte(cached), &rows); err == nil && len(rows) >= months {
			return rows[:months], nil
		}
	}

	rows, err := uc.reportRepo.MonthlyCashflow(ctx, months)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(rows); err == nil {
		_ = uc.cache.Set(ctx, cashflowCacheKey, string(encoded), summaryCacheTTL)
	}

	return rows, nil
}
