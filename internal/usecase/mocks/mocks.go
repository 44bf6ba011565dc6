package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

func holderKey(accountType domain.AccountType, holderID string) string {
	return string(accountType) + ":" + holderID
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu        sync.RWMutex
	accounts  map[string]*domain.Account
	byHolder  map[string]*domain.Account

	GetOrCreateFunc          func(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error)
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Account, error)
	GetByHolderFunc          func(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByHolderForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountType domain.AccountType, holderID string) (*domain.Account, error)
	UpdateBalancesFunc       func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		byHolder: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing GetOrCreate.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	m.byHolder[holderKey(account.AccountType, account.HolderID)] = account
}

func (m *MockAccountRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := holderKey(account.AccountType, account.HolderID)
	if existing, ok := m.byHolder[key]; ok {
		return existing, nil
	}
	m.accounts[account.ID] = account
	m.byHolder[key] = account
	return account, nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	if m.GetByHolderFunc != nil {
		return m.GetByHolderFunc(ctx, accountType, holderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.byHolder[holderKey(accountType, holderID)]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByHolderForUpdate(ctx context.Context, tx usecase.Transaction, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	if m.GetByHolderForUpdateFunc != nil {
		return m.GetByHolderForUpdateFunc(ctx, tx, accountType, holderID)
	}
	return m.GetByHolder(ctx, accountType, holderID)
}

func (m *MockAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	m.byHolder[holderKey(account.AccountType, account.HolderID)] = account
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	byAccount    map[string][]*domain.Transaction

	CreateFunc                   func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	GetByIDFunc                  func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc            func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByAccountOldestFirstFunc func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	HasReversalFunc              func(ctx context.Context, originalID string) (bool, error)
	HasReversalTxFunc            func(ctx context.Context, tx usecase.Transaction, originalID string) (bool, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		byAccount:    make(map[string][]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.ID] = t
	m.byAccount[t.AccountID] = append(m.byAccount[t.AccountID], t)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := m.byAccount[accountID]
	var out []*domain.Transaction
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByAccountOldestFirst(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.ListByAccountOldestFirstFunc != nil {
		return m.ListByAccountOldestFirstFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.byAccount[accountID]...), nil
}

func (m *MockTransactionRepository) HasReversal(ctx context.Context, originalID string) (bool, error) {
	if m.HasReversalFunc != nil {
		return m.HasReversalFunc(ctx, originalID)
	}
	return m.hasStoredReversal(originalID), nil
}

func (m *MockTransactionRepository) HasReversalTx(ctx context.Context, tx usecase.Transaction, originalID string) (bool, error) {
	if m.HasReversalTxFunc != nil {
		return m.HasReversalTxFunc(ctx, tx, originalID)
	}
	return m.hasStoredReversal(originalID), nil
}

func (m *MockTransactionRepository) hasStoredReversal(originalID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.ReferenceType == domain.ReferenceReversal && t.ReferenceID == originalID {
			return true
		}
	}
	return false
}

// MockPatientRepository is a mock implementation of PatientRepository.
type MockPatientRepository struct {
	mu       sync.RWMutex
	patients map[string]*domain.Patient

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, p *domain.Patient) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Patient, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Patient, error)
}

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{patients: make(map[string]*domain.Patient)}
}

func (m *MockPatientRepository) Create(ctx context.Context, tx usecase.Transaction, p *domain.Patient) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = p
	return nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.patients[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPatientNotFound
}

func (m *MockPatientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Patient, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

// MockDoctorRepository is a mock implementation of DoctorRepository.
type MockDoctorRepository struct {
	mu      sync.RWMutex
	doctors map[string]*domain.Doctor

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, d *domain.Doctor) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Doctor, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Doctor, error)
}

func NewMockDoctorRepository() *MockDoctorRepository {
	return &MockDoctorRepository{doctors: make(map[string]*domain.Doctor)}
}

func (m *MockDoctorRepository) Create(ctx context.Context, tx usecase.Transaction, d *domain.Doctor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors[d.ID] = d
	return nil
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.doctors[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDoctorNotFound
}

func (m *MockDoctorRepository) List(ctx context.Context, limit, offset int) ([]*domain.Doctor, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Doctor
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

// MockSupplierRepository is a mock implementation of SupplierRepository.
type MockSupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*domain.Supplier

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, s *domain.Supplier) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Supplier, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Supplier, error)
}

func NewMockSupplierRepository() *MockSupplierRepository {
	return &MockSupplierRepository{suppliers: make(map[string]*domain.Supplier)}
}

func (m *MockSupplierRepository) Create(ctx context.Context, tx usecase.Transaction, s *domain.Supplier) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[s.ID] = s
	return nil
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.suppliers[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSupplierNotFound
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Supplier
	for _, s := range m.suppliers {
		out = append(out, s)
	}
	return out, nil
}

// MockTreatmentRepository is a mock implementation of TreatmentRepository.
type MockTreatmentRepository struct {
	mu         sync.RWMutex
	treatments map[string]*domain.Treatment

	CreateFunc  func(ctx context.Context, t *domain.Treatment) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Treatment, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Treatment, error)
}

func NewMockTreatmentRepository() *MockTreatmentRepository {
	return &MockTreatmentRepository{treatments: make(map[string]*domain.Treatment)}
}

func (m *MockTreatmentRepository) Create(ctx context.Context, t *domain.Treatment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.treatments[t.ID] = t
	return nil
}

func (m *MockTreatmentRepository) GetByID(ctx context.Context, id string) (*domain.Treatment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.treatments[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTreatmentNotFound
}

func (m *MockTreatmentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Treatment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Treatment
	for _, t := range m.treatments {
		out = append(out, t)
	}
	return out, nil
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]*domain.Appointment

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, a *domain.Appointment) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Appointment, error)
	ListByPatientFunc func(ctx context.Context, patientID string, limit, offset int) ([]*domain.Appointment, error)
	UpdateStatusFunc  func(ctx context.Context, id string, status domain.AppointmentStatus) error
}

func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{appointments: make(map[string]*domain.Appointment)}
}

func (m *MockAppointmentRepository) Create(ctx context.Context, tx usecase.Transaction, a *domain.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[a.ID] = a
	return nil
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.appointments[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAppointmentNotFound
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Appointment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appointments[id]; ok {
		a.Status = status
		return nil
	}
	return domain.ErrAppointmentNotFound
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Payment, error)
	ListByPatientFunc func(ctx context.Context, patientID string, limit, offset int) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Payment, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses []*domain.Expense

	CreateFunc func(ctx context.Context, e *domain.Expense) error
	ListFunc   func(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{}
}

func (m *MockExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append(m.expenses, e)
	return nil
}

func (m *MockExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Expense(nil), m.expenses...), nil
}

// MockVoucherRepository is a mock implementation of VoucherRepository.
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers []*domain.Voucher
	counters map[domain.VoucherType]int64

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, v *domain.Voucher) error
	NextNumberFunc    func(ctx context.Context, tx usecase.Transaction, t domain.VoucherType) (int64, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Voucher, error)
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{counters: make(map[domain.VoucherType]int64)}
}

func (m *MockVoucherRepository) Create(ctx context.Context, tx usecase.Transaction, v *domain.Voucher) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, v)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers = append(m.vouchers, v)
	return nil
}

func (m *MockVoucherRepository) NextNumber(ctx context.Context, tx usecase.Transaction, t domain.VoucherType) (int64, error) {
	if m.NextNumberFunc != nil {
		return m.NextNumberFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[t]++
	return m.counters[t], nil
}

func (m *MockVoucherRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Voucher, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Voucher
	for _, v := range m.vouchers {
		if v.AccountID == accountID {
			out = append(out, v)
		}
	}
	return out, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository.
type MockActivityRepository struct {
	mu   sync.RWMutex
	logs []*domain.ActivityLog

	CreateFunc   func(ctx context.Context, log *domain.ActivityLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.ActivityLog) error
	ListFunc     func(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockActivityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.ActivityLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ActivityLog
	for _, log := range m.logs {
		if filter.Action != "" && log.Action != filter.Action {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

// Logs returns a copy of everything recorded so far.
func (m *MockActivityRepository) Logs() []*domain.ActivityLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.ActivityLog(nil), m.logs...)
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	PatientBilledFunc   func(ctx context.Context, patientID string) (decimal.Decimal, error)
	PatientPaidFunc     func(ctx context.Context, patientID string) (decimal.Decimal, error)
	DoctorEarningsFunc  func(ctx context.Context, doctorID string) (decimal.Decimal, error)
	DoctorWithdrawnFunc func(ctx context.Context, doctorID string) (decimal.Decimal, error)
	ClinicTotalsFunc    func(ctx context.Context) (usecase.ClinicTotals, error)
	TotalExpensesFunc   func(ctx context.Context) (decimal.Decimal, error)
	MonthlyCashflowFunc func(ctx context.Context, months int) ([]usecase.MonthlyCashflow, error)
	AccountsOverviewFunc func(ctx context.Context) ([]usecase.AccountTypeOverview, error)
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) PatientBilled(ctx context.Context, patientID string) (decimal.Decimal, error) {
	if m.PatientBilledFunc != nil {
		return m.PatientBilledFunc(ctx, patientID)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepository) PatientPaid(ctx context.Context, patientID string) (decimal.Decimal, error) {
	if m.PatientPaidFunc != nil {
		return m.PatientPaidFunc(ctx, patientID)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepository) DoctorEarnings(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	if m.DoctorEarningsFunc != nil {
		return m.DoctorEarningsFunc(ctx, doctorID)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepository) DoctorWithdrawn(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	if m.DoctorWithdrawnFunc != nil {
		return m.DoctorWithdrawnFunc(ctx, doctorID)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepository) ClinicTotals(ctx context.Context) (usecase.ClinicTotals, error) {
	if m.ClinicTotalsFunc != nil {
		return m.ClinicTotalsFunc(ctx)
	}
	return usecase.ClinicTotals{}, nil
}

func (m *MockReportRepository) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	if m.TotalExpensesFunc != nil {
		return m.TotalExpensesFunc(ctx)
	}
	return decimal.Zero, nil
}

func (m *MockReportRepository) MonthlyCashflow(ctx context.Context, months int) ([]usecase.MonthlyCashflow, error) {
	if m.MonthlyCashflowFunc != nil {
		return m.MonthlyCashflowFunc(ctx, months)
	}
	return nil, nil
}

func (m *MockReportRepository) AccountsOverview(ctx context.Context) ([]usecase.AccountTypeOverview, error) {
	if m.AccountsOverviewFunc != nil {
		return m.AccountsOverviewFunc(ctx)
	}
	return nil, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	mu           sync.Mutex
	counter      int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{data: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
