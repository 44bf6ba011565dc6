package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
	"github.com/curaclinic/ledger/internal/usecase/mocks"
)

type paymentFixture struct {
	uc           *usecase.PaymentUseCase
	txManager    *mocks.MockTransactionManager
	accountRepo  *mocks.MockAccountRepository
	txRepo       *mocks.MockTransactionRepository
	paymentRepo  *mocks.MockPaymentRepository
	appointRepo  *mocks.MockAppointmentRepository
	patientRepo  *mocks.MockPatientRepository
	doctorRepo   *mocks.MockDoctorRepository
	supplierRepo *mocks.MockSupplierRepository
	treatRepo    *mocks.MockTreatmentRepository
	voucherRepo  *mocks.MockVoucherRepository
	activityRepo *mocks.MockActivityRepository
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		txManager:    mocks.NewMockTransactionManager(),
		accountRepo:  mocks.NewMockAccountRepository(),
		txRepo:       mocks.NewMockTransactionRepository(),
		paymentRepo:  mocks.NewMockPaymentRepository(),
		appointRepo:  mocks.NewMockAppointmentRepository(),
		patientRepo:  mocks.NewMockPatientRepository(),
		doctorRepo:   mocks.NewMockDoctorRepository(),
		supplierRepo: mocks.NewMockSupplierRepository(),
		treatRepo:    mocks.NewMockTreatmentRepository(),
		voucherRepo:  mocks.NewMockVoucherRepository(),
		activityRepo: mocks.NewMockActivityRepository(),
	}

	f.uc = usecase.NewPaymentUseCase(
		f.txManager,
		f.accountRepo,
		f.txRepo,
		f.paymentRepo,
		f.appointRepo,
		f.patientRepo,
		f.doctorRepo,
		f.supplierRepo,
		f.treatRepo,
		mocks.NewMockExpenseRepository(),
		f.voucherRepo,
		f.activityRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		domain.PostingRules{},
		nil,
	)

	return f
}

func (f *paymentFixture) seedVisit(ctx context.Context, t *testing.T, cost, doctorPct string) (*domain.Patient, *domain.Doctor, *domain.Appointment) {
	t.Helper()

	patient := &domain.Patient{ID: "patient-1", Name: "Asha Verma", IsActive: true}
	doctor := &domain.Doctor{ID: "doctor-1", Name: "Dr. Rao", IsActive: true}
	treatment := &domain.Treatment{
		ID:               "treatment-1",
		Name:             "Root Canal",
		BasePrice:        decimal.RequireFromString(cost),
		DoctorPercentage: decimal.RequireFromString(doctorPct),
		ClinicPercentage: decimal.NewFromInt(100).Sub(decimal.RequireFromString(doctorPct)),
		IsActive:         true,
	}
	appointment := &domain.Appointment{
		ID:          "appt-1",
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		TreatmentID: treatment.ID,
		Status:      domain.AppointmentScheduled,
		TotalCost:   decimal.RequireFromString(cost),
	}

	_ = f.patientRepo.Create(ctx, nil, patient)
	_ = f.doctorRepo.Create(ctx, nil, doctor)
	_ = f.treatRepo.Create(ctx, treatment)
	_ = f.appointRepo.Create(ctx, nil, appointment)

	return patient, doctor, appointment
}

func (f *paymentFixture) accountBalance(ctx context.Context, t *testing.T, accountType domain.AccountType, holderID string) decimal.Decimal {
	t.Helper()
	account, err := f.accountRepo.GetByHolder(ctx, accountType, holderID)
	if err != nil {
		t.Fatalf("account %s/%s: %v", accountType, holderID, err)
	}
	return account.Balance
}

func TestCreatePaymentSplitsAcrossAccounts(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_, _, appointment := f.seedVisit(ctx, t, "1000", "60")

	// the visit was already billed to the patient
	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-patient",
		AccountType: domain.AccountTypePatient,
		HolderID:    "patient-1",
		TotalDues:   decimal.NewFromInt(1000),
		Balance:     decimal.NewFromInt(-1000),
	})

	result, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID:     "patient-1",
		AppointmentID: appointment.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment := result.Payment
	if !payment.DoctorShare.Equal(decimal.NewFromInt(600)) {
		t.Errorf("doctor share = %s, want 600", payment.DoctorShare)
	}
	if !payment.ClinicShare.Equal(decimal.NewFromInt(400)) {
		t.Errorf("clinic share = %s, want 400", payment.ClinicShare)
	}

	if got := f.accountBalance(ctx, t, domain.AccountTypePatient, "patient-1"); !got.IsZero() {
		t.Errorf("patient balance = %s, want 0 after settling in full", got)
	}
	if got := f.accountBalance(ctx, t, domain.AccountTypeDoctor, "doctor-1"); !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("doctor balance = %s, want 600", got)
	}
	if got := f.accountBalance(ctx, t, domain.AccountTypeClinic, domain.ClinicHolderID); !got.Equal(decimal.NewFromInt(400)) {
		t.Errorf("clinic balance = %s, want 400", got)
	}

	if result.Voucher == nil || result.Voucher.VoucherNumber != "REC-000001" {
		t.Errorf("expected first receipt voucher, got %+v", result.Voucher)
	}
}

func TestCreatePaymentStandaloneGoesToClinic(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_ = f.patientRepo.Create(ctx, nil, &domain.Patient{ID: "patient-1", Name: "Asha Verma"})

	result, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID:     "patient-1",
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Payment.DoctorShare.IsZero() {
		t.Errorf("doctor share = %s, want 0", result.Payment.DoctorShare)
	}
	if !result.Payment.ClinicShare.Equal(decimal.NewFromInt(500)) {
		t.Errorf("clinic share = %s, want 500", result.Payment.ClinicShare)
	}

	if got := f.accountBalance(ctx, t, domain.AccountTypeClinic, domain.ClinicHolderID); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("clinic balance = %s, want 500", got)
	}

	// no doctor account should appear
	if _, err := f.accountRepo.GetByHolder(ctx, domain.AccountTypeDoctor, "doctor-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("unexpected doctor account: %v", err)
	}
}

func TestCreatePaymentIsAtomic(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_, _, appointment := f.seedVisit(ctx, t, "1000", "60")

	// fail the last write of the fan-out
	voucherErr := errors.New("voucher insert failed")
	f.voucherRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, v *domain.Voucher) error {
		return voucherErr
	}

	committed := false
	f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error {
				committed = true
				return nil
			},
		}, nil
	}

	_, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID:     "patient-1",
		AppointmentID: appointment.ID,
		Amount:        decimal.NewFromInt(1000),
	})
	if !errors.Is(err, voucherErr) {
		t.Fatalf("expected voucher error, got %v", err)
	}
	if committed {
		t.Error("payment committed despite a failing write in the fan-out")
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_ = f.patientRepo.Create(ctx, nil, &domain.Patient{ID: "patient-1", Name: "Asha Verma"})

	if _, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID: "patient-1",
		Amount:    decimal.Zero,
	}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	if _, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID: "patient-404",
		Amount:    decimal.NewFromInt(100),
	}); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}

	if _, err := f.uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		PatientID:     "patient-1",
		AppointmentID: "appt-404",
		Amount:        decimal.NewFromInt(100),
	}); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestWithdrawDoctorEarnings(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_ = f.doctorRepo.Create(ctx, nil, &domain.Doctor{ID: "doctor-1", Name: "Dr. Rao"})
	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-doctor",
		AccountType: domain.AccountTypeDoctor,
		HolderID:    "doctor-1",
		Balance:     decimal.NewFromInt(600),
	})

	result, err := f.uc.WithdrawDoctorEarnings(ctx, usecase.WithdrawInput{
		DoctorID:      "doctor-1",
		Amount:        decimal.NewFromInt(250),
		PaymentMethod: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.accountBalance(ctx, t, domain.AccountTypeDoctor, "doctor-1"); !got.Equal(decimal.NewFromInt(350)) {
		t.Errorf("doctor balance = %s, want 350", got)
	}
	if result.Voucher.VoucherType != domain.VoucherPayment {
		t.Errorf("voucher type = %s, want payment", result.Voucher.VoucherType)
	}
	if result.Voucher.VoucherNumber != "PAY-000001" {
		t.Errorf("voucher number = %s", result.Voucher.VoucherNumber)
	}
}

func TestWithdrawDoctorEarningsCappedAtBalance(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_ = f.doctorRepo.Create(ctx, nil, &domain.Doctor{ID: "doctor-1", Name: "Dr. Rao"})
	f.accountRepo.Seed(&domain.Account{
		ID:          "acc-doctor",
		AccountType: domain.AccountTypeDoctor,
		HolderID:    "doctor-1",
		Balance:     decimal.NewFromInt(600),
	})

	_, err := f.uc.WithdrawDoctorEarnings(ctx, usecase.WithdrawInput{
		DoctorID: "doctor-1",
		Amount:   decimal.NewFromInt(601),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if got := f.accountBalance(ctx, t, domain.AccountTypeDoctor, "doctor-1"); !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("failed withdrawal moved the balance to %s", got)
	}
}

func TestSupplierPurchaseAndPayment(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_ = f.supplierRepo.Create(ctx, nil, &domain.Supplier{ID: "supplier-1", Name: "MedSupply Co"})

	if _, err := f.uc.RecordSupplierPurchase(ctx, usecase.SupplierPurchaseInput{
		SupplierID:  "supplier-1",
		Amount:      decimal.NewFromInt(1000),
		Description: "gloves and gauze",
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if _, err := f.uc.PaySupplier(ctx, usecase.SupplierPaymentInput{
		SupplierID:    "supplier-1",
		Amount:        decimal.NewFromInt(400),
		PaymentMethod: "bank_transfer",
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}

	account, err := f.accountRepo.GetByHolder(ctx, domain.AccountTypeSupplier, "supplier-1")
	if err != nil {
		t.Fatalf("supplier account: %v", err)
	}
	if !account.TotalDues.Equal(decimal.NewFromInt(1000)) || !account.TotalPaid.Equal(decimal.NewFromInt(400)) {
		t.Errorf("totals = dues %s paid %s", account.TotalDues, account.TotalPaid)
	}
	if !account.Outstanding().Equal(decimal.NewFromInt(600)) {
		t.Errorf("outstanding = %s, want 600", account.Outstanding())
	}
	// default posting rules keep supplier balances off
	if !account.Balance.IsZero() {
		t.Errorf("supplier balance = %s, want 0", account.Balance)
	}
}

func TestRecordExpense(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	when := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	expense, err := f.uc.RecordExpense(ctx, usecase.RecordExpenseInput{
		Category:    "rent",
		Description: "april rent",
		Amount:      decimal.NewFromInt(2000),
		ExpenseDate: &when,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expense.ExpenseDate.Equal(when) {
		t.Errorf("expense date = %s", expense.ExpenseDate)
	}

	logs := f.activityRepo.Logs()
	if len(logs) != 1 || logs[0].Action != domain.ActivityExpenseCreate {
		t.Errorf("expected expense.create log, got %+v", logs)
	}
}
