package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/infrastructure/metrics"
)

// PaymentUseCase handles money movement: patient payments with the
// doctor/clinic revenue split, doctor withdrawals, supplier purchases and
// payments, and operating expenses.
type PaymentUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	paymentRepo  PaymentRepository
	appointRepo  AppointmentRepository
	patientRepo  PatientRepository
	doctorRepo   DoctorRepository
	supplierRepo SupplierRepository
	treatRepo    TreatmentRepository
	expenseRepo  ExpenseRepository
	voucherRepo  VoucherRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
	retrier      Retrier
	rules        domain.PostingRules
	metrics      *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	paymentRepo PaymentRepository,
	appointRepo AppointmentRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	supplierRepo SupplierRepository,
	treatRepo TreatmentRepository,
	expenseRepo ExpenseRepository,
	voucherRepo VoucherRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	retrier Retrier,
	rules domain.PostingRules,
	m *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		paymentRepo:  paymentRepo,
		appointRepo:  appointRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		supplierRepo: supplierRepo,
		treatRepo:    treatRepo,
		expenseRepo:  expenseRepo,
		voucherRepo:  voucherRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
		retrier:      retrier,
		rules:        rules,
		metrics:      m,
	}
}

// CreatePaymentInput represents input for recording a patient payment.
type CreatePaymentInput struct {
	PatientID     string
	AppointmentID string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
	PaymentDate   *time.Time
}

// PaymentResult is a recorded payment with its receipt voucher.
type PaymentResult struct {
	Payment *domain.Payment
	Voucher *domain.Voucher
}

// CreatePayment records a patient payment and posts its full fan-out in one
// transaction: payment to the patient's account, the doctor's share as a
// credit to the doctor's account, the clinic's share as a credit to the
// clinic account, plus a receipt voucher. A payment with no appointment goes
// entirely to the clinic. Either every posting lands or none do.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*PaymentResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	patient, err := uc.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}

	var (
		split  domain.Split
		doctor *domain.Doctor
	)

	if input.AppointmentID != "" {
		appointment, err := uc.appointRepo.GetByID(ctx, input.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment.PatientID != input.PatientID {
			return nil, fmt.Errorf("appointment %s does not belong to patient %s: %w",
				input.AppointmentID, input.PatientID, domain.ErrAppointmentNotFound)
		}

		treatment, err := uc.treatRepo.GetByID(ctx, appointment.TreatmentID)
		if err != nil {
			return nil, err
		}

		doctor, err = uc.doctorRepo.GetByID(ctx, appointment.DoctorID)
		if err != nil {
			return nil, err
		}

		split, err = domain.SplitPayment(input.Amount, treatment.DoctorPercentage)
		if err != nil {
			return nil, err
		}
	} else {
		split, err = domain.StandalonePaymentSplit(input.Amount)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	paymentDate := now
	if input.PaymentDate != nil {
		paymentDate = input.PaymentDate.UTC()
	}

	payment := &domain.Payment{
		ID:               uc.idGen.Generate(),
		AppointmentID:    input.AppointmentID,
		PatientID:        input.PatientID,
		Amount:           input.Amount,
		PaymentMethod:    input.PaymentMethod,
		PaymentDate:      paymentDate,
		Status:           domain.PaymentCompleted,
		DoctorShare:      split.DoctorShare,
		ClinicShare:      split.ClinicShare,
		DoctorPercentage: split.DoctorPercentage,
		ClinicPercentage: split.ClinicPercentage,
		Notes:            input.Notes,
		CreatedAt:        now,
	}

	var result *PaymentResult
	err = uc.retrier.Retry(ctx, func() error {
		result, err = uc.postPayment(ctx, payment, patient, doctor, paymentDate, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
		uc.metrics.PaymentAmount.Observe(payment.Amount.InexactFloat64())
		uc.metrics.DoctorShareTotal.Add(payment.DoctorShare.InexactFloat64())
		uc.metrics.ClinicShareTotal.Add(payment.ClinicShare.InexactFloat64())
		uc.metrics.VouchersIssued.WithLabelValues(string(domain.VoucherReceipt)).Inc()
	}

	return result, nil
}

// postPayment runs the whole payment fan-out in one database transaction.
// Accounts are always locked in patient, doctor, clinic order so concurrent
// payments cannot deadlock each other.
func (uc *PaymentUseCase) postPayment(
	ctx context.Context,
	payment *domain.Payment,
	patient *domain.Patient,
	doctor *domain.Doctor,
	paymentDate, now time.Time,
) (*PaymentResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	patientAccount, err := uc.lockAccount(ctx, tx, domain.AccountTypePatient, patient.ID, patient.Name, now)
	if err != nil {
		return nil, err
	}

	patientTx := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		AccountID:       patientAccount.ID,
		TransactionType: domain.TransactionPayment,
		Amount:          payment.Amount,
		Description:     "payment received",
		ReferenceType:   domain.ReferencePayment,
		ReferenceID:     payment.ID,
		TransactionDate: paymentDate,
		PaymentMethod:   payment.PaymentMethod,
		CreatedAt:       now,
	}
	if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, patientAccount, patientTx, uc.rules); err != nil {
		return nil, err
	}

	if payment.DoctorShare.IsPositive() && doctor != nil {
		doctorAccount, err := uc.lockAccount(ctx, tx, domain.AccountTypeDoctor, doctor.ID, doctor.Name, now)
		if err != nil {
			return nil, err
		}

		doctorTx := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       doctorAccount.ID,
			TransactionType: domain.TransactionCredit,
			Amount:          payment.DoctorShare,
			Description:     fmt.Sprintf("doctor share (%s%%) of payment", payment.DoctorPercentage),
			ReferenceType:   domain.ReferencePayment,
			ReferenceID:     payment.ID,
			TransactionDate: paymentDate,
			CreatedAt:       now,
		}
		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, doctorAccount, doctorTx, uc.rules); err != nil {
			return nil, err
		}
	}

	if payment.ClinicShare.IsPositive() {
		clinicAccount, err := uc.lockAccount(ctx, tx, domain.AccountTypeClinic, domain.ClinicHolderID, "Clinic", now)
		if err != nil {
			return nil, err
		}

		clinicTx := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       clinicAccount.ID,
			TransactionType: domain.TransactionCredit,
			Amount:          payment.ClinicShare,
			Description:     "clinic share of payment",
			ReferenceType:   domain.ReferencePayment,
			ReferenceID:     payment.ID,
			TransactionDate: paymentDate,
			CreatedAt:       now,
		}
		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, clinicAccount, clinicTx, uc.rules); err != nil {
			return nil, err
		}
	}

	voucher, err := uc.issueVoucher(ctx, tx, domain.VoucherReceipt, patientAccount.ID,
		payment.Amount, payment.PaymentMethod, "payment received from "+patient.Name, paymentDate, now)
	if err != nil {
		return nil, err
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.ActivityPaymentCreate,
		ResourceType: "payment",
		ResourceID:   payment.ID,
		Details: fmt.Sprintf("amount %s, doctor share %s, clinic share %s",
			payment.Amount, payment.DoctorShare, payment.ClinicShare),
		CreatedAt: now,
	}
	if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &PaymentResult{Payment: payment, Voucher: voucher}, nil
}

// WithdrawInput represents input for a doctor withdrawing accrued earnings.
type WithdrawInput struct {
	DoctorID      string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

// WithdrawalResult is a posted withdrawal with its disbursement voucher.
type WithdrawalResult struct {
	Transaction *domain.Transaction
	Voucher     *domain.Voucher
}

// WithdrawDoctorEarnings pays out part of a doctor's accrued share. The
// withdrawal is capped at the account's current balance.
func (uc *PaymentUseCase) WithdrawDoctorEarnings(ctx context.Context, input WithdrawInput) (*WithdrawalResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var result *WithdrawalResult
	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.lockAccount(ctx, tx, domain.AccountTypeDoctor, doctor.ID, doctor.Name, now)
		if err != nil {
			return err
		}

		// The balance check happens under the row lock, so two concurrent
		// withdrawals cannot both pass it.
		if err := account.ValidateWithdrawal(input.Amount); err != nil {
			return err
		}

		voucher, err := uc.issueVoucher(ctx, tx, domain.VoucherPayment, account.ID,
			input.Amount, input.PaymentMethod, "earnings withdrawal by "+doctor.Name, now, now)
		if err != nil {
			return err
		}

		withdrawal := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       account.ID,
			TransactionType: domain.TransactionWithdrawal,
			Amount:          input.Amount,
			Description:     "earnings withdrawal",
			ReferenceType:   domain.ReferenceWithdrawal,
			ReferenceID:     voucher.ID,
			TransactionDate: now,
			PaymentMethod:   input.PaymentMethod,
			Notes:           input.Notes,
			CreatedAt:       now,
		}
		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, withdrawal, uc.rules); err != nil {
			return err
		}

		log := &domain.ActivityLog{
			ID:           uc.idGen.Generate(),
			Action:       domain.ActivityWithdrawalCreate,
			ResourceType: "transaction",
			ResourceID:   withdrawal.ID,
			Details:      fmt.Sprintf("doctor %s withdrew %s", doctor.ID, input.Amount),
			CreatedAt:    now,
		}
		if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = &WithdrawalResult{Transaction: withdrawal, Voucher: voucher}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Withdrawals.Inc()
		uc.metrics.VouchersIssued.WithLabelValues(string(domain.VoucherPayment)).Inc()
	}

	return result, nil
}

// SupplierPurchaseInput represents input for recording a purchase on credit.
type SupplierPurchaseInput struct {
	SupplierID  string
	Amount      decimal.Decimal
	Description string
	Notes       string
}

// RecordSupplierPurchase accrues a purchase against a supplier's account.
func (uc *PaymentUseCase) RecordSupplierPurchase(ctx context.Context, input SupplierPurchaseInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var purchase *domain.Transaction
	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.lockAccount(ctx, tx, domain.AccountTypeSupplier, supplier.ID, supplier.Name, now)
		if err != nil {
			return err
		}

		purchase = &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       account.ID,
			TransactionType: domain.TransactionDebit,
			Amount:          input.Amount,
			Description:     input.Description,
			ReferenceType:   domain.ReferencePurchase,
			TransactionDate: now,
			Notes:           input.Notes,
			CreatedAt:       now,
		}
		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, purchase, uc.rules); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// SupplierPaymentInput represents input for paying a supplier.
type SupplierPaymentInput struct {
	SupplierID    string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

// PaySupplier settles part of what the clinic owes a supplier and issues a
// payment voucher for it.
func (uc *PaymentUseCase) PaySupplier(ctx context.Context, input SupplierPaymentInput) (*WithdrawalResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var result *WithdrawalResult
	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.lockAccount(ctx, tx, domain.AccountTypeSupplier, supplier.ID, supplier.Name, now)
		if err != nil {
			return err
		}

		voucher, err := uc.issueVoucher(ctx, tx, domain.VoucherPayment, account.ID,
			input.Amount, input.PaymentMethod, "payment to supplier "+supplier.Name, now, now)
		if err != nil {
			return err
		}

		settle := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       account.ID,
			TransactionType: domain.TransactionPayment,
			Amount:          input.Amount,
			Description:     "payment to supplier",
			ReferenceType:   domain.ReferencePayment,
			ReferenceID:     voucher.ID,
			TransactionDate: now,
			PaymentMethod:   input.PaymentMethod,
			Notes:           input.Notes,
			CreatedAt:       now,
		}
		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, settle, uc.rules); err != nil {
			return err
		}

		log := &domain.ActivityLog{
			ID:           uc.idGen.Generate(),
			Action:       domain.ActivitySupplierPayment,
			ResourceType: "transaction",
			ResourceID:   settle.ID,
			Details:      fmt.Sprintf("supplier %s paid %s", supplier.ID, input.Amount),
			CreatedAt:    now,
		}
		if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = &WithdrawalResult{Transaction: settle, Voucher: voucher}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RecordExpenseInput represents input for recording an operating expense.
type RecordExpenseInput struct {
	Category      string
	Description   string
	Amount        decimal.Decimal
	ExpenseDate   *time.Time
	PaymentMethod string
	ReceiptNumber string
	Notes         string
}

// RecordExpense records an operating cost. Expenses live outside the account
// ledger and only feed the net profit figure.
func (uc *PaymentUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	expenseDate := now
	if input.ExpenseDate != nil {
		expenseDate = input.ExpenseDate.UTC()
	}

	expense := &domain.Expense{
		ID:            uc.idGen.Generate(),
		Category:      input.Category,
		Description:   input.Description,
		Amount:        input.Amount,
		ExpenseDate:   expenseDate,
		PaymentMethod: input.PaymentMethod,
		ReceiptNumber: input.ReceiptNumber,
		Notes:         input.Notes,
		CreatedAt:     now,
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.ActivityExpenseCreate,
		ResourceType: "expense",
		ResourceID:   expense.ID,
		Details:      fmt.Sprintf("%s: %s", expense.Category, expense.Amount),
		CreatedAt:    now,
	}
	if err := uc.activityRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsInput represents input for listing a patient's payments.
type ListPaymentsInput struct {
	PatientID string
	Limit     int
	Offset    int
}

// ListPaymentsByPatient lists a patient's payments.
func (uc *PaymentUseCase) ListPaymentsByPatient(ctx context.Context, input ListPaymentsInput) ([]*domain.Payment, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.paymentRepo.ListByPatient(ctx, input.PatientID, limit, offset)
}

// lockAccount get-or-creates the holder's account inside tx. The returned
// row is locked until the transaction ends.
func (uc *PaymentUseCase) lockAccount(
	ctx context.Context,
	tx Transaction,
	accountType domain.AccountType,
	holderID, holderName string,
	now time.Time,
) (*domain.Account, error) {
	return uc.accountRepo.GetOrCreate(ctx, tx, &domain.Account{
		ID:          uc.idGen.Generate(),
		AccountType: accountType,
		HolderID:    holderID,
		HolderName:  holderName,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// issueVoucher reserves the next sequential number for the voucher type and
// writes the voucher inside tx.
func (uc *PaymentUseCase) issueVoucher(
	ctx context.Context,
	tx Transaction,
	voucherType domain.VoucherType,
	accountID string,
	amount decimal.Decimal,
	paymentMethod, description string,
	voucherDate, now time.Time,
) (*domain.Voucher, error) {
	seq, err := uc.voucherRepo.NextNumber(ctx, tx, voucherType)
	if err != nil {
		return nil, err
	}

	voucher := &domain.Voucher{
		ID:            uc.idGen.Generate(),
		VoucherType:   voucherType,
		VoucherNumber: domain.FormatVoucherNumber(voucherType, seq),
		AccountID:     accountID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Description:   description,
		VoucherDate:   voucherDate,
		CreatedAt:     now,
	}

	if err := uc.voucherRepo.Create(ctx, tx, voucher); err != nil {
		return nil, err
	}

	return voucher, nil
}
