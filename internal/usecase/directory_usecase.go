package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
)

// DirectoryUseCase manages the patient, doctor, supplier, and treatment
// records the accounting core hangs off of. Creating a party eagerly opens
// its ledger account so the first posting never races account creation.
type DirectoryUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	patientRepo  PatientRepository
	doctorRepo   DoctorRepository
	supplierRepo SupplierRepository
	treatRepo    TreatmentRepository
	activityRepo ActivityRepository
	idGen        IDGenerator

	// Fallback doctor percentage for treatments created without one.
	defaultDoctorPct decimal.Decimal
}

// NewDirectoryUseCase creates a new DirectoryUseCase.
func NewDirectoryUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	supplierRepo SupplierRepository,
	treatRepo TreatmentRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	defaultDoctorPct decimal.Decimal,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		txManager:        txManager,
		accountRepo:      accountRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		supplierRepo:     supplierRepo,
		treatRepo:        treatRepo,
		activityRepo:     activityRepo,
		idGen:            idGen,
		defaultDoctorPct: defaultDoctorPct,
	}
}

// CreatePatientInput represents input for registering a patient.
type CreatePatientInput struct {
	Name  string
	Phone string
	Email string
}

// CreatePatient registers a patient and opens their ledger account.
func (uc *DirectoryUseCase) CreatePatient(ctx context.Context, input CreatePatientInput) (*domain.Patient, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patient := &domain.Patient{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		IsActive:  true,
		CreatedAt: now,
	}

	err := uc.withAccount(ctx, domain.AccountTypePatient, patient.ID, patient.Name, now,
		func(tx Transaction) error {
			return uc.patientRepo.Create(ctx, tx, patient)
		})
	if err != nil {
		return nil, err
	}

	return patient, nil
}

// CreateDoctorInput represents input for registering a doctor.
type CreateDoctorInput struct {
	Name           string
	Specialization string
	Phone          string
	Email          string
}

// CreateDoctor registers a doctor and opens their earnings account.
func (uc *DirectoryUseCase) CreateDoctor(ctx context.Context, input CreateDoctorInput) (*domain.Doctor, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doctor := &domain.Doctor{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Specialization: input.Specialization,
		Phone:          input.Phone,
		Email:          input.Email,
		IsActive:       true,
		CreatedAt:      now,
	}

	err := uc.withAccount(ctx, domain.AccountTypeDoctor, doctor.ID, doctor.Name, now,
		func(tx Transaction) error {
			return uc.doctorRepo.Create(ctx, tx, doctor)
		})
	if err != nil {
		return nil, err
	}

	return doctor, nil
}

// CreateSupplierInput represents input for registering a supplier.
type CreateSupplierInput struct {
	Name          string
	ContactPerson string
	Phone         string
	PaymentTerms  string
}

// CreateSupplier registers a supplier and opens its payables account.
func (uc *DirectoryUseCase) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		PaymentTerms:  input.PaymentTerms,
		IsActive:      true,
		CreatedAt:     now,
	}

	err := uc.withAccount(ctx, domain.AccountTypeSupplier, supplier.ID, supplier.Name, now,
		func(tx Transaction) error {
			return uc.supplierRepo.Create(ctx, tx, supplier)
		})
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// CreateTreatmentInput represents input for defining a treatment.
type CreateTreatmentInput struct {
	Name             string
	Description      string
	BasePrice        decimal.Decimal
	DurationMinutes  int
	Category         string
	DoctorPercentage decimal.Decimal
}

// CreateTreatment defines a billable treatment. The clinic percentage is
// derived so the two shares always sum to 100.
func (uc *DirectoryUseCase) CreateTreatment(ctx context.Context, input CreateTreatmentInput) (*domain.Treatment, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.DoctorPercentage.IsZero() {
		input.DoctorPercentage = uc.defaultDoctorPct
	}

	if err := domain.ValidatePercentage(input.DoctorPercentage); err != nil {
		return nil, err
	}

	if input.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	treatment := &domain.Treatment{
		ID:               uc.idGen.Generate(),
		Name:             input.Name,
		Description:      input.Description,
		BasePrice:        input.BasePrice,
		DurationMinutes:  input.DurationMinutes,
		Category:         input.Category,
		DoctorPercentage: input.DoctorPercentage,
		ClinicPercentage: decimal.NewFromInt(100).Sub(input.DoctorPercentage),
		IsActive:         true,
		CreatedAt:        time.Now().UTC(),
	}

	if err := uc.treatRepo.Create(ctx, treatment); err != nil {
		return nil, err
	}

	return treatment, nil
}

// withAccount creates a party record and its ledger account atomically.
func (uc *DirectoryUseCase) withAccount(
	ctx context.Context,
	accountType domain.AccountType,
	holderID, holderName string,
	now time.Time,
	createParty func(tx Transaction) error,
) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := createParty(tx); err != nil {
		return err
	}

	account, err := uc.accountRepo.GetOrCreate(ctx, tx, &domain.Account{
		ID:          uc.idGen.Generate(),
		AccountType: accountType,
		HolderID:    holderID,
		HolderName:  holderName,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return err
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.ActivityAccountCreate,
		ResourceType: "account",
		ResourceID:   account.ID,
		Details:      fmt.Sprintf("%s account for holder %s", accountType, holderID),
		CreatedAt:    now,
	}
	if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetPatient retrieves a patient by ID.
func (uc *DirectoryUseCase) GetPatient(ctx context.Context, id string) (*domain.Patient, error) {
	return uc.patientRepo.GetByID(ctx, id)
}

// GetDoctor retrieves a doctor by ID.
func (uc *DirectoryUseCase) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	return uc.doctorRepo.GetByID(ctx, id)
}

// GetSupplier retrieves a supplier by ID.
func (uc *DirectoryUseCase) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	return uc.supplierRepo.GetByID(ctx, id)
}

// GetTreatment retrieves a treatment by ID.
func (uc *DirectoryUseCase) GetTreatment(ctx context.Context, id string) (*domain.Treatment, error) {
	return uc.treatRepo.GetByID(ctx, id)
}

// ListPatients lists patients with pagination.
func (uc *DirectoryUseCase) ListPatients(ctx context.Context, limit, offset int) ([]*domain.Patient, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.patientRepo.List(ctx, limit, offset)
}

// ListDoctors lists doctors with pagination.
func (uc *DirectoryUseCase) ListDoctors(ctx context.Context, limit, offset int) ([]*domain.Doctor, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.doctorRepo.List(ctx, limit, offset)
}

// ListSuppliers lists suppliers with pagination.
func (uc *DirectoryUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.supplierRepo.List(ctx, limit, offset)
}

// ListTreatments lists treatments with pagination.
func (uc *DirectoryUseCase) ListTreatments(ctx context.Context, limit, offset int) ([]*domain.Treatment, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.treatRepo.List(ctx, limit, offset)
}
