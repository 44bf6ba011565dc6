package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
)

// AppointmentUseCase handles appointment booking and the dues it accrues.
type AppointmentUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	txRepo          TransactionRepository
	appointmentRepo AppointmentRepository
	patientRepo     PatientRepository
	doctorRepo      DoctorRepository
	treatmentRepo   TreatmentRepository
	activityRepo    ActivityRepository
	idGen           IDGenerator
	rules           domain.PostingRules
}

// NewAppointmentUseCase creates a new AppointmentUseCase.
func NewAppointmentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	appointmentRepo AppointmentRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	treatmentRepo TreatmentRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
	rules domain.PostingRules,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		txRepo:          txRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		treatmentRepo:   treatmentRepo,
		activityRepo:    activityRepo,
		idGen:           idGen,
		rules:           rules,
	}
}

// CreateAppointmentInput represents input for booking an appointment.
type CreateAppointmentInput struct {
	PatientID       string
	DoctorID        string
	TreatmentID     string
	AppointmentDate time.Time
	TotalCost       decimal.Decimal
	Notes           string
}

// CreateAppointment books an appointment and, when it carries a positive
// cost, debits the patient's account for it in the same transaction. A zero
// cost books the appointment without touching the ledger.
func (uc *AppointmentUseCase) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error) {
	patient, err := uc.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.doctorRepo.GetByID(ctx, input.DoctorID); err != nil {
		return nil, err
	}

	treatment, err := uc.treatmentRepo.GetByID(ctx, input.TreatmentID)
	if err != nil {
		return nil, err
	}

	cost := input.TotalCost
	if cost.IsZero() {
		cost = treatment.BasePrice
	}
	if cost.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	appointment := &domain.Appointment{
		ID:              uc.idGen.Generate(),
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		TreatmentID:     input.TreatmentID,
		AppointmentDate: input.AppointmentDate.UTC(),
		Status:          domain.AppointmentScheduled,
		Notes:           input.Notes,
		TotalCost:       cost,
		CreatedAt:       now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		return nil, err
	}

	if appointment.Billable() {
		account, err := uc.accountRepo.GetOrCreate(ctx, tx, &domain.Account{
			ID:          uc.idGen.Generate(),
			AccountType: domain.AccountTypePatient,
			HolderID:    patient.ID,
			HolderName:  patient.Name,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, err
		}

		debit := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			AccountID:       account.ID,
			TransactionType: domain.TransactionDebit,
			Amount:          appointment.TotalCost,
			Description:     fmt.Sprintf("charge for %s", treatment.Name),
			ReferenceType:   domain.ReferenceAppointment,
			ReferenceID:     appointment.ID,
			TransactionDate: now,
			CreatedAt:       now,
		}

		if err := postToAccount(ctx, tx, uc.txRepo, uc.accountRepo, account, debit, uc.rules); err != nil {
			return nil, err
		}
	}

	log := &domain.ActivityLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.ActivityAppointmentCreate,
		ResourceType: "appointment",
		ResourceID:   appointment.ID,
		Details:      fmt.Sprintf("patient %s, treatment %s, cost %s", patient.ID, treatment.ID, cost),
		CreatedAt:    now,
	}
	if err := uc.activityRepo.CreateTx(ctx, tx, log); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return appointment, nil
}

// GetAppointment retrieves an appointment by ID.
func (uc *AppointmentUseCase) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return uc.appointmentRepo.GetByID(ctx, id)
}

// ListAppointmentsInput represents input for listing a patient's appointments.
type ListAppointmentsInput struct {
	PatientID string
	Limit     int
	Offset    int
}

// ListAppointmentsByPatient lists a patient's appointments.
func (uc *AppointmentUseCase) ListAppointmentsByPatient(ctx context.Context, input ListAppointmentsInput) ([]*domain.Appointment, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.appointmentRepo.ListByPatient(ctx, input.PatientID, limit, offset)
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
func (uc *AppointmentUseCase) UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	switch status {
	case domain.AppointmentScheduled, domain.AppointmentConfirmed,
		domain.AppointmentCompleted, domain.AppointmentCancelled:
	default:
		return fmt.Errorf("unknown appointment status %q: %w", status, domain.ErrUnsupportedPosting)
	}

	if _, err := uc.appointmentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.appointmentRepo.UpdateStatus(ctx, id, status)
}
