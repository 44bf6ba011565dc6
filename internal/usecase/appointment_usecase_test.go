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

type appointmentFixture struct {
	uc          *usecase.AppointmentUseCase
	accountRepo *mocks.MockAccountRepository
	txRepo      *mocks.MockTransactionRepository
	appointRepo *mocks.MockAppointmentRepository
}

func newAppointmentFixture(ctx context.Context) *appointmentFixture {
	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	appointRepo := mocks.NewMockAppointmentRepository()
	patientRepo := mocks.NewMockPatientRepository()
	doctorRepo := mocks.NewMockDoctorRepository()
	treatRepo := mocks.NewMockTreatmentRepository()

	_ = patientRepo.Create(ctx, nil, &domain.Patient{ID: "patient-1", Name: "Asha Verma"})
	_ = doctorRepo.Create(ctx, nil, &domain.Doctor{ID: "doctor-1", Name: "Dr. Rao"})
	_ = treatRepo.Create(ctx, &domain.Treatment{
		ID:               "treatment-1",
		Name:             "Cleaning",
		BasePrice:        decimal.NewFromInt(150),
		DoctorPercentage: decimal.NewFromInt(50),
		ClinicPercentage: decimal.NewFromInt(50),
	})

	uc := usecase.NewAppointmentUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		txRepo,
		appointRepo,
		patientRepo,
		doctorRepo,
		treatRepo,
		mocks.NewMockActivityRepository(),
		mocks.NewMockIDGenerator(),
		domain.PostingRules{},
	)

	return &appointmentFixture{
		uc:          uc,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		appointRepo: appointRepo,
	}
}

func TestCreateAppointmentAccruesDues(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(ctx)

	appointment, err := f.uc.CreateAppointment(ctx, usecase.CreateAppointmentInput{
		PatientID:       "patient-1",
		DoctorID:        "doctor-1",
		TreatmentID:     "treatment-1",
		AppointmentDate: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		TotalCost:       decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account, err := f.accountRepo.GetByHolder(ctx, domain.AccountTypePatient, "patient-1")
	if err != nil {
		t.Fatalf("patient account was not opened: %v", err)
	}
	if !account.TotalDues.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total dues = %s, want 500", account.TotalDues)
	}
	if !account.Balance.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("balance = %s, want -500", account.Balance)
	}

	history, _ := f.txRepo.ListByAccount(ctx, account.ID, 10, 0)
	if len(history) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(history))
	}
	if history[0].ReferenceType != domain.ReferenceAppointment || history[0].ReferenceID != appointment.ID {
		t.Errorf("debit does not reference the appointment: %+v", history[0])
	}
}

func TestCreateAppointmentDefaultsToBasePrice(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(ctx)

	appointment, err := f.uc.CreateAppointment(ctx, usecase.CreateAppointmentInput{
		PatientID:       "patient-1",
		DoctorID:        "doctor-1",
		TreatmentID:     "treatment-1",
		AppointmentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !appointment.TotalCost.Equal(decimal.NewFromInt(150)) {
		t.Errorf("cost = %s, want treatment base price 150", appointment.TotalCost)
	}
}

func TestCreateAppointmentUnknownParties(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(ctx)

	tests := []struct {
		name    string
		input   usecase.CreateAppointmentInput
		wantErr error
	}{
		{
			name: "unknown patient",
			input: usecase.CreateAppointmentInput{
				PatientID: "patient-404", DoctorID: "doctor-1", TreatmentID: "treatment-1",
			},
			wantErr: domain.ErrPatientNotFound,
		},
		{
			name: "unknown doctor",
			input: usecase.CreateAppointmentInput{
				PatientID: "patient-1", DoctorID: "doctor-404", TreatmentID: "treatment-1",
			},
			wantErr: domain.ErrDoctorNotFound,
		},
		{
			name: "unknown treatment",
			input: usecase.CreateAppointmentInput{
				PatientID: "patient-1", DoctorID: "doctor-1", TreatmentID: "treatment-404",
			},
			wantErr: domain.ErrTreatmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateAppointment(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(ctx)

	appointment, err := f.uc.CreateAppointment(ctx, usecase.CreateAppointmentInput{
		PatientID:   "patient-1",
		DoctorID:    "doctor-1",
		TreatmentID: "treatment-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.uc.UpdateAppointmentStatus(ctx, appointment.ID, domain.AppointmentCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, _ := f.uc.GetAppointment(ctx, appointment.ID)
	if got.Status != domain.AppointmentCancelled {
		t.Errorf("status = %s", got.Status)
	}
	if got.CountsTowardBilling() {
		t.Error("cancelled appointment still counts toward billing")
	}

	if err := f.uc.UpdateAppointmentStatus(ctx, appointment.ID, "teleported"); err == nil {
		t.Error("expected error for unknown status")
	}
}
