package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

const appointmentColumns = `id, patient_id, doctor_id, treatment_id, appointment_date,
       status, notes, total_cost, created_at`

// AppointmentRepository implements usecase.AppointmentRepository.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts an appointment.
func (r *AppointmentRepository) Create(ctx context.Context, tx usecase.Transaction, a *domain.Appointment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := pgxTx.Exec(ctx, query,
		a.ID,
		a.PatientID,
		a.DoctorID,
		a.TreatmentID,
		timeToPgTimestamptz(a.AppointmentDate),
		a.Status,
		a.Notes,
		decimalToNumeric(a.TotalCost),
		timeToPgTimestamptz(a.CreatedAt),
	)

	return err
}

// GetByID retrieves an appointment by ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	return scanAppointment(r.pool.QueryRow(ctx, query, id))
}

// ListByPatient lists a patient's appointments newest first.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}

	return appointments, rows.Err()
}

// UpdateStatus updates an appointment's status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}

	return nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var (
		a         domain.Appointment
		apptDate  pgtype.Timestamptz
		totalCost pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.TreatmentID,
		&apptDate,
		&a.Status,
		&a.Notes,
		&totalCost,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}

		return nil, err
	}

	a.AppointmentDate = apptDate.Time
	a.TotalCost = numericToDecimal(totalCost)
	a.CreatedAt = createdAt.Time

	return &a, nil
}
