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

const paymentColumns = `id, appointment_id, patient_id, amount, payment_method, payment_date,
       status, doctor_share, clinic_share, doctor_percentage, clinic_percentage, notes, created_at`

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a payment with its frozen split.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, p *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := pgxTx.Exec(ctx, query,
		p.ID,
		p.AppointmentID,
		p.PatientID,
		decimalToNumeric(p.Amount),
		p.PaymentMethod,
		timeToPgTimestamptz(p.PaymentDate),
		p.Status,
		decimalToNumeric(p.DoctorShare),
		decimalToNumeric(p.ClinicShare),
		decimalToNumeric(p.DoctorPercentage),
		decimalToNumeric(p.ClinicPercentage),
		p.Notes,
		timeToPgTimestamptz(p.CreatedAt),
	)

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// ListByPatient lists a patient's payments newest first.
func (r *PaymentRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE patient_id = $1
		ORDER BY payment_date DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p           domain.Payment
		amount      pgtype.Numeric
		paymentDate pgtype.Timestamptz
		doctorShare pgtype.Numeric
		clinicShare pgtype.Numeric
		doctorPct   pgtype.Numeric
		clinicPct   pgtype.Numeric
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&p.ID,
		&p.AppointmentID,
		&p.PatientID,
		&amount,
		&p.PaymentMethod,
		&paymentDate,
		&p.Status,
		&doctorShare,
		&clinicShare,
		&doctorPct,
		&clinicPct,
		&p.Notes,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	p.Amount = numericToDecimal(amount)
	p.PaymentDate = paymentDate.Time
	p.DoctorShare = numericToDecimal(doctorShare)
	p.ClinicShare = numericToDecimal(clinicShare)
	p.DoctorPercentage = numericToDecimal(doctorPct)
	p.ClinicPercentage = numericToDecimal(clinicPct)
	p.CreatedAt = createdAt.Time

	return &p, nil
}
