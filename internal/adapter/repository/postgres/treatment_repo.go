package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curaclinic/ledger/internal/domain"
)

const treatmentColumns = `id, name, description, base_price, duration_minutes, category,
       doctor_percentage, clinic_percentage, is_active, created_at`

// TreatmentRepository implements usecase.TreatmentRepository.
type TreatmentRepository struct {
	pool *pgxpool.Pool
}

// NewTreatmentRepository creates a new TreatmentRepository.
func NewTreatmentRepository(pool *pgxpool.Pool) *TreatmentRepository {
	return &TreatmentRepository{pool: pool}
}

// Create inserts a treatment.
func (r *TreatmentRepository) Create(ctx context.Context, t *domain.Treatment) error {
	query := `
		INSERT INTO treatments (` + treatmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		decimalToNumeric(t.BasePrice),
		t.DurationMinutes,
		t.Category,
		decimalToNumeric(t.DoctorPercentage),
		decimalToNumeric(t.ClinicPercentage),
		t.IsActive,
		timeToPgTimestamptz(t.CreatedAt),
	)

	return err
}

// GetByID retrieves a treatment by ID.
func (r *TreatmentRepository) GetByID(ctx context.Context, id string) (*domain.Treatment, error) {
	query := `SELECT ` + treatmentColumns + ` FROM treatments WHERE id = $1`

	return scanTreatment(r.pool.QueryRow(ctx, query, id))
}

// List lists treatments with pagination.
func (r *TreatmentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Treatment, error) {
	query := `SELECT ` + treatmentColumns + ` FROM treatments
		ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treatments []*domain.Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}

	return treatments, rows.Err()
}

func scanTreatment(row pgx.Row) (*domain.Treatment, error) {
	var (
		t         domain.Treatment
		basePrice pgtype.Numeric
		doctorPct pgtype.Numeric
		clinicPct pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&basePrice,
		&t.DurationMinutes,
		&t.Category,
		&doctorPct,
		&clinicPct,
		&t.IsActive,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTreatmentNotFound
		}

		return nil, err
	}

	t.BasePrice = numericToDecimal(basePrice)
	t.DoctorPercentage = numericToDecimal(doctorPct)
	t.ClinicPercentage = numericToDecimal(clinicPct)
	t.CreatedAt = createdAt.Time

	return &t, nil
}
