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

// DoctorRepository implements usecase.DoctorRepository.
type DoctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

// Create inserts a doctor record.
func (r *DoctorRepository) Create(ctx context.Context, tx usecase.Transaction, d *domain.Doctor) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO doctors (id, name, specialization, phone, email, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := pgxTx.Exec(ctx, query,
		d.ID, d.Name, d.Specialization, d.Phone, d.Email, d.IsActive,
		timeToPgTimestamptz(d.CreatedAt))

	return err
}

// GetByID retrieves a doctor by ID.
func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	query := `SELECT id, name, specialization, phone, email, is_active, created_at
		FROM doctors WHERE id = $1`

	var (
		d         domain.Doctor
		createdAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.Email, &d.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDoctorNotFound
		}

		return nil, err
	}

	d.CreatedAt = createdAt.Time

	return &d, nil
}

// List lists doctors with pagination.
func (r *DoctorRepository) List(ctx context.Context, limit, offset int) ([]*domain.Doctor, error) {
	query := `SELECT id, name, specialization, phone, email, is_active, created_at
		FROM doctors ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*domain.Doctor
	for rows.Next() {
		var (
			d         domain.Doctor
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.Email, &d.IsActive, &createdAt); err != nil {
			return nil, err
		}
		d.CreatedAt = createdAt.Time
		doctors = append(doctors, &d)
	}

	return doctors, rows.Err()
}
