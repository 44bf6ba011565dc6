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

// PatientRepository implements usecase.PatientRepository.
type PatientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

// Create inserts a patient record.
func (r *PatientRepository) Create(ctx context.Context, tx usecase.Transaction, p *domain.Patient) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO patients (id, name, phone, email, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := pgxTx.Exec(ctx, query,
		p.ID, p.Name, p.Phone, p.Email, p.IsActive, timeToPgTimestamptz(p.CreatedAt))

	return err
}

// GetByID retrieves a patient by ID.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	query := `SELECT id, name, phone, email, is_active, created_at FROM patients WHERE id = $1`

	var (
		p         domain.Patient
		createdAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email, &p.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}

		return nil, err
	}

	p.CreatedAt = createdAt.Time

	return &p, nil
}

// List lists patients with pagination.
func (r *PatientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Patient, error) {
	query := `SELECT id, name, phone, email, is_active, created_at FROM patients
		ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*domain.Patient
	for rows.Next() {
		var (
			p         domain.Patient
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.IsActive, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = createdAt.Time
		patients = append(patients, &p)
	}

	return patients, rows.Err()
}
