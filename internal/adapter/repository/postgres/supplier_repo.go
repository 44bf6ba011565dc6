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

// SupplierRepository implements usecase.SupplierRepository.
type SupplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{pool: pool}
}

// Create inserts a supplier record.
func (r *SupplierRepository) Create(ctx context.Context, tx usecase.Transaction, s *domain.Supplier) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO suppliers (id, name, contact_person, phone, payment_terms, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := pgxTx.Exec(ctx, query,
		s.ID, s.Name, s.ContactPerson, s.Phone, s.PaymentTerms, s.IsActive,
		timeToPgTimestamptz(s.CreatedAt))

	return err
}

// GetByID retrieves a supplier by ID.
func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	query := `SELECT id, name, contact_person, phone, payment_terms, is_active, created_at
		FROM suppliers WHERE id = $1`

	var (
		s         domain.Supplier
		createdAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.PaymentTerms, &s.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}

		return nil, err
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}

// List lists suppliers with pagination.
func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*domain.Supplier, error) {
	query := `SELECT id, name, contact_person, phone, payment_terms, is_active, created_at
		FROM suppliers ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		var (
			s         domain.Supplier
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.PaymentTerms, &s.IsActive, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = createdAt.Time
		suppliers = append(suppliers, &s)
	}

	return suppliers, rows.Err()
}
