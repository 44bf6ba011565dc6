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

const transactionColumns = `id, account_id, transaction_type, amount, description,
       reference_type, reference_id, transaction_date, payment_method, notes, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction to the ledger. Rows are insert-only; nothing
// ever updates or deletes them.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO financial_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := pgxTx.Exec(ctx, query,
		t.ID,
		t.AccountID,
		t.TransactionType,
		decimalToNumeric(t.Amount),
		t.Description,
		t.ReferenceType,
		t.ReferenceID,
		timeToPgTimestamptz(t.TransactionDate),
		t.PaymentMethod,
		t.Notes,
		timeToPgTimestamptz(t.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByAccount returns an account's transactions newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	return r.queryTransactions(ctx, query, accountID, limit, offset)
}

// ListByAccountOldestFirst returns an account's full history in posting
// order, for replay.
func (r *TransactionRepository) ListByAccountOldestFirst(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions
		WHERE account_id = $1
		ORDER BY created_at, id`

	return r.queryTransactions(ctx, query, accountID)
}

// HasReversal reports whether a reversal already points at the transaction.
func (r *TransactionRepository) HasReversal(ctx context.Context, originalID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM financial_transactions
		WHERE reference_type = $1 AND reference_id = $2
	)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, domain.ReferenceReversal, originalID).Scan(&exists)

	return exists, err
}

// HasReversalTx runs the reversal-existence check inside an open database
// transaction, after the caller has locked the account row.
func (r *TransactionRepository) HasReversalTx(ctx context.Context, tx usecase.Transaction, originalID string) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT EXISTS (
		SELECT 1 FROM financial_transactions
		WHERE reference_type = $1 AND reference_id = $2
	)`

	var exists bool
	err := pgxTx.QueryRow(ctx, query, domain.ReferenceReversal, originalID).Scan(&exists)

	return exists, err
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		amount    pgtype.Numeric
		txDate    pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.TransactionType,
		&amount,
		&t.Description,
		&t.ReferenceType,
		&t.ReferenceID,
		&txDate,
		&t.PaymentMethod,
		&t.Notes,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	t.Amount = numericToDecimal(amount)
	t.TransactionDate = txDate.Time
	t.CreatedAt = createdAt.Time

	return &t, nil
}
