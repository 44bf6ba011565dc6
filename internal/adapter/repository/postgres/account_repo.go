package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

const accountColumns = `id, account_type, account_holder_id, account_holder_name,
       total_dues, total_paid, balance, last_transaction_date, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetOrCreate inserts the candidate account unless one already exists for its
// (account_type, account_holder_id) key. The no-op DO UPDATE makes the
// conflicting row both locked and returnable, so the surviving account stays
// locked until the surrounding transaction ends.
func (r *AccountRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_type, account_holder_id)
		DO UPDATE SET account_holder_name = accounts.account_holder_name
		RETURNING ` + accountColumns

	row := pgxTx.QueryRow(ctx, query,
		account.ID,
		account.AccountType,
		account.HolderID,
		account.HolderName,
		decimalToNumeric(account.TotalDues),
		decimalToNumeric(account.TotalPaid),
		decimalToNumeric(account.Balance),
		timePtrToPgTimestamptz(account.LastTransactionDate),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return scanAccount(row)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByHolder retrieves an account by its (type, holder) key.
func (r *AccountRepository) GetByHolder(ctx context.Context, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE account_type = $1 AND account_holder_id = $2`

	return scanAccount(r.pool.QueryRow(ctx, query, accountType, holderID))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(pgxTx.QueryRow(ctx, query, id))
}

// GetByHolderForUpdate retrieves an account by its key with a FOR UPDATE lock.
func (r *AccountRepository) GetByHolderForUpdate(ctx context.Context, tx usecase.Transaction, accountType domain.AccountType, holderID string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE account_type = $1 AND account_holder_id = $2 FOR UPDATE`

	return scanAccount(pgxTx.QueryRow(ctx, query, accountType, holderID))
}

// UpdateBalances persists an account's balance, running totals, and last
// transaction date.
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET total_dues = $2,
		    total_paid = $3,
		    balance = $4,
		    last_transaction_date = $5,
		    updated_at = $6
		WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query,
		account.ID,
		decimalToNumeric(account.TotalDues),
		decimalToNumeric(account.TotalPaid),
		decimalToNumeric(account.Balance),
		timePtrToPgTimestamptz(account.LastTransactionDate),
		timeToPgTimestamptz(time.Now().UTC()),
	)

	return err
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		dues      pgtype.Numeric
		paid      pgtype.Numeric
		balance   pgtype.Numeric
		lastTx    pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.AccountType,
		&account.HolderID,
		&account.HolderName,
		&dues,
		&paid,
		&balance,
		&lastTx,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.TotalDues = numericToDecimal(dues)
	account.TotalPaid = numericToDecimal(paid)
	account.Balance = numericToDecimal(balance)
	account.LastTransactionDate = pgTimestamptzToPtr(lastTx)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}

	return &t.Time
}
