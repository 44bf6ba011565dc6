package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

const voucherColumns = `id, voucher_type, voucher_number, account_id, amount,
       payment_method, description, voucher_date, created_by, notes, created_at`

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

// NextNumber reserves the next sequential number for a voucher type. The
// upsert locks the counter row, so concurrent issuers serialize and no
// number is handed out twice.
func (r *VoucherRepository) NextNumber(ctx context.Context, tx usecase.Transaction, t domain.VoucherType) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO voucher_sequences (voucher_type, last_number)
		VALUES ($1, 1)
		ON CONFLICT (voucher_type)
		DO UPDATE SET last_number = voucher_sequences.last_number + 1
		RETURNING last_number`

	var n int64
	err := pgxTx.QueryRow(ctx, query, t).Scan(&n)

	return n, err
}

// Create inserts a voucher.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, v *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := pgxTx.Exec(ctx, query,
		v.ID,
		v.VoucherType,
		v.VoucherNumber,
		v.AccountID,
		decimalToNumeric(v.Amount),
		v.PaymentMethod,
		v.Description,
		timeToPgTimestamptz(v.VoucherDate),
		v.CreatedBy,
		v.Notes,
		timeToPgTimestamptz(v.CreatedAt),
	)

	return err
}

// ListByAccount lists an account's vouchers newest first.
func (r *VoucherRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers
		WHERE account_id = $1
		ORDER BY voucher_date DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		var (
			v           domain.Voucher
			amount      pgtype.Numeric
			voucherDate pgtype.Timestamptz
			createdAt   pgtype.Timestamptz
		)
		err := rows.Scan(
			&v.ID, &v.VoucherType, &v.VoucherNumber, &v.AccountID, &amount,
			&v.PaymentMethod, &v.Description, &voucherDate, &v.CreatedBy, &v.Notes, &createdAt)
		if err != nil {
			return nil, err
		}
		v.Amount = numericToDecimal(amount)
		v.VoucherDate = voucherDate.Time
		v.CreatedAt = createdAt.Time
		vouchers = append(vouchers, &v)
	}

	return vouchers, rows.Err()
}
