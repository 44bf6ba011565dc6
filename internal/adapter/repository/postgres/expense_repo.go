package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curaclinic/ledger/internal/domain"
)

const expenseColumns = `id, category, description, amount, expense_date,
       payment_method, receipt_number, notes, created_at`

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts an expense.
func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.Category,
		e.Description,
		decimalToNumeric(e.Amount),
		timeToPgTimestamptz(e.ExpenseDate),
		e.PaymentMethod,
		e.ReceiptNumber,
		e.Notes,
		timeToPgTimestamptz(e.CreatedAt),
	)

	return err
}

// List lists expenses newest first.
func (r *ExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
		ORDER BY expense_date DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var (
			e           domain.Expense
			amount      pgtype.Numeric
			expenseDate pgtype.Timestamptz
			createdAt   pgtype.Timestamptz
		)
		err := rows.Scan(
			&e.ID, &e.Category, &e.Description, &amount, &expenseDate,
			&e.PaymentMethod, &e.ReceiptNumber, &e.Notes, &createdAt)
		if err != nil {
			return nil, err
		}
		e.Amount = numericToDecimal(amount)
		e.ExpenseDate = expenseDate.Time
		e.CreatedAt = createdAt.Time
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}
