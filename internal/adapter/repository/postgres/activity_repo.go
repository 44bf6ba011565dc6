package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

const activityColumns = `id, action, resource_type, resource_id, details, request_id, created_at`

// ActivityRepository implements usecase.ActivityRepository.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create inserts an activity log entry outside any transaction.
func (r *ActivityRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	_, err := r.pool.Exec(ctx, insertActivityQuery, activityArgs(log)...)

	return err
}

// CreateTx inserts an activity log entry inside tx, so the audit trail
// commits or rolls back with the operation it describes.
func (r *ActivityRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.ActivityLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertActivityQuery, activityArgs(log)...)

	return err
}

const insertActivityQuery = `
	INSERT INTO activity_logs (` + activityColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

func activityArgs(log *domain.ActivityLog) []any {
	return []any{
		log.ID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.Details,
		log.RequestID,
		timeToPgTimestamptz(log.CreatedAt),
	}
}

// List retrieves activity logs with filtering, newest first.
func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE 1=1`
	args := []any{}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += fmt.Sprintf(" AND resource_type = $%d", len(args))
	}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += fmt.Sprintf(" AND resource_id = $%d", len(args))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.ActivityLog
	for rows.Next() {
		var (
			log       domain.ActivityLog
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(
			&log.ID, &log.Action, &log.ResourceType, &log.ResourceID,
			&log.Details, &log.RequestID, &createdAt)
		if err != nil {
			return nil, err
		}
		log.CreatedAt = createdAt.Time
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
