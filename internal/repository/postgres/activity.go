package postgres

import (
	"context"
	"database/sql"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/logger"
	"school-lending-backend/internal/repository"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, e *domain.ActivityLog) error {
	query := `INSERT INTO log_aktivitas (user_id, aktivitas, detail, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.UserID, e.Action, e.Detail, time.Now()).Scan(&e.ID)
}

const activityColumns = `l.id, l.user_id, COALESCE(u.nama, ''), l.aktivitas, l.detail, l.created_at`

func (r *activityLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]domain.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var e domain.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Detail, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *activityLogRepository) List(ctx context.Context) ([]domain.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM log_aktivitas l LEFT JOIN users u ON u.id = l.user_id ORDER BY l.created_at DESC`
	return r.queryLogs(ctx, query)
}

func (r *activityLogRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM log_aktivitas l JOIN users u ON u.id = l.user_id WHERE u.role = $1 ORDER BY l.created_at DESC`
	return r.queryLogs(ctx, query, role)
}

// DeleteByRole bulk deletes all entries whose actor carries the given role.
func (r *activityLogRepository) DeleteByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM log_aktivitas WHERE user_id IN (SELECT id FROM users WHERE role = $1)`, role)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DeleteActivityLogsByRole", n, err, "role", role)
	return n, err
}
