package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a PostgresHistoryStore over a connection or transaction.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Append implements store.HistoryStore.Append
func (s *PostgresHistoryStore) Append(ctx context.Context, employeeID string, e domain.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employee_task_history
			(employee_id, task_id, task_title, manager_id, manager_name, assigned_at, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, employeeID, e.TaskID, e.TaskTitle, e.ManagerID, e.ManagerName, e.AssignedAt, string(e.Status), nullTime(e.CompletedAt))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to append history entry",
			slog.String("error", err.Error()),
			slog.String("employee_id", employeeID),
			slog.Int64("task_id", e.TaskID))
		return MapError(err)
	}
	return nil
}

// List implements store.HistoryStore.List
func (s *PostgresHistoryStore) List(ctx context.Context, employeeID string) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, task_title, manager_id, manager_name, assigned_at, status, completed_at
		FROM employee_task_history
		WHERE employee_id = $1
		ORDER BY id
	`, employeeID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var (
			e           domain.HistoryEntry
			status      string
			completedAt sql.NullTime
		)
		if err := rows.Scan(&e.TaskID, &e.TaskTitle, &e.ManagerID, &e.ManagerName, &e.AssignedAt, &status, &completedAt); err != nil {
			return nil, MapError(err)
		}
		e.Status = domain.TaskStatus(status)
		if completedAt.Valid {
			at := completedAt.Time
			e.CompletedAt = &at
		}
		entries = append(entries, e)
	}
	return entries, MapError(rows.Err())
}

// UpdateStatus implements store.HistoryStore.UpdateStatus
// Only the earliest entry for the task is touched.
func (s *PostgresHistoryStore) UpdateStatus(
	ctx context.Context,
	employeeID string,
	taskID int64,
	status domain.TaskStatus,
	completedAt *time.Time,
) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE employee_task_history
		SET status = $3, completed_at = COALESCE($4, completed_at)
		WHERE id = (
			SELECT id FROM employee_task_history
			WHERE employee_id = $1 AND task_id = $2
			ORDER BY id
			LIMIT 1
		)
	`, employeeID, taskID, string(status), nullTime(completedAt))
	if err != nil {
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
