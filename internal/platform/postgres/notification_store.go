package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

const notificationColumns = `id, employee_id, employee_name, manager_id, manager_name, task_id, message, is_read, created_at`

// PostgresNotificationStore implements the store.NotificationStore interface.
type PostgresNotificationStore struct {
	db     store.DBTX
	seq    store.Sequencer
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a PostgresNotificationStore over a connection or transaction.
func NewPostgresNotificationStore(db store.DBTX, seq store.Sequencer, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNotificationStore{
		db:     db,
		seq:    seq,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	id, err := s.seq.NextID(ctx, store.NotificationCounter)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, n.EmployeeID, n.EmployeeName, n.ManagerID, n.ManagerName, n.TaskID, n.Message, n.IsRead, n.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("employee_id", n.EmployeeID),
			slog.Int64("task_id", n.TaskID))
		return MapError(err)
	}

	n.ID = id
	return nil
}

// GetByID implements store.NotificationStore.GetByID
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, MapError(err)
	}
	return n, nil
}

// List implements store.NotificationStore.List
func (s *PostgresNotificationStore) List(
	ctx context.Context,
	filter store.NotificationFilter,
) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE ($1 = '' OR employee_id = $1) AND (NOT $2 OR is_read = FALSE)
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, filter.EmployeeID, filter.UnreadOnly)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list notifications",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, MapError(err)
		}
		out = append(out, n)
	}
	return out, MapError(rows.Err())
}

// MarkRead implements store.NotificationStore.MarkRead
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrNotificationNotFound)
}

// Delete implements store.NotificationStore.Delete
func (s *PostgresNotificationStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrNotificationNotFound)
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(
		&n.ID,
		&n.EmployeeID,
		&n.EmployeeName,
		&n.ManagerID,
		&n.ManagerName,
		&n.TaskID,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}
