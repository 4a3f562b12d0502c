package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

const taskColumns = `id, title, description, priority, deadline, metadata, status,
	manager_id, manager_name, assigned_employees, created_at, assigned_at`

// PostgresTaskStore implements the store.TaskStore interface.
// Task IDs come from the "task" counter.
type PostgresTaskStore struct {
	db     store.DBTX
	seq    store.Sequencer
	logger *slog.Logger
}

// NewPostgresTaskStore creates a PostgresTaskStore over a connection or transaction.
func NewPostgresTaskStore(db store.DBTX, seq store.Sequencer, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		seq:    seq,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	metadata, assignees, err := encodeTaskJSON(task)
	if err != nil {
		return err
	}

	id, err := s.seq.NextID(ctx, store.TaskCounter)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10::jsonb, $11, $12)
	`,
		id,
		task.Title,
		task.Description,
		task.Priority,
		nullString(task.Deadline),
		metadata,
		string(task.Status),
		task.ManagerID,
		task.ManagerName,
		assignees,
		task.CreatedAt,
		nullTime(task.AssignedAt),
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("manager_id", task.ManagerID))
		return MapError(err)
	}

	task.ID = id
	log.Debug("task created", slog.Int64("task_id", id))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}
	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	metadata, assignees, err := encodeTaskJSON(task)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, deadline = $5, metadata = $6::jsonb,
		    status = $7, assigned_employees = $8::jsonb, assigned_at = $9
		WHERE id = $1
	`,
		task.ID,
		task.Title,
		task.Description,
		task.Priority,
		nullString(task.Deadline),
		metadata,
		string(task.Status),
		assignees,
		nullTime(task.AssignedAt),
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	query, args, err := buildTaskQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, MapError(rows.Err())
}

// buildTaskQuery renders the SELECT for a filter. Zero-valued fields add no condition.
func buildTaskQuery(filter store.TaskFilter) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ManagerID != "" {
		add("manager_id = $%d", filter.ManagerID)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.ProjectName != "" {
		add("btrim(metadata->>'"+domain.MetadataProjectName+"') = $%d", filter.ProjectName)
	}
	if filter.EmployeeID != "" {
		// containment on the employeeId key alone
		probe, err := json.Marshal([]map[string]string{{"employeeId": filter.EmployeeID}})
		if err != nil {
			return "", nil, err
		}
		add("assigned_employees @> $%d::jsonb", string(probe))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`
	return query, args, nil
}

func encodeTaskJSON(task *domain.Task) (string, string, error) {
	metadata := task.Metadata
	if metadata == nil {
		metadata = domain.Metadata{}
	}
	m, err := json.Marshal(metadata)
	if err != nil {
		return "", "", fmt.Errorf("%w: metadata: %v", store.ErrInvalidEntity, err)
	}

	assignees := task.AssignedEmployees
	if assignees == nil {
		assignees = []domain.AssigneeSummary{}
	}
	a, err := json.Marshal(assignees)
	if err != nil {
		return "", "", fmt.Errorf("%w: assigned employees: %v", store.ErrInvalidEntity, err)
	}
	return string(m), string(a), nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task       domain.Task
		deadline   sql.NullString
		metadata   []byte
		status     string
		assignees  []byte
		assignedAt sql.NullTime
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&deadline,
		&metadata,
		&status,
		&task.ManagerID,
		&task.ManagerName,
		&assignees,
		&task.CreatedAt,
		&assignedAt,
	); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if deadline.Valid {
		d := deadline.String
		task.Deadline = &d
	}
	if assignedAt.Valid {
		at := assignedAt.Time
		task.AssignedAt = &at
	}

	task.Metadata = domain.Metadata{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &task.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode task metadata: %w", err)
		}
	}
	task.AssignedEmployees = []domain.AssigneeSummary{}
	if len(assignees) > 0 {
		if err := json.Unmarshal(assignees, &task.AssignedEmployees); err != nil {
			return nil, fmt.Errorf("failed to decode task assignees: %w", err)
		}
	}
	return &task, nil
}
