package postgres

import (
	"context"
	"log/slog"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

// PostgresProjectStore implements the store.ProjectStore interface.
type PostgresProjectStore struct {
	db     store.DBTX
	seq    store.Sequencer
	logger *slog.Logger
}

// NewPostgresProjectStore creates a PostgresProjectStore over a connection or transaction.
func NewPostgresProjectStore(db store.DBTX, seq store.Sequencer, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProjectStore{
		db:     db,
		seq:    seq,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// Create implements store.ProjectStore.Create
// The unique (manager, lower(name)) index surfaces as store.ErrDuplicate.
func (s *PostgresProjectStore) Create(ctx context.Context, p *domain.Project) error {
	id, err := s.seq.NextID(ctx, store.ProjectCounter)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, manager_id, manager_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, p.Name, p.Description, p.ManagerID, p.ManagerName, p.Status, p.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("manager_id", p.ManagerID))
		return MapError(err)
	}

	p.ID = id
	return nil
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context, managerID string) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, manager_id, manager_name, status, created_at
		FROM projects
		WHERE ($1 = '' OR manager_id = $1)
		ORDER BY id
	`, managerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ManagerID, &p.ManagerName, &p.Status, &p.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		projects = append(projects, &p)
	}
	return projects, MapError(rows.Err())
}
