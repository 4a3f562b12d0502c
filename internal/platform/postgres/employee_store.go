package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

const employeeColumns = `id, name, email, department, designation, current_task_details, active_projects, updated_on`

// PostgresEmployeeStore implements the store.EmployeeStore interface.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmployeeStore creates a PostgresEmployeeStore over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
	}
}

var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// List implements store.EmployeeStore.List
func (s *PostgresEmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY ord`)
	if err != nil {
		log.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, MapError(err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return employees, nil
}

// GetByID implements store.EmployeeStore.GetByID
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("employee not found", slog.String("employee_id", id))
			return nil, store.ErrEmployeeNotFound
		}
		log.Error("failed to get employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", id))
		return nil, MapError(err)
	}
	return e, nil
}

// Create implements store.EmployeeStore.Create
// Returns store.ErrEmployeeExists on an ID collision.
func (s *PostgresEmployeeStore) Create(ctx context.Context, e *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Name, e.Email, e.Department, e.Designation, e.CurrentTaskDetails, e.ActiveProjects, e.UpdatedOn)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmployeeExists
		}
		log.Error("failed to create employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", e.ID))
		return MapError(err)
	}
	return nil
}

// Update implements store.EmployeeStore.Update
func (s *PostgresEmployeeStore) Update(ctx context.Context, e *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $2, email = $3, department = $4, designation = $5,
		    current_task_details = $6, active_projects = $7, updated_on = $8
		WHERE id = $1
	`, e.ID, e.Name, e.Email, e.Department, e.Designation, e.CurrentTaskDetails, e.ActiveProjects, e.UpdatedOn)
	if err != nil {
		log.Error("failed to update employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", e.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrEmployeeNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Department,
		&e.Designation,
		&e.CurrentTaskDetails,
		&e.ActiveProjects,
		&e.UpdatedOn,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// PostgresManagerStore implements the store.ManagerStore interface.
type PostgresManagerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresManagerStore creates a PostgresManagerStore over a connection or transaction.
func NewPostgresManagerStore(db store.DBTX, logger *slog.Logger) *PostgresManagerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresManagerStore{
		db:     db,
		logger: logger.With(slog.String("component", "manager_store")),
	}
}

var _ store.ManagerStore = (*PostgresManagerStore)(nil)

// List implements store.ManagerStore.List
func (s *PostgresManagerStore) List(ctx context.Context) ([]*domain.Manager, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, department FROM managers ORDER BY ord`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list managers",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	managers := make([]*domain.Manager, 0)
	for rows.Next() {
		var m domain.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.Department); err != nil {
			return nil, MapError(err)
		}
		managers = append(managers, &m)
	}
	return managers, MapError(rows.Err())
}

// GetByID implements store.ManagerStore.GetByID
func (s *PostgresManagerStore) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	var m domain.Manager
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, department FROM managers WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Department)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrManagerNotFound
		}
		return nil, MapError(err)
	}
	return &m, nil
}

// Create implements store.ManagerStore.Create
func (s *PostgresManagerStore) Create(ctx context.Context, m *domain.Manager) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO managers (id, name, department) VALUES ($1, $2, $3)`,
		m.ID, m.Name, m.Department)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrManagerExists
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create manager",
			slog.String("error", err.Error()),
			slog.String("manager_id", m.ID))
		return MapError(err)
	}
	return nil
}
