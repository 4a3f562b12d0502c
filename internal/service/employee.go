package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

// Profile defaults for employees without descriptive fields.
const (
	DefaultDepartment  = "General"
	DefaultDesignation = "Staff"
)

// Profile is the descriptive part of an employee, without workload.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// EmployeeOverview is an employee with the counts of its task history.
type EmployeeOverview struct {
	Employee *domain.Employee
	History  domain.HistorySummary
}

// EmployeeService exposes the employee directory and the workload ranking.
type EmployeeService interface {
	// List returns every employee with a history summary, in collection order.
	List(ctx context.Context) ([]EmployeeOverview, error)

	Get(ctx context.Context, id string) (*domain.Employee, error)

	// Ranking orders employees by ascending workload; ties keep collection order.
	Ranking(ctx context.Context) ([]domain.RankedEmployee, error)

	Profiles(ctx context.Context) ([]Profile, error)
	Profile(ctx context.Context, id string) (Profile, error)

	// TaskHistory returns the employee together with its history summary.
	TaskHistory(ctx context.Context, id string) (*EmployeeOverview, error)
}

type employeeServiceImpl struct {
	employees store.EmployeeStore
	history   HistoryService
	logger    *slog.Logger
}

var _ EmployeeService = (*employeeServiceImpl)(nil)

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(
	employees store.EmployeeStore,
	history HistoryService,
	log *slog.Logger,
) (EmployeeService, error) {
	if employees == nil {
		return nil, missingDependency("employee", "employee store")
	}
	if history == nil {
		return nil, missingDependency("employee", "history service")
	}
	if log == nil {
		log = slog.Default()
	}
	return &employeeServiceImpl{
		employees: employees,
		history:   history,
		logger:    log.With(slog.String("component", "employee_service")),
	}, nil
}

func (s *employeeServiceImpl) List(ctx context.Context) ([]EmployeeOverview, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, NewServiceError("employee", "list", "failed to list employees", err)
	}

	out := make([]EmployeeOverview, 0, len(employees))
	for _, e := range employees {
		summary, err := s.history.GetHistory(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, EmployeeOverview{Employee: e, History: summary})
	}
	return out, nil
}

func (s *employeeServiceImpl) Get(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("employee", "get", "failed to load employee", err)
	}
	return e, nil
}

func (s *employeeServiceImpl) Ranking(ctx context.Context) ([]domain.RankedEmployee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, NewServiceError("employee", "ranking", "failed to list employees", err)
	}

	ranked := domain.RankEmployees(employees)
	logger.FromContextOrDefault(ctx, s.logger).Debug("employees ranked",
		slog.Int("count", len(ranked)))
	return ranked, nil
}

func (s *employeeServiceImpl) Profiles(ctx context.Context) ([]Profile, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, NewServiceError("employee", "profiles", "failed to list employees", err)
	}

	profiles := make([]Profile, 0, len(employees))
	for _, e := range employees {
		profiles = append(profiles, profileOf(e))
	}
	return profiles, nil
}

func (s *employeeServiceImpl) Profile(ctx context.Context, id string) (Profile, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return profileOf(e), nil
}

func (s *employeeServiceImpl) TaskHistory(ctx context.Context, id string) (*EmployeeOverview, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.history.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EmployeeOverview{Employee: e, History: summary}, nil
}

func profileOf(e *domain.Employee) Profile {
	return Profile{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Department:  orDefault(e.Department, DefaultDepartment),
		Designation: orDefault(e.Designation, DefaultDesignation),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// ManagerService exposes the manager directory.
type ManagerService interface {
	List(ctx context.Context) ([]*domain.Manager, error)
	Get(ctx context.Context, id string) (*domain.Manager, error)
}

type managerServiceImpl struct {
	managers store.ManagerStore
}

var _ ManagerService = (*managerServiceImpl)(nil)

// NewManagerService creates a ManagerService.
func NewManagerService(managers store.ManagerStore) (ManagerService, error) {
	if managers == nil {
		return nil, missingDependency("manager", "manager store")
	}
	return &managerServiceImpl{managers: managers}, nil
}

func (s *managerServiceImpl) List(ctx context.Context) ([]*domain.Manager, error) {
	managers, err := s.managers.List(ctx)
	if err != nil {
		return nil, NewServiceError("manager", "list", "failed to list managers", err)
	}
	return managers, nil
}

func (s *managerServiceImpl) Get(ctx context.Context, id string) (*domain.Manager, error) {
	m, err := s.managers.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("manager", "get", "failed to load manager", err)
	}
	return m, nil
}
