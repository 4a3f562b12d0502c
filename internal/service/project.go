package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

// ProjectSummary counts a manager's tasks under one project name.
type ProjectSummary struct {
	ProjectName   string `json:"projectName"`
	TotalTasks    int    `json:"totalTasks"`
	AssignedTasks int    `json:"assignedTasks"`
}

// EmployeeProject is a project an employee has tasks in.
type EmployeeProject struct {
	ProjectName string `json:"projectName"`
	ActiveTasks int    `json:"activeTasks"`
}

// ProjectService manages projects and the task views grouped by project name.
// Tasks join projects through metadata, so summaries only see names, not ids.
type ProjectService interface {
	// Create adds a project. Names are unique per manager, ignoring case.
	Create(ctx context.Context, managerID, name, description string) (*domain.Project, error)

	List(ctx context.Context, managerID string) ([]*domain.Project, error)

	// Summary groups the manager's tasks by project name in first-seen order.
	// Assigned counts tasks in Assigned or In Progress.
	Summary(ctx context.Context, managerID string) ([]ProjectSummary, error)

	Tasks(ctx context.Context, projectName string) ([]*domain.Task, error)

	// EmployeeProjects lists the projects the employee is assigned work in.
	EmployeeProjects(ctx context.Context, employeeID string) ([]EmployeeProject, error)

	EmployeeTasks(ctx context.Context, employeeID, projectName string) ([]*domain.Task, error)
}

type projectServiceImpl struct {
	mu sync.Mutex

	projects store.ProjectStore
	tasks    store.TaskStore
	managers store.ManagerStore
	logger   *slog.Logger
	now      func() time.Time
}

var _ ProjectService = (*projectServiceImpl)(nil)

// NewProjectService creates a ProjectService.
func NewProjectService(stores store.Stores, log *slog.Logger) (ProjectService, error) {
	if stores.Projects == nil {
		return nil, missingDependency("project", "project store")
	}
	if stores.Tasks == nil {
		return nil, missingDependency("project", "task store")
	}
	if stores.Managers == nil {
		return nil, missingDependency("project", "manager store")
	}
	if log == nil {
		log = slog.Default()
	}
	return &projectServiceImpl{
		projects: stores.Projects,
		tasks:    stores.Tasks,
		managers: stores.Managers,
		logger:   log.With(slog.String("component", "project_service")),
		now:      time.Now,
	}, nil
}

func (s *projectServiceImpl) Create(
	ctx context.Context,
	managerID, name, description string,
) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger)

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("project", "create", "failed to load manager", err)
	}

	project, err := domain.NewProject(manager, name, description, s.now())
	if err != nil {
		return nil, invalidInput(err)
	}

	existing, err := s.projects.List(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("project", "create", "failed to list projects", err)
	}
	for _, p := range existing {
		if domain.SameName(p.Name, project.Name) {
			return nil, ErrProjectExists
		}
	}

	if err := s.projects.Create(ctx, project); err != nil {
		log.Error("failed to create project",
			slog.String("manager_id", managerID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("project", "create", "failed to save project", err)
	}

	log.Info("project created",
		slog.Int64("project_id", project.ID),
		slog.String("manager_id", managerID))
	return project, nil
}

func (s *projectServiceImpl) List(ctx context.Context, managerID string) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("project", "list", "failed to list projects", err)
	}
	return projects, nil
}

func (s *projectServiceImpl) Summary(ctx context.Context, managerID string) ([]ProjectSummary, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{ManagerID: managerID})
	if err != nil {
		return nil, NewServiceError("project", "summary", "failed to list tasks", err)
	}

	index := make(map[string]int)
	summaries := []ProjectSummary{}
	for _, t := range tasks {
		name := t.ProjectName()
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(summaries)
			index[name] = i
			summaries = append(summaries, ProjectSummary{ProjectName: name})
		}
		summaries[i].TotalTasks++
		if t.Status.IsActive() {
			summaries[i].AssignedTasks++
		}
	}
	return summaries, nil
}

func (s *projectServiceImpl) Tasks(ctx context.Context, projectName string) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{ProjectName: projectName})
	if err != nil {
		return nil, NewServiceError("project", "tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *projectServiceImpl) EmployeeProjects(
	ctx context.Context,
	employeeID string,
) ([]EmployeeProject, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, NewServiceError("project", "employee_projects", "failed to list tasks", err)
	}

	index := make(map[string]int)
	projects := []EmployeeProject{}
	for _, t := range tasks {
		name := t.ProjectName()
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(projects)
			index[name] = i
			projects = append(projects, EmployeeProject{ProjectName: name})
		}
		if t.Status.IsActive() {
			projects[i].ActiveTasks++
		}
	}
	return projects, nil
}

func (s *projectServiceImpl) EmployeeTasks(
	ctx context.Context,
	employeeID, projectName string,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{
		EmployeeID:  employeeID,
		ProjectName: projectName,
	})
	if err != nil {
		return nil, NewServiceError("project", "employee_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}
