package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/pmsdemo/pms-api/internal/store"
)

// AssignmentResult describes a successful assignment.
type AssignmentResult struct {
	Task              *domain.Task
	AssignedTo        []domain.AssigneeSummary
	NotificationsSent int
}

// TaskDetails is a task with every employee ranked as an assignment candidate.
type TaskDetails struct {
	Task               *domain.Task
	AvailableEmployees []domain.RankedEmployee
}

// TaskService creates, assigns, and progresses tasks.
// Every write operation, import reconciliation included, is serialized.
type TaskService interface {
	// Create saves a new Pending task owned by managerID.
	Create(ctx context.Context, managerID string, draft domain.TaskDraft) (*domain.Task, error)

	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns every task in creation order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Queue returns the tasks owned by managerID, newest first.
	// An empty status matches every status.
	Queue(ctx context.Context, managerID string, status domain.TaskStatus) ([]*domain.Task, error)

	Details(ctx context.Context, id int64) (*TaskDetails, error)

	// Assign gives a Pending task to the listed employees.
	// Preconditions are checked in order: the task exists, managerID owns it,
	// it is Pending, and every employee id resolves. Nothing is written unless
	// all of them hold. Duplicate ids are assigned once.
	Assign(ctx context.Context, taskID int64, employeeIDs []string, managerID string) (*AssignmentResult, error)

	// AdvanceStatus moves a task one step towards Completed on behalf of one of
	// its assignees and syncs every assignee's history entry.
	AdvanceStatus(ctx context.Context, taskID int64, employeeID string, to domain.TaskStatus) (*domain.Task, error)

	// EmployeeTasks returns the active tasks listing employeeID as an assignee.
	EmployeeTasks(ctx context.Context, employeeID string) ([]*domain.Task, error)

	// ReconcileImport creates and assigns one task per candidate, collecting
	// per-row failures. Only an unknown manager fails the whole call.
	ReconcileImport(ctx context.Context, managerID string, candidates []domain.ImportCandidate) (*ImportResult, error)
}

type taskServiceImpl struct {
	// mu serializes every write path of the workflow.
	mu sync.Mutex

	tasks     store.TaskStore
	employees store.EmployeeStore
	managers  store.ManagerStore
	notifier  NotificationService
	history   HistoryService
	metrics   metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
// A nil recorder disables metrics.
func NewTaskService(
	stores store.Stores,
	notifier NotificationService,
	history HistoryService,
	recorder metrics.Recorder,
	log *slog.Logger,
) (TaskService, error) {
	if stores.Tasks == nil {
		return nil, missingDependency("task", "task store")
	}
	if stores.Employees == nil {
		return nil, missingDependency("task", "employee store")
	}
	if stores.Managers == nil {
		return nil, missingDependency("task", "manager store")
	}
	if notifier == nil {
		return nil, missingDependency("task", "notification service")
	}
	if history == nil {
		return nil, missingDependency("task", "history service")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		tasks:     stores.Tasks,
		employees: stores.Employees,
		managers:  stores.Managers,
		notifier:  notifier,
		history:   history,
		metrics:   metrics.OrNop(recorder),
		logger:    log.With(slog.String("component", "task_service")),
		now:       time.Now,
	}, nil
}

func (s *taskServiceImpl) Create(
	ctx context.Context,
	managerID string,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("task", "create", "failed to load manager", err)
	}
	return s.createLocked(ctx, manager, draft, metrics.SourceAPI)
}

func (s *taskServiceImpl) createLocked(
	ctx context.Context,
	manager *domain.Manager,
	draft domain.TaskDraft,
	source string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(manager, draft, s.now())
	if err != nil {
		log.Debug("rejected task draft",
			slog.String("manager_id", manager.ID),
			slog.String("error", err.Error()))
		return nil, invalidInput(err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("manager_id", manager.ID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}

	s.metrics.TaskCreated(source)
	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("manager_id", manager.ID),
		slog.String("source", source))
	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("task", "get", "failed to load task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{})
	if err != nil {
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) Queue(
	ctx context.Context,
	managerID string,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{ManagerID: managerID, Status: status})
	if err != nil {
		return nil, NewServiceError("task", "queue", "failed to list tasks", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *taskServiceImpl) Details(ctx context.Context, id int64) (*TaskDetails, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, NewServiceError("task", "details", "failed to list employees", err)
	}

	return &TaskDetails{
		Task:               task,
		AvailableEmployees: domain.RankEmployees(employees),
	}, nil
}

func (s *taskServiceImpl) Assign(
	ctx context.Context,
	taskID int64,
	employeeIDs []string,
	managerID string,
) (*AssignmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assignLocked(ctx, taskID, employeeIDs, managerID)
}

func (s *taskServiceImpl) assignLocked(
	ctx context.Context,
	taskID int64,
	employeeIDs []string,
	managerID string,
) (*AssignmentResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("task_id", taskID),
		slog.String("manager_id", managerID))

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, NewServiceError("task", "assign", "failed to load task", err)
	}
	if task.ManagerID != managerID {
		log.Warn("assignment rejected: task owned by another manager",
			slog.String("owner_id", task.ManagerID))
		return nil, ErrNotYourTask
	}
	if task.Status != domain.TaskStatusPending {
		return nil, &StatusConflictError{Status: task.Status}
	}

	ids := distinctIDs(employeeIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one employee id is required", ErrInvalidInput)
	}

	employees := make([]*domain.Employee, 0, len(ids))
	var missing []string
	for _, id := range ids {
		e, err := s.employees.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				missing = append(missing, id)
				continue
			}
			return nil, NewServiceError("task", "assign", "failed to load employee", err)
		}
		employees = append(employees, e)
	}
	if len(missing) > 0 {
		log.Warn("assignment rejected: unknown employees",
			slog.Any("employee_ids", missing))
		return nil, &UnknownEmployeesError{IDs: missing}
	}

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("task", "assign", "failed to load manager", err)
	}

	assignedAt := s.now()
	message := domain.AssignmentMessage(manager.Name, task.Title)
	assignees := make([]domain.AssigneeSummary, 0, len(employees))

	for _, e := range employees {
		e.RecordAssignment(task.Title, assignedAt)
		if err := s.employees.Update(ctx, e); err != nil {
			log.Error("failed to update employee workload",
				slog.String("employee_id", e.ID),
				slog.String("error", err.Error()))
			return nil, NewServiceError("task", "assign", "failed to update employee", err)
		}

		if _, err := s.notifier.Notify(ctx, e.ID, manager.ID, task.ID, message); err != nil {
			return nil, err
		}

		entry := domain.HistoryEntry{
			TaskID:      task.ID,
			TaskTitle:   task.Title,
			ManagerID:   manager.ID,
			ManagerName: manager.Name,
			AssignedAt:  assignedAt,
			Status:      domain.TaskStatusAssigned,
		}
		if err := s.history.RecordAssignment(ctx, e.ID, entry); err != nil {
			return nil, err
		}

		assignees = append(assignees, domain.AssigneeSummary{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
		})
	}

	if err := task.MarkAssigned(assignees, assignedAt); err != nil {
		return nil, &StatusConflictError{Status: task.Status}
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to save assigned task", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "assign", "failed to save task", err)
	}

	s.metrics.TaskAssigned(len(assignees))
	log.Info("task assigned", slog.Int("assignees", len(assignees)))

	return &AssignmentResult{
		Task:              task,
		AssignedTo:        assignees,
		NotificationsSent: len(assignees),
	}, nil
}

func (s *taskServiceImpl) AdvanceStatus(
	ctx context.Context,
	taskID int64,
	employeeID string,
	to domain.TaskStatus,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("task_id", taskID),
		slog.String("employee_id", employeeID))

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, NewServiceError("task", "advance_status", "failed to load task", err)
	}
	if !task.HasAssignee(employeeID) {
		return nil, ErrNotAssignee
	}

	from := task.Status
	if err := task.Advance(to); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "advance_status", "failed to save task", err)
	}

	var completedAt *time.Time
	if to == domain.TaskStatusCompleted {
		now := s.now()
		completedAt = &now
	}
	for _, a := range task.AssignedEmployees {
		if _, err := s.history.UpdateStatus(ctx, a.EmployeeID, task.ID, to, completedAt); err != nil {
			return nil, err
		}
	}

	s.metrics.StatusAdvanced(string(to))
	log.Info("task status advanced",
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return task, nil
}

func (s *taskServiceImpl) EmployeeTasks(ctx context.Context, employeeID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, NewServiceError("task", "employee_tasks", "failed to list tasks", err)
	}

	active := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

// distinctIDs trims ids, drops blanks, and keeps the first occurrence of each.
func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
