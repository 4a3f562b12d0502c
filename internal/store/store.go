package store

import (
	"context"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
)

// Counter names understood by every Sequencer.
const (
	TaskCounter         = "task"
	NotificationCounter = "notification"
	ProjectCounter      = "project"
)

// Sequencer hands out identifiers. Each counter is monotonic and unique,
// and NextID is atomic against concurrent callers.
type Sequencer interface {
	NextID(ctx context.Context, counter string) (int64, error)
}

// EmployeeStore defines the interface for employee persistence.
type EmployeeStore interface {
	// List returns all employees in collection order.
	List(ctx context.Context) ([]*domain.Employee, error)

	// GetByID returns ErrEmployeeNotFound if the employee does not exist.
	GetByID(ctx context.Context, id string) (*domain.Employee, error)

	// Create adds an employee. Returns ErrEmployeeExists on ID collision.
	Create(ctx context.Context, employee *domain.Employee) error

	// Update replaces the stored employee. Returns ErrEmployeeNotFound if absent.
	Update(ctx context.Context, employee *domain.Employee) error
}

// ManagerStore defines the interface for manager persistence.
// Managers are never updated.
type ManagerStore interface {
	List(ctx context.Context) ([]*domain.Manager, error)

	// GetByID returns ErrManagerNotFound if the manager does not exist.
	GetByID(ctx context.Context, id string) (*domain.Manager, error)

	// Create adds a manager. Returns ErrManagerExists on ID collision.
	Create(ctx context.Context, manager *domain.Manager) error
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	ManagerID   string
	Status      domain.TaskStatus
	ProjectName string
	EmployeeID  string
}

// Matches reports whether t satisfies every set field of the filter.
func (f TaskFilter) Matches(t *domain.Task) bool {
	if f.ManagerID != "" && t.ManagerID != f.ManagerID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.ProjectName != "" && t.ProjectName() != f.ProjectName {
		return false
	}
	if f.EmployeeID != "" && !t.HasAssignee(f.EmployeeID) {
		return false
	}
	return true
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create assigns the next task ID and saves the task.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces the stored task. Returns ErrTaskNotFound if absent.
	Update(ctx context.Context, task *domain.Task) error

	// List returns matching tasks in creation order.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
}

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	EmployeeID string
	UnreadOnly bool
}

// Matches reports whether n satisfies the filter.
func (f NotificationFilter) Matches(n *domain.Notification) bool {
	if f.EmployeeID != "" && n.EmployeeID != f.EmployeeID {
		return false
	}
	if f.UnreadOnly && n.IsRead {
		return false
	}
	return true
}

// NotificationStore defines the interface for notification persistence.
type NotificationStore interface {
	// Create assigns the next notification ID and saves the notification.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)

	// List returns matching notifications in creation order.
	List(ctx context.Context, filter NotificationFilter) ([]*domain.Notification, error)

	// MarkRead flips the read flag. Returns ErrNotificationNotFound if absent.
	MarkRead(ctx context.Context, id int64) error

	// Delete removes the notification. Returns ErrNotificationNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// HistoryStore defines the interface for the per-employee assignment log.
type HistoryStore interface {
	// Append adds an entry to the end of the employee's history.
	Append(ctx context.Context, employeeID string, entry domain.HistoryEntry) error

	// List returns the employee's entries in insertion order.
	// Unknown employees have an empty history.
	List(ctx context.Context, employeeID string) ([]domain.HistoryEntry, error)

	// UpdateStatus changes the first entry for (employeeID, taskID).
	// completedAt is applied only when non-nil. Returns false when no entry matches.
	UpdateStatus(
		ctx context.Context,
		employeeID string,
		taskID int64,
		status domain.TaskStatus,
		completedAt *time.Time,
	) (bool, error)
}

// ProjectStore defines the interface for project persistence.
type ProjectStore interface {
	// Create assigns the next project ID and saves the project.
	Create(ctx context.Context, project *domain.Project) error

	// List returns the projects of a manager, or all projects when managerID is empty.
	List(ctx context.Context, managerID string) ([]*domain.Project, error)
}

// Stores bundles one backend's collections.
type Stores struct {
	Employees     EmployeeStore
	Managers      ManagerStore
	Tasks         TaskStore
	Notifications NotificationStore
	History       HistoryStore
	Projects      ProjectStore
	Sequencer     Sequencer
}
