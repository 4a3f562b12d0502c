package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
)

// TaskStore implements store.TaskStore.
type TaskStore struct {
	db *DB
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore. The task's ID is set on success.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id, err := s.db.nextLocked(store.TaskCounter)
	if err != nil {
		return err
	}
	stored := task.Clone()
	stored.ID = id
	s.db.tasks = append(s.db.tasks, stored)
	if err := s.db.commitLocked(ctx, "task", "create"); err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, t := range s.db.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, t := range s.db.tasks {
		if t.ID == task.ID {
			s.db.tasks[i] = task.Clone()
			return s.db.commitLocked(ctx, "task", "update")
		}
	}
	return store.ErrTaskNotFound
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, t := range s.db.tasks {
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

// NotificationStore implements store.NotificationStore.
type NotificationStore struct {
	db *DB
}

var _ store.NotificationStore = (*NotificationStore)(nil)

// Create implements store.NotificationStore. The notification's ID is set on success.
func (s *NotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id, err := s.db.nextLocked(store.NotificationCounter)
	if err != nil {
		return err
	}
	stored := n.Clone()
	stored.ID = id
	s.db.notifications = append(s.db.notifications, stored)
	if err := s.db.commitLocked(ctx, "notification", "create"); err != nil {
		return err
	}
	n.ID = id
	return nil
}

// GetByID implements store.NotificationStore.
func (s *NotificationStore) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.db.notifications[i].Clone(), nil
	}
	return nil, store.ErrNotificationNotFound
}

// List implements store.NotificationStore.
func (s *NotificationStore) List(
	ctx context.Context,
	filter store.NotificationFilter,
) ([]*domain.Notification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Notification, 0)
	for _, n := range s.db.notifications {
		if filter.Matches(n) {
			out = append(out, n.Clone())
		}
	}
	return out, nil
}

// MarkRead implements store.NotificationStore.
func (s *NotificationStore) MarkRead(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return store.ErrNotificationNotFound
	}
	s.db.notifications[i].IsRead = true
	return s.db.commitLocked(ctx, "notification", "mark_read")
}

// Delete implements store.NotificationStore.
func (s *NotificationStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return store.ErrNotificationNotFound
	}
	s.db.notifications = append(s.db.notifications[:i], s.db.notifications[i+1:]...)
	return s.db.commitLocked(ctx, "notification", "delete")
}

func (s *NotificationStore) indexLocked(id int64) int {
	for i, n := range s.db.notifications {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// HistoryStore implements store.HistoryStore.
type HistoryStore struct {
	db *DB
}

var _ store.HistoryStore = (*HistoryStore)(nil)

// Append implements store.HistoryStore.
func (s *HistoryStore) Append(ctx context.Context, employeeID string, entry domain.HistoryEntry) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.history[employeeID] = append(s.db.history[employeeID], entry.Clone())
	return s.db.commitLocked(ctx, "history", "append")
}

// List implements store.HistoryStore.
func (s *HistoryStore) List(ctx context.Context, employeeID string) ([]domain.HistoryEntry, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return cloneEntries(s.db.history[employeeID]), nil
}

// UpdateStatus implements store.HistoryStore.
func (s *HistoryStore) UpdateStatus(
	ctx context.Context,
	employeeID string,
	taskID int64,
	status domain.TaskStatus,
	completedAt *time.Time,
) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	entries := s.db.history[employeeID]
	for i := range entries {
		if entries[i].TaskID != taskID {
			continue
		}
		entries[i].Status = status
		if completedAt != nil {
			at := *completedAt
			entries[i].CompletedAt = &at
		}
		return true, s.db.commitLocked(ctx, "history", "update_status")
	}
	return false, nil
}

// ProjectStore implements store.ProjectStore.
type ProjectStore struct {
	db *DB
}

var _ store.ProjectStore = (*ProjectStore)(nil)

// Create implements store.ProjectStore. The project's ID is set on success.
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id, err := s.db.nextLocked(store.ProjectCounter)
	if err != nil {
		return err
	}
	stored := project.Clone()
	stored.ID = id
	s.db.projects = append(s.db.projects, stored)
	if err := s.db.commitLocked(ctx, "project", "create"); err != nil {
		return err
	}
	project.ID = id
	return nil
}

// List implements store.ProjectStore.
func (s *ProjectStore) List(ctx context.Context, managerID string) ([]*domain.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Project, 0)
	for _, p := range s.db.projects {
		if managerID == "" || p.ManagerID == managerID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}
