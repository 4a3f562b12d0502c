package service

import (
	"context"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
)

// SystemStats are the record counts reported by the health endpoint.
type SystemStats struct {
	TotalEmployees      int `json:"totalEmployees"`
	TotalManagers       int `json:"totalManagers"`
	TotalTasks          int `json:"totalTasks"`
	PendingTasks        int `json:"pendingTasks"`
	AssignedTasks       int `json:"assignedTasks"`
	TotalNotifications  int `json:"totalNotifications"`
	UnreadNotifications int `json:"unreadNotifications"`
}

// StatsService computes system-wide counts.
type StatsService interface {
	Stats(ctx context.Context) (SystemStats, error)
}

type statsServiceImpl struct {
	stores store.Stores
}

var _ StatsService = (*statsServiceImpl)(nil)

// NewStatsService creates a StatsService reading every collection of stores.
func NewStatsService(stores store.Stores) (StatsService, error) {
	if stores.Employees == nil || stores.Managers == nil ||
		stores.Tasks == nil || stores.Notifications == nil {
		return nil, missingDependency("stats", "store")
	}
	return &statsServiceImpl{stores: stores}, nil
}

func (s *statsServiceImpl) Stats(ctx context.Context) (SystemStats, error) {
	var stats SystemStats

	employees, err := s.stores.Employees.List(ctx)
	if err != nil {
		return stats, NewServiceError("stats", "stats", "failed to list employees", err)
	}
	managers, err := s.stores.Managers.List(ctx)
	if err != nil {
		return stats, NewServiceError("stats", "stats", "failed to list managers", err)
	}
	tasks, err := s.stores.Tasks.List(ctx, store.TaskFilter{})
	if err != nil {
		return stats, NewServiceError("stats", "stats", "failed to list tasks", err)
	}
	notifications, err := s.stores.Notifications.List(ctx, store.NotificationFilter{})
	if err != nil {
		return stats, NewServiceError("stats", "stats", "failed to list notifications", err)
	}

	stats.TotalEmployees = len(employees)
	stats.TotalManagers = len(managers)
	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusPending:
			stats.PendingTasks++
		case domain.TaskStatusAssigned:
			stats.AssignedTasks++
		}
	}
	stats.TotalNotifications = len(notifications)
	stats.UnreadNotifications = countNotifications(notifications).Unread
	return stats, nil
}
