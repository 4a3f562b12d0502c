package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/pmsdemo/pms-api/internal/store"
)

// NotificationStats counts a set of notifications by read state.
type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
}

// EmployeeNotifications is an employee's inbox.
// Stats always cover every notification of the employee, even when the list is filtered.
type EmployeeNotifications struct {
	Employee      *domain.Employee
	UnreadOnly    bool
	Stats         NotificationStats
	Notifications []*domain.Notification
}

// NotificationService issues and manages employee notifications.
type NotificationService interface {
	// Notify creates a notification. Names that cannot be resolved fall back to
	// domain.UnknownName; callers validate ids beforehand.
	Notify(
		ctx context.Context,
		employeeID, managerID string,
		taskID int64,
		message string,
	) (*domain.Notification, error)

	// List returns every notification, newest first.
	List(ctx context.Context) ([]*domain.Notification, NotificationStats, error)

	// ListForEmployee returns the employee's notifications, newest first.
	ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) (*EmployeeNotifications, error)

	Get(ctx context.Context, id int64) (*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error

	// MarkAllRead marks the employee's unread notifications and returns how many changed.
	MarkAllRead(ctx context.Context, employeeID string) (int, error)

	Delete(ctx context.Context, id int64) error
}

type notificationServiceImpl struct {
	notifications store.NotificationStore
	employees     store.EmployeeStore
	managers      store.ManagerStore
	metrics       metrics.Recorder
	logger        *slog.Logger
	now           func() time.Time
}

var _ NotificationService = (*notificationServiceImpl)(nil)

// NewNotificationService creates a NotificationService over the given stores.
// A nil recorder disables metrics.
func NewNotificationService(
	stores store.Stores,
	recorder metrics.Recorder,
	log *slog.Logger,
) (NotificationService, error) {
	if stores.Notifications == nil {
		return nil, missingDependency("notification", "notification store")
	}
	if stores.Employees == nil {
		return nil, missingDependency("notification", "employee store")
	}
	if stores.Managers == nil {
		return nil, missingDependency("notification", "manager store")
	}
	if log == nil {
		log = slog.Default()
	}
	return &notificationServiceImpl{
		notifications: stores.Notifications,
		employees:     stores.Employees,
		managers:      stores.Managers,
		metrics:       metrics.OrNop(recorder),
		logger:        log.With(slog.String("component", "notification_service")),
		now:           time.Now,
	}, nil
}

func (s *notificationServiceImpl) Notify(
	ctx context.Context,
	employeeID, managerID string,
	taskID int64,
	message string,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	employeeName := domain.UnknownName
	if e, err := s.employees.GetByID(ctx, employeeID); err == nil {
		employeeName = e.Name
	} else {
		log.Warn("notification recipient not resolved",
			slog.String("employee_id", employeeID),
			slog.String("error", err.Error()))
	}

	managerName := domain.UnknownName
	if m, err := s.managers.GetByID(ctx, managerID); err == nil {
		managerName = m.Name
	} else {
		log.Warn("notification sender not resolved",
			slog.String("manager_id", managerID),
			slog.String("error", err.Error()))
	}

	n := &domain.Notification{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		ManagerID:    managerID,
		ManagerName:  managerName,
		TaskID:       taskID,
		Message:      message,
		CreatedAt:    s.now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Error("failed to create notification",
			slog.String("employee_id", employeeID),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("notification", "notify", "failed to create notification", err)
	}

	s.metrics.NotificationsIssued(1)
	log.Info("notification issued",
		slog.Int64("notification_id", n.ID),
		slog.String("employee_id", employeeID),
		slog.Int64("task_id", taskID))
	return n, nil
}

func (s *notificationServiceImpl) List(
	ctx context.Context,
) ([]*domain.Notification, NotificationStats, error) {
	all, err := s.notifications.List(ctx, store.NotificationFilter{})
	if err != nil {
		return nil, NotificationStats{}, NewServiceError("notification", "list", "failed to list notifications", err)
	}
	newestFirst(all)
	return all, countNotifications(all), nil
}

func (s *notificationServiceImpl) ListForEmployee(
	ctx context.Context,
	employeeID string,
	unreadOnly bool,
) (*EmployeeNotifications, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, NewServiceError("notification", "list_for_employee", "failed to load employee", err)
	}

	all, err := s.notifications.List(ctx, store.NotificationFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, NewServiceError("notification", "list_for_employee", "failed to list notifications", err)
	}
	newestFirst(all)

	listed := all
	if unreadOnly {
		filter := store.NotificationFilter{UnreadOnly: true}
		listed = make([]*domain.Notification, 0, len(all))
		for _, n := range all {
			if filter.Matches(n) {
				listed = append(listed, n)
			}
		}
	}

	return &EmployeeNotifications{
		Employee:      employee,
		UnreadOnly:    unreadOnly,
		Stats:         countNotifications(all),
		Notifications: listed,
	}, nil
}

func (s *notificationServiceImpl) Get(ctx context.Context, id int64) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("notification", "get", "failed to load notification", err)
	}
	return n, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id int64) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return NewServiceError("notification", "mark_read", "failed to mark notification read", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("notification marked read",
		slog.Int64("notification_id", id))
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, employeeID string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return 0, NewServiceError("notification", "mark_all_read", "failed to load employee", err)
	}

	unread, err := s.notifications.List(ctx, store.NotificationFilter{
		EmployeeID: employeeID,
		UnreadOnly: true,
	})
	if err != nil {
		return 0, NewServiceError("notification", "mark_all_read", "failed to list notifications", err)
	}

	marked := 0
	for _, n := range unread {
		if err := s.notifications.MarkRead(ctx, n.ID); err != nil {
			if store.IsNotFoundError(err) {
				continue
			}
			return marked, NewServiceError("notification", "mark_all_read", "failed to mark notification read", err)
		}
		marked++
	}

	log.Info("notifications marked read",
		slog.String("employee_id", employeeID),
		slog.Int("count", marked))
	return marked, nil
}

func (s *notificationServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		return NewServiceError("notification", "delete", "failed to delete notification", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("notification deleted",
		slog.Int64("notification_id", id))
	return nil
}

func countNotifications(ns []*domain.Notification) NotificationStats {
	stats := NotificationStats{Total: len(ns)}
	for _, n := range ns {
		if !n.IsRead {
			stats.Unread++
		}
	}
	stats.Read = stats.Total - stats.Unread
	return stats
}

// newestFirst orders by creation time descending, falling back to id for equal timestamps.
func newestFirst(ns []*domain.Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		if !ns[i].CreatedAt.Equal(ns[j].CreatedAt) {
			return ns[i].CreatedAt.After(ns[j].CreatedAt)
		}
		return ns[i].ID > ns[j].ID
	})
}
