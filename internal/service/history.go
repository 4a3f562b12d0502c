package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/store"
)

// HistoryService keeps each employee's assignment timeline.
type HistoryService interface {
	// RecordAssignment appends entry to the employee's history. Re-assigning the
	// same task produces a second entry.
	RecordAssignment(ctx context.Context, employeeID string, entry domain.HistoryEntry) error

	// UpdateStatus changes the first entry for (employeeID, taskID).
	// completedAt is applied only when non-nil. Returns false when nothing matched.
	UpdateStatus(
		ctx context.Context,
		employeeID string,
		taskID int64,
		status domain.TaskStatus,
		completedAt *time.Time,
	) (bool, error)

	// GetHistory summarizes the employee's entries. Unknown employees yield an
	// all-zero summary.
	GetHistory(ctx context.Context, employeeID string) (domain.HistorySummary, error)
}

type historyServiceImpl struct {
	history store.HistoryStore
	logger  *slog.Logger
}

var _ HistoryService = (*historyServiceImpl)(nil)

// NewHistoryService creates a HistoryService backed by history.
func NewHistoryService(history store.HistoryStore, log *slog.Logger) (HistoryService, error) {
	if history == nil {
		return nil, missingDependency("history", "history store")
	}
	if log == nil {
		log = slog.Default()
	}
	return &historyServiceImpl{
		history: history,
		logger:  log.With(slog.String("component", "history_service")),
	}, nil
}

func (s *historyServiceImpl) RecordAssignment(
	ctx context.Context,
	employeeID string,
	entry domain.HistoryEntry,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.history.Append(ctx, employeeID, entry); err != nil {
		log.Error("failed to append history entry",
			slog.String("employee_id", employeeID),
			slog.Int64("task_id", entry.TaskID),
			slog.String("error", err.Error()))
		return NewServiceError("history", "record_assignment", "failed to append history entry", err)
	}

	log.Debug("history entry recorded",
		slog.String("employee_id", employeeID),
		slog.Int64("task_id", entry.TaskID),
		slog.String("status", string(entry.Status)))
	return nil
}

func (s *historyServiceImpl) UpdateStatus(
	ctx context.Context,
	employeeID string,
	taskID int64,
	status domain.TaskStatus,
	completedAt *time.Time,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	updated, err := s.history.UpdateStatus(ctx, employeeID, taskID, status, completedAt)
	if err != nil {
		log.Error("failed to update history entry",
			slog.String("employee_id", employeeID),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
		return false, NewServiceError("history", "update_status", "failed to update history entry", err)
	}
	if !updated {
		log.Warn("no history entry to update",
			slog.String("employee_id", employeeID),
			slog.Int64("task_id", taskID))
	}
	return updated, nil
}

func (s *historyServiceImpl) GetHistory(
	ctx context.Context,
	employeeID string,
) (domain.HistorySummary, error) {
	entries, err := s.history.List(ctx, employeeID)
	if err != nil {
		return domain.HistorySummary{}, NewServiceError("history", "get_history", "failed to list history", err)
	}
	return domain.SummarizeHistory(employeeID, entries), nil
}
