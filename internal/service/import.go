package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/platform/metrics"
	"github.com/pmsdemo/pms-api/internal/platform/spreadsheet"
	"github.com/pmsdemo/pms-api/internal/store"
)

// Failure reasons reported per import row.
const (
	ReasonInvalidPayload   = "Invalid task payload"
	ReasonEmployeeNotFound = "Employee not found"
	ReasonDuplicateTask    = "Duplicate task already exists"
	ReasonCreateFailed     = "Task creation failed"
)

// ImportMessage accompanies every completed reconciliation.
const ImportMessage = "Tasks imported and auto-assigned successfully"

// unknownTitle labels rows that arrive without a title.
const unknownTitle = "UNKNOWN"

// ImportFailure is one row that was not imported.
type ImportFailure struct {
	Title      string `json:"title"`
	EmployeeID string `json:"employeeId,omitempty"`
	Reason     string `json:"reason"`
}

// ImportedTask is one row that produced a task.
type ImportedTask struct {
	TaskID     int64  `json:"taskId"`
	Title      string `json:"title"`
	EmployeeID string `json:"employeeId"`
}

// ImportResult summarizes a reconciliation. Created counts tasks written;
// Assigned counts those whose assignment also succeeded.
type ImportResult struct {
	Created      int             `json:"created"`
	Assigned     int             `json:"assigned"`
	Failed       []ImportFailure `json:"failed"`
	CreatedTasks []ImportedTask  `json:"createdTasks"`
	Message      string          `json:"message"`
}

// PreviewImport parses an uploaded workbook into candidates without writing anything.
func PreviewImport(filename string, r io.Reader) ([]domain.ImportCandidate, error) {
	if !spreadsheet.IsWorkbookName(filename) {
		return nil, fmt.Errorf("%w: Only .xlsx files are supported", ErrInvalidInput)
	}
	candidates, err := spreadsheet.ParseTasks(r)
	if err != nil {
		return nil, invalidInput(err)
	}
	return candidates, nil
}

func (s *taskServiceImpl) ReconcileImport(
	ctx context.Context,
	managerID string,
	candidates []domain.ImportCandidate,
) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("manager_id", managerID))

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		return nil, NewServiceError("task", "reconcile_import", "failed to load manager", err)
	}

	existing, err := s.tasks.List(ctx, store.TaskFilter{ManagerID: managerID})
	if err != nil {
		return nil, NewServiceError("task", "reconcile_import", "failed to list manager queue", err)
	}
	seen := make(map[domain.DuplicateKey]struct{}, len(existing)+len(candidates))
	for _, t := range existing {
		seen[domain.KeyOf(t)] = struct{}{}
	}

	result := &ImportResult{
		Failed:       []ImportFailure{},
		CreatedTasks: []ImportedTask{},
		Message:      ImportMessage,
	}
	fail := func(f ImportFailure) {
		result.Failed = append(result.Failed, f)
		s.metrics.ImportFailed(f.Reason)
	}

	for i, c := range candidates {
		title := strings.TrimSpace(c.Title)

		if c.Employee == nil || strings.TrimSpace(c.Employee.EmployeeID) == "" || title == "" {
			if title == "" {
				title = unknownTitle
			}
			fail(ImportFailure{Title: title, Reason: ReasonInvalidPayload})
			continue
		}
		employeeID := strings.TrimSpace(c.Employee.EmployeeID)

		if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
			if !store.IsNotFoundError(err) {
				log.Error("failed to resolve import employee",
					slog.Int("row", i),
					slog.String("employee_id", employeeID),
					slog.String("error", err.Error()))
				fail(ImportFailure{Title: title, EmployeeID: employeeID, Reason: ReasonCreateFailed})
				continue
			}
			fail(ImportFailure{Title: title, EmployeeID: employeeID, Reason: ReasonEmployeeNotFound})
			continue
		}

		key := c.Key()
		if _, dup := seen[key]; dup {
			fail(ImportFailure{Title: title, EmployeeID: employeeID, Reason: ReasonDuplicateTask})
			continue
		}

		task, err := s.createLocked(ctx, manager, c.Draft(), metrics.SourceImport)
		if err != nil {
			log.Warn("import row not created",
				slog.Int("row", i),
				slog.String("title", title),
				slog.String("error", err.Error()))
			if errors.Is(err, ErrInvalidInput) {
				fail(ImportFailure{Title: title, EmployeeID: employeeID, Reason: ReasonInvalidPayload})
			} else {
				fail(ImportFailure{Title: title, Reason: ReasonCreateFailed})
			}
			continue
		}
		seen[key] = struct{}{}
		result.Created++
		result.CreatedTasks = append(result.CreatedTasks, ImportedTask{
			TaskID:     task.ID,
			Title:      task.Title,
			EmployeeID: employeeID,
		})

		if _, err := s.assignLocked(ctx, task.ID, []string{employeeID}, managerID); err != nil {
			log.Error("imported task left unassigned",
				slog.Int64("task_id", task.ID),
				slog.String("employee_id", employeeID),
				slog.String("error", err.Error()))
			continue
		}
		result.Assigned++
	}

	log.Info("import reconciled",
		slog.Int("rows", len(candidates)),
		slog.Int("created", result.Created),
		slog.Int("assigned", result.Assigned),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}
