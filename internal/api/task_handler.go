package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/service"
)

// DefaultMaxUploadBytes bounds spreadsheet uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// uploadField is the multipart form field carrying the workbook.
const uploadField = "file"

// TaskHandler serves task creation, assignment, progression, and import.
type TaskHandler struct {
	tasks          service.TaskService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewTaskHandler creates a new TaskHandler. A non-positive maxUploadBytes
// falls back to DefaultMaxUploadBytes.
func NewTaskHandler(tasks service.TaskService, maxUploadBytes int64, log *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	return &TaskHandler{
		tasks:          tasks,
		maxUploadBytes: maxUploadBytes,
		logger:         log.With(slog.String("component", "task_handler")),
	}
}

// Register mounts the task routes on r.
func (h *TaskHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/create", h.Create)
	r.Get("/queue/{managerId}", h.Queue)
	r.Get("/employee/{employeeId}", h.EmployeeTasks)
	r.Post("/import/preview", h.PreviewImport)
	r.Post("/import/confirm", h.ConfirmImport)
	r.Get("/{taskId}", h.Get)
	r.Get("/{taskId}/details", h.Details)
	r.Post("/{taskId}/assign", h.Assign)
	r.Patch("/{taskId}/employee-status", h.UpdateEmployeeStatus)
}

// Create handles POST /tasks/create requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Create(r.Context(), req.ManagerID, req.Draft())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("manager_id", task.ManagerID))

	shared.RespondWithSuccess(w, r, http.StatusCreated, map[string]any{
		"message": "Task created successfully",
		"task":    taskToResponse(task),
	})
}

// List handles GET /tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(tasks),
		"tasks": tasksToResponse(tasks),
	})
}

// Queue handles GET /tasks/queue/{managerId} requests.
func (h *TaskHandler) Queue(w http.ResponseWriter, r *http.Request) {
	managerID, err := pathString(r, "managerId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var status domain.TaskStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err = domain.ParseTaskStatus(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	tasks, err := h.tasks.Queue(r.Context(), managerID, status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task queue")
		return
	}

	payload := map[string]any{
		"managerId": managerID,
		"count":     len(tasks),
		"tasks":     tasksToResponse(tasks),
	}
	if status != "" {
		payload["status"] = status
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, payload)
}

// Get handles GET /tasks/{taskId} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{"task": taskToResponse(task)})
}

// Details handles GET /tasks/{taskId}/details requests.
func (h *TaskHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	details, err := h.tasks.Details(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task details")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"task":               taskToResponse(details.Task),
		"availableEmployees": rankedToResponse(details.AvailableEmployees),
		"totalEmployees":     len(details.AvailableEmployees),
	})
}

// Assign handles POST /tasks/{taskId}/assign requests.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AssignTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.tasks.Assign(r.Context(), id, req.EmployeeIDs, req.ManagerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign task")
		return
	}

	log.Info("task assigned",
		slog.Int64("task_id", id),
		slog.Int("assignees", len(result.AssignedTo)))

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"message":           fmt.Sprintf("Task assigned to %d employee(s)", len(result.AssignedTo)),
		"task":              taskToResponse(result.Task),
		"assignedTo":        result.AssignedTo,
		"notificationsSent": result.NotificationsSent,
	})
}

// UpdateEmployeeStatus handles PATCH /tasks/{taskId}/employee-status requests.
func (h *TaskHandler) UpdateEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req EmployeeStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	to, err := domain.ParseTaskStatus(req.NewStatus)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.AdvanceStatus(r.Context(), id, req.EmployeeID, to)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task status")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Task status updated to %s", task.Status),
		"task":    taskToResponse(task),
	})
}

// EmployeeTasks handles GET /tasks/employee/{employeeId} requests.
func (h *TaskHandler) EmployeeTasks(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathString(r, "employeeId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.EmployeeTasks(r.Context(), employeeID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee tasks")
		return
	}

	out := make([]EmployeeTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, employeeTaskToResponse(t))
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(out),
		"tasks": out,
	})
}

// PreviewImport handles POST /tasks/import/preview requests.
// The workbook is parsed into candidates; nothing is written.
func (h *TaskHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		log.Debug("missing upload", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "A .xlsx file is required in the \"file\" field")
		return
	}
	defer func() { _ = file.Close() }()

	candidates, err := service.PreviewImport(header.Filename, file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	log.Info("import previewed",
		slog.String("filename", header.Filename),
		slog.Int("rows", len(candidates)))

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(candidates),
		"tasks": candidates,
	})
}

// ConfirmImport handles POST /tasks/import/confirm requests.
func (h *TaskHandler) ConfirmImport(w http.ResponseWriter, r *http.Request) {
	var req ConfirmImportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	candidates, malformed := req.Candidates()
	if malformed > 0 {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("import rows with invalid shape",
			slog.String("manager_id", req.ManagerID),
			slog.Int("rows", len(candidates)),
			slog.Int("malformed", malformed))
	}

	result, err := h.tasks.ReconcileImport(r.Context(), req.ManagerID, candidates)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import tasks")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"created":      result.Created,
		"assigned":     result.Assigned,
		"failed":       result.Failed,
		"createdTasks": result.CreatedTasks,
		"message":      result.Message,
	})
}
