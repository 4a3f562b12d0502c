package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/service"
)

const rankingDescription = "Employees ranked by availability (fewer projects = higher rank)"

// EmployeeHandler serves the employee directory, ranking, inbox, and history.
type EmployeeHandler struct {
	employees     service.EmployeeService
	notifications service.NotificationService
	logger        *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(
	employees service.EmployeeService,
	notifications service.NotificationService,
	log *slog.Logger,
) *EmployeeHandler {
	if employees == nil || notifications == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("services cannot be nil for EmployeeHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &EmployeeHandler{
		employees:     employees,
		notifications: notifications,
		logger:        log.With(slog.String("component", "employee_handler")),
	}
}

// Register mounts the employee routes on r.
func (h *EmployeeHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/profile", h.Profiles)
	r.Get("/profile/{id}", h.Profile)
	r.Get("/ranking", h.Ranking)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/notifications", h.Notifications)
	r.Get("/{id}/task-history", h.TaskHistory)
}

// List handles GET /employees requests.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.employees.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list employees")
		return
	}

	items := make([]EmployeeListItem, 0, len(overviews))
	for _, o := range overviews {
		items = append(items, overviewToListItem(o))
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(items),
		"data":  items,
	})
}

// Profiles handles GET /employees/profile requests.
func (h *EmployeeHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.employees.Profiles(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list employee profiles")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(profiles),
		"data":  profiles,
	})
}

// Profile handles GET /employees/profile/{id} requests.
func (h *EmployeeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.employees.Profile(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee profile")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{"data": profile})
}

// Ranking handles GET /employees/ranking requests.
func (h *EmployeeHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.employees.Ranking(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rank employees")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"description": rankingDescription,
		"count":       len(ranked),
		"data":        rankedToResponse(ranked),
	})
}

// Get handles GET /employees/{id} requests.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"data": EmployeeDetailResponse{
			EmployeeResponse:   employeeToResponse(employee),
			AvailabilityStatus: employee.Availability(),
		},
	})
}

// Notifications handles GET /employees/{id}/notifications requests.
func (h *EmployeeHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	unreadOnly, err := queryBool(r, "unread_only")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	inbox, err := h.notifications.ListForEmployee(r.Context(), id, unreadOnly)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get notifications")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"employee": EmployeeRef{
			EmployeeID:   inbox.Employee.ID,
			EmployeeName: inbox.Employee.Name,
		},
		"unreadOnly":    inbox.UnreadOnly,
		"count":         len(inbox.Notifications),
		"notifications": notificationsToResponse(inbox.Notifications),
	})
}

// TaskHistory handles GET /employees/{id}/task-history requests.
func (h *EmployeeHandler) TaskHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathString(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	overview, err := h.employees.TaskHistory(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task history")
		return
	}

	log.Debug("task history retrieved",
		slog.String("employee_id", id),
		slog.Int("total_tasks", overview.History.TotalTasks))

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"employee": map[string]any{
			"employeeId":         overview.Employee.ID,
			"employeeName":       overview.Employee.Name,
			"currentTaskDetails": overview.Employee.CurrentTaskDetails,
			"noOfActiveProjects": overview.Employee.ActiveProjects,
		},
		"taskHistory": historyToResponse(overview.History),
		"summary": map[string]int{
			"totalTasksAssigned": overview.History.TotalTasks,
			"currentlyActive":    overview.History.ActiveCount,
			"completed":          overview.History.CompletedCount,
		},
	})
}

// ManagerHandler serves the read-only manager directory.
type ManagerHandler struct {
	managers service.ManagerService
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(managers service.ManagerService) *ManagerHandler {
	if managers == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("manager service cannot be nil for ManagerHandler")
	}
	return &ManagerHandler{managers: managers}
}

// Register mounts the manager routes on r.
func (h *ManagerHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List handles GET /managers requests.
func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	managers, err := h.managers.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list managers")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(managers),
		"data":  managers,
	})
}

// Get handles GET /managers/{id} requests.
func (h *ManagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	manager, err := h.managers.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get manager")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{"data": manager})
}
