package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/service"
)

// ProjectHandler serves projects and the task views grouped by project name.
type ProjectHandler struct {
	projects service.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects service.ProjectService, log *slog.Logger) *ProjectHandler {
	if projects == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("project service cannot be nil for ProjectHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ProjectHandler{
		projects: projects,
		logger:   log.With(slog.String("component", "project_handler")),
	}
}

// Register mounts the project routes on r.
func (h *ProjectHandler) Register(r chi.Router) {
	r.Post("/create", h.Create)
	r.Get("/manager/{managerId}", h.List)
	r.Get("/manager/{managerId}/summary", h.Summary)
	r.Get("/employee/{employeeId}", h.EmployeeProjects)
	r.Get("/employee/{employeeId}/{projectName}", h.EmployeeTasks)
	r.Get("/{projectName}/tasks", h.Tasks)
}

// Create handles POST /projects/create requests.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProjectRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projects.Create(r.Context(), req.ManagerID, req.ProjectName, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}

	log.Info("project created",
		slog.Int64("project_id", project.ID),
		slog.String("manager_id", project.ManagerID))

	shared.RespondWithSuccess(w, r, http.StatusCreated, map[string]any{
		"project": projectToResponse(project),
	})
}

// List handles GET /projects/manager/{managerId} requests.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	managerID, err := pathString(r, "managerId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	projects, err := h.projects.List(r.Context(), managerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count":    len(projects),
		"projects": projectsToResponse(projects),
	})
}

// Summary handles GET /projects/manager/{managerId}/summary requests.
func (h *ProjectHandler) Summary(w http.ResponseWriter, r *http.Request) {
	managerID, err := pathString(r, "managerId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summary, err := h.projects.Summary(r.Context(), managerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize projects")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{"projects": summary})
}

// Tasks handles GET /projects/{projectName}/tasks requests.
func (h *ProjectHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "projectName")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.projects.Tasks(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project tasks")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(tasks),
		"tasks": tasksToResponse(tasks),
	})
}

// EmployeeProjects handles GET /projects/employee/{employeeId} requests.
func (h *ProjectHandler) EmployeeProjects(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathString(r, "employeeId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	projects, err := h.projects.EmployeeProjects(r.Context(), employeeID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee projects")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{"projects": projects})
}

// EmployeeTasks handles GET /projects/employee/{employeeId}/{projectName} requests.
func (h *ProjectHandler) EmployeeTasks(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathString(r, "employeeId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	name, err := pathString(r, "projectName")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.projects.EmployeeTasks(r.Context(), employeeID, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee project tasks")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(tasks),
		"tasks": tasksToResponse(tasks),
	})
}
