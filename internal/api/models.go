package api

import (
	"encoding/json"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/service"
)

// defaultRankedDesignation is shown for ranked employees without a designation.
const defaultRankedDesignation = "Employee"

// CreateTaskRequest is the body of POST /api/tasks/create.
type CreateTaskRequest struct {
	ManagerID   string          `json:"managerId"   validate:"required"`
	Title       string          `json:"title"       validate:"required,max=200"`
	Description string          `json:"description"`
	Priority    string          `json:"priority"    validate:"omitempty,max=32"`
	Deadline    *string         `json:"deadline"    validate:"omitempty,datetime=2006-01-02"`
	Metadata    domain.Metadata `json:"metadata"`
}

// Draft converts the request into a task-creation draft.
func (r CreateTaskRequest) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		Metadata:    r.Metadata,
	}
}

// AssignTaskRequest is the body of POST /api/tasks/{taskId}/assign.
type AssignTaskRequest struct {
	ManagerID   string   `json:"managerId"   validate:"required"`
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1"`
}

// EmployeeStatusRequest is the body of PATCH /api/tasks/{taskId}/employee-status.
type EmployeeStatusRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	NewStatus  string `json:"newStatus"  validate:"required"`
}

// ConfirmImportRequest is the body of POST /api/tasks/import/confirm.
// Rows stay raw so that one malformed row cannot reject the whole batch.
type ConfirmImportRequest struct {
	ManagerID string            `json:"managerId" validate:"required"`
	Tasks     []json.RawMessage `json:"tasks"     validate:"required"`
}

// Candidates decodes every row on its own. A row of the wrong shape is reduced
// to its title, if one can be read, and no employee; reconciliation then
// reports it as an invalid payload. The second result counts such rows.
func (r ConfirmImportRequest) Candidates() ([]domain.ImportCandidate, int) {
	out := make([]domain.ImportCandidate, 0, len(r.Tasks))
	malformed := 0
	for _, raw := range r.Tasks {
		var c domain.ImportCandidate
		if err := json.Unmarshal(raw, &c); err != nil {
			c = domain.ImportCandidate{Title: rowTitle(raw)}
			malformed++
		}
		out = append(out, c)
	}
	return out, malformed
}

// rowTitle returns the row's title when it is a JSON string, else "".
func rowTitle(raw json.RawMessage) string {
	var row struct {
		Title any `json:"title"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return ""
	}
	title, _ := row.Title.(string)
	return title
}

// CreateProjectRequest is the body of POST /api/projects/create.
type CreateProjectRequest struct {
	ManagerID   string `json:"managerId"   validate:"required"`
	ProjectName string `json:"projectName" validate:"required,max=200"`
	Description string `json:"description"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	TaskID            int64                    `json:"taskId"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	Priority          string                   `json:"priority"`
	Deadline          *string                  `json:"deadline"`
	Metadata          domain.Metadata          `json:"metadata"`
	Status            domain.TaskStatus        `json:"status"`
	ManagerID         string                   `json:"managerId"`
	ManagerName       string                   `json:"managerName"`
	AssignedEmployees []domain.AssigneeSummary `json:"assignedEmployees"`
	CreatedAt         string                   `json:"createdAt"`
	AssignedAt        *string                  `json:"assignedAt"`
}

// EmployeeTaskResponse is an active task flattened for one assignee.
type EmployeeTaskResponse struct {
	TaskID      int64             `json:"taskId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ProjectName *string           `json:"projectName"`
	Priority    string            `json:"priority"`
	Deadline    *string           `json:"deadline"`
	Status      domain.TaskStatus `json:"status"`
	ManagerName string            `json:"managerName"`
	AssignedAt  *string           `json:"assignedAt"`
}

// EmployeeResponse is the wire form of an employee.
type EmployeeResponse struct {
	EmployeeID         string `json:"employeeId"`
	EmployeeName       string `json:"employeeName"`
	Email              string `json:"email,omitempty"`
	Department         string `json:"department,omitempty"`
	Designation        string `json:"designation,omitempty"`
	CurrentTaskDetails string `json:"currentTaskDetails"`
	ActiveProjects     int    `json:"noOfActiveProjects"`
	Date               string `json:"date"`
}

// TaskHistoryCounts is the per-employee summary shown in the directory.
type TaskHistoryCounts struct {
	TotalTasks     int `json:"totalTasks"`
	ActiveTasks    int `json:"activeTasks"`
	CompletedTasks int `json:"completedTasks"`
}

// EmployeeListItem is an employee with its task history counts.
type EmployeeListItem struct {
	EmployeeResponse
	TaskHistorySummary TaskHistoryCounts `json:"taskHistorySummary"`
}

// EmployeeDetailResponse is an employee with its availability class.
type EmployeeDetailResponse struct {
	EmployeeResponse
	AvailabilityStatus domain.Availability `json:"availabilityStatus"`
}

// RankedEmployeeResponse is one row of the workload ranking.
type RankedEmployeeResponse struct {
	Rank               int                 `json:"rank"`
	EmployeeID         string              `json:"employeeId"`
	EmployeeName       string              `json:"employeeName"`
	Designation        string              `json:"designation"`
	CurrentTaskDetails string              `json:"currentTaskDetails"`
	ActiveProjects     int                 `json:"noOfActiveProjects"`
	AvailabilityStatus domain.Availability `json:"availabilityStatus"`
}

// EmployeeRef identifies an employee inside a larger response.
type EmployeeRef struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

// NotificationResponse is the wire form of a notification.
type NotificationResponse struct {
	NotificationID int64  `json:"notificationId"`
	EmployeeID     string `json:"employeeId"`
	EmployeeName   string `json:"employeeName"`
	ManagerID      string `json:"managerId"`
	ManagerName    string `json:"managerName"`
	TaskID         int64  `json:"taskId"`
	Message        string `json:"message"`
	IsRead         bool   `json:"isRead"`
	CreatedAt      string `json:"createdAt"`
}

// HistoryEntryResponse is one assignment in an employee timeline.
type HistoryEntryResponse struct {
	TaskID      int64             `json:"taskId"`
	TaskTitle   string            `json:"taskTitle"`
	ManagerID   string            `json:"managerId"`
	ManagerName string            `json:"managerName"`
	AssignedAt  string            `json:"assignedAt"`
	Status      domain.TaskStatus `json:"status"`
	CompletedAt *string           `json:"completedAt"`
}

// HistoryResponse is an employee timeline split into active and completed work.
type HistoryResponse struct {
	EmployeeID     string                 `json:"employeeId"`
	TotalTasks     int                    `json:"totalTasks"`
	ActiveTasks    []HistoryEntryResponse `json:"activeTasks"`
	ActiveCount    int                    `json:"activeCount"`
	CompletedTasks []HistoryEntryResponse `json:"completedTasks"`
	CompletedCount int                    `json:"completedCount"`
	FullHistory    []HistoryEntryResponse `json:"fullHistory"`
}

// ProjectResponse is the wire form of a project.
type ProjectResponse struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
	ManagerID   string `json:"managerId"`
	ManagerName string `json:"managerName"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func formatTimestamp(t time.Time) string {
	return t.Format(domain.TimestampLayout)
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func taskToResponse(t *domain.Task) TaskResponse {
	metadata := t.Metadata
	if metadata == nil {
		metadata = domain.Metadata{}
	}
	assignees := t.AssignedEmployees
	if assignees == nil {
		assignees = []domain.AssigneeSummary{}
	}
	return TaskResponse{
		TaskID:            t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Priority:          t.Priority,
		Deadline:          t.Deadline,
		Metadata:          metadata,
		Status:            t.Status,
		ManagerID:         t.ManagerID,
		ManagerName:       t.ManagerName,
		AssignedEmployees: assignees,
		CreatedAt:         formatTimestamp(t.CreatedAt),
		AssignedAt:        formatTimestampPtr(t.AssignedAt),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func employeeTaskToResponse(t *domain.Task) EmployeeTaskResponse {
	var project *string
	if name := t.ProjectName(); name != "" {
		project = &name
	}
	return EmployeeTaskResponse{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		ProjectName: project,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		Status:      t.Status,
		ManagerName: t.ManagerName,
		AssignedAt:  formatTimestampPtr(t.AssignedAt),
	}
}

func employeeToResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:         e.ID,
		EmployeeName:       e.Name,
		Email:              e.Email,
		Department:         e.Department,
		Designation:        e.Designation,
		CurrentTaskDetails: e.CurrentTaskDetails,
		ActiveProjects:     e.ActiveProjects,
		Date:               e.UpdatedOn.Format(domain.DateLayout),
	}
}

func rankedToResponse(ranked []domain.RankedEmployee) []RankedEmployeeResponse {
	out := make([]RankedEmployeeResponse, 0, len(ranked))
	for _, r := range ranked {
		designation := r.Employee.Designation
		if designation == "" {
			designation = defaultRankedDesignation
		}
		out = append(out, RankedEmployeeResponse{
			Rank:               r.Rank,
			EmployeeID:         r.Employee.ID,
			EmployeeName:       r.Employee.Name,
			Designation:        designation,
			CurrentTaskDetails: r.Employee.CurrentTaskDetails,
			ActiveProjects:     r.Employee.ActiveProjects,
			AvailabilityStatus: r.Availability,
		})
	}
	return out
}

func notificationToResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.ID,
		EmployeeID:     n.EmployeeID,
		EmployeeName:   n.EmployeeName,
		ManagerID:      n.ManagerID,
		ManagerName:    n.ManagerName,
		TaskID:         n.TaskID,
		Message:        n.Message,
		IsRead:         n.IsRead,
		CreatedAt:      formatTimestamp(n.CreatedAt),
	}
}

func notificationsToResponse(ns []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationToResponse(n))
	}
	return out
}

func historyEntriesToResponse(entries []domain.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			TaskID:      e.TaskID,
			TaskTitle:   e.TaskTitle,
			ManagerID:   e.ManagerID,
			ManagerName: e.ManagerName,
			AssignedAt:  formatTimestamp(e.AssignedAt),
			Status:      e.Status,
			CompletedAt: formatTimestampPtr(e.CompletedAt),
		})
	}
	return out
}

func historyToResponse(h domain.HistorySummary) HistoryResponse {
	return HistoryResponse{
		EmployeeID:     h.EmployeeID,
		TotalTasks:     h.TotalTasks,
		ActiveTasks:    historyEntriesToResponse(h.ActiveTasks),
		ActiveCount:    h.ActiveCount,
		CompletedTasks: historyEntriesToResponse(h.CompletedTasks),
		CompletedCount: h.CompletedCount,
		FullHistory:    historyEntriesToResponse(h.FullHistory),
	}
}

func overviewToListItem(o service.EmployeeOverview) EmployeeListItem {
	return EmployeeListItem{
		EmployeeResponse: employeeToResponse(o.Employee),
		TaskHistorySummary: TaskHistoryCounts{
			TotalTasks:     o.History.TotalTasks,
			ActiveTasks:    o.History.ActiveCount,
			CompletedTasks: o.History.CompletedCount,
		},
	}
}

func projectToResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		ManagerName: p.ManagerName,
		Status:      p.Status,
		CreatedAt:   formatTimestamp(p.CreatedAt),
	}
}

func projectsToResponse(ps []*domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, projectToResponse(p))
	}
	return out
}
