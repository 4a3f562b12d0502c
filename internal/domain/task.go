package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Task statuses, in progression order.
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusAssigned   TaskStatus = "Assigned"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// DefaultPriority is used when a task is created without a priority.
const DefaultPriority = "Medium"

var (
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrEmptyTaskManager = errors.New("task manager ID cannot be empty")
	ErrTaskNotPending   = errors.New("task is not pending")
)

// ParseTaskStatus converts a string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// Valid reports whether s is part of the status vocabulary.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Next returns the status that follows s. Completed has no successor.
func (s TaskStatus) Next() (TaskStatus, bool) {
	switch s {
	case TaskStatusPending:
		return TaskStatusAssigned, true
	case TaskStatusAssigned:
		return TaskStatusInProgress, true
	case TaskStatusInProgress:
		return TaskStatusCompleted, true
	default:
		return "", false
	}
}

// IsActive reports whether work on the task is outstanding.
func (s TaskStatus) IsActive() bool {
	return s == TaskStatusAssigned || s == TaskStatusInProgress
}

// AssigneeSummary identifies an employee a task was assigned to.
type AssigneeSummary struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

// TaskDraft is a normalized task-creation request, coming either from the
// HTTP layer or from a spreadsheet import.
type TaskDraft struct {
	Title       string
	Description string
	Priority    string
	Deadline    *string
	Metadata    Metadata
}

// Task is a unit of work owned by a manager.
type Task struct {
	ID                int64             `json:"taskId"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Priority          string            `json:"priority"`
	Deadline          *string           `json:"deadline"`
	Metadata          Metadata          `json:"metadata"`
	Status            TaskStatus        `json:"status"`
	ManagerID         string            `json:"managerId"`
	ManagerName       string            `json:"managerName"`
	AssignedEmployees []AssigneeSummary `json:"assignedEmployees"`
	CreatedAt         time.Time         `json:"createdAt"`
	AssignedAt        *time.Time        `json:"assignedAt"`
}

// NewTask builds a pending task owned by manager. The ID is assigned by the store.
func NewTask(manager *Manager, draft TaskDraft, now time.Time) (*Task, error) {
	if manager == nil {
		return nil, ErrEmptyTaskManager
	}

	priority := strings.TrimSpace(draft.Priority)
	if priority == "" {
		priority = DefaultPriority
	}

	task := &Task{
		Title:             strings.TrimSpace(draft.Title),
		Description:       draft.Description,
		Priority:          priority,
		Deadline:          draft.Deadline,
		Metadata:          draft.Metadata.Clone(),
		Status:            TaskStatusPending,
		ManagerID:         manager.ID,
		ManagerName:       manager.Name,
		AssignedEmployees: []AssigneeSummary{},
		CreatedAt:         now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if strings.TrimSpace(t.ManagerID) == "" {
		return ErrEmptyTaskManager
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	return t.Metadata.Validate()
}

// MarkAssigned moves a pending task to Assigned, replacing its assignee list.
func (t *Task) MarkAssigned(assignees []AssigneeSummary, at time.Time) error {
	if t.Status != TaskStatusPending {
		return ErrTaskNotPending
	}
	t.Status = TaskStatusAssigned
	t.AssignedEmployees = append([]AssigneeSummary{}, assignees...)
	assignedAt := at
	t.AssignedAt = &assignedAt
	return nil
}

// Advance moves an assigned task exactly one step forward.
// Pending tasks can only leave Pending through MarkAssigned.
func (t *Task) Advance(to TaskStatus) error {
	if t.Status == TaskStatusPending {
		return fmt.Errorf("%w: task must be assigned first", ErrInvalidTransition)
	}
	next, ok := t.Status.Next()
	if !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, to)
	}
	t.Status = to
	return nil
}

// HasAssignee reports whether employeeID is among the task's assignees.
func (t *Task) HasAssignee(employeeID string) bool {
	for _, a := range t.AssignedEmployees {
		if a.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// ProjectName returns the project recorded in the task metadata.
func (t *Task) ProjectName() string {
	return t.Metadata.ProjectName()
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Metadata = t.Metadata.Clone()
	c.AssignedEmployees = append([]AssigneeSummary{}, t.AssignedEmployees...)
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.AssignedAt != nil {
		a := *t.AssignedAt
		c.AssignedAt = &a
	}
	return &c
}
