package domain

import "strings"

// EmployeeRef points an import row at the employee who should receive the task.
type EmployeeRef struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	Role         string `json:"role,omitempty"`
}

// ImportCandidate is one externally supplied task row awaiting reconciliation.
type ImportCandidate struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	Deadline    *string      `json:"deadline"`
	Metadata    Metadata     `json:"metadata"`
	Status      TaskStatus   `json:"status"`
	Employee    *EmployeeRef `json:"employee"`
}

// Draft converts the candidate into a task-creation request.
func (c ImportCandidate) Draft() TaskDraft {
	return TaskDraft{
		Title:       c.Title,
		Description: c.Description,
		Priority:    c.Priority,
		Deadline:    c.Deadline,
		Metadata:    c.Metadata,
	}
}

// DuplicateKey identifies tasks that count as the same import: the title plus
// the project named in metadata.
type DuplicateKey struct {
	Title       string
	ProjectName string
}

// KeyOf returns the duplicate key of an existing task.
func KeyOf(t *Task) DuplicateKey {
	return DuplicateKey{Title: t.Title, ProjectName: t.ProjectName()}
}

// Key returns the duplicate key of the candidate.
func (c ImportCandidate) Key() DuplicateKey {
	return DuplicateKey{Title: strings.TrimSpace(c.Title), ProjectName: c.Metadata.ProjectName()}
}
