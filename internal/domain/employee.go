package domain

import (
	"errors"
	"strings"
	"time"
)

// Layouts used when rendering timestamps and dates.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// UnknownName is used when a notification refers to an employee or manager
// that cannot be resolved.
const UnknownName = "Unknown"

var (
	ErrEmptyEmployeeID   = errors.New("employee ID cannot be empty")
	ErrEmptyEmployeeName = errors.New("employee name cannot be empty")
	ErrNegativeWorkload  = errors.New("active project count cannot be negative")
)

// Employee is a member of staff that tasks can be assigned to.
// ActiveProjects is the workload signal used for ranking.
type Employee struct {
	ID                 string    `json:"employeeId"`
	Name               string    `json:"employeeName"`
	Email              string    `json:"email,omitempty"`
	Department         string    `json:"department,omitempty"`
	Designation        string    `json:"designation,omitempty"`
	CurrentTaskDetails string    `json:"currentTaskDetails"`
	ActiveProjects     int       `json:"noOfActiveProjects"`
	UpdatedOn          time.Time `json:"date"`
}

// Validate checks the employee invariants.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyEmployeeID
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEmployeeName
	}
	if e.ActiveProjects < 0 {
		return ErrNegativeWorkload
	}
	return nil
}

// RecordAssignment applies the workload change of one assignment:
// one more active project, the task title as current work, and a fresh date.
func (e *Employee) RecordAssignment(taskTitle string, now time.Time) {
	e.ActiveProjects++
	e.CurrentTaskDetails = taskTitle
	e.UpdatedOn = truncateToDay(now)
}

// Availability returns the availability class for the current workload.
func (e *Employee) Availability() Availability {
	return ClassifyAvailability(e.ActiveProjects)
}

// Clone returns a copy of the employee.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// Manager owns tasks. Managers are immutable once created.
type Manager struct {
	ID         string `json:"managerId"`
	Name       string `json:"managerName"`
	Department string `json:"department"`
}

// Validate checks the manager invariants.
func (m *Manager) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return NewValidationError("managerId", "cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(m.Name) == "" {
		return NewValidationError("managerName", "cannot be empty", ErrValidation)
	}
	return nil
}

// Clone returns a copy of the manager.
func (m *Manager) Clone() *Manager {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func truncateToDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
