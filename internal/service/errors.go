package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps each family to a status code.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in *ServiceError
// 3. Store sentinels never leak past this package; NewServiceError translates them
var (
	// NotFound family. API layer maps these to HTTP 404.
	ErrTaskNotFound         = errors.New("task not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotYourTask indicates the task is owned by a different manager.
	// API layer maps this to HTTP 403.
	ErrNotYourTask = errors.New("not your task")

	// ErrNotAssignee indicates a status change from an employee the task was not assigned to.
	// API layer maps this to HTTP 403.
	ErrNotAssignee = errors.New("employee is not assigned to this task")

	// Conflict family. API layer maps these to HTTP 409.
	ErrTaskNotPending    = errors.New("task is not pending")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateTask     = errors.New("duplicate task already exists")
	ErrProjectExists     = errors.New("project with same name already exists")

	// ErrInvalidInput indicates a malformed request. API layer maps this to HTTP 400.
	ErrInvalidInput = errors.New("invalid input")
)

// StatusConflictError reports an assignment attempt on a task that already left Pending.
type StatusConflictError struct {
	Status domain.TaskStatus
}

// Error implements the error interface.
func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("already %s, cannot assign", e.Status)
}

// Unwrap lets errors.Is match ErrTaskNotPending.
func (e *StatusConflictError) Unwrap() error {
	return ErrTaskNotPending
}

// UnknownEmployeesError lists the employee ids of an assignment request that do not resolve.
type UnknownEmployeesError struct {
	IDs []string
}

// Error implements the error interface.
func (e *UnknownEmployeesError) Error() string {
	return fmt.Sprintf("employee not found: %s", strings.Join(e.IDs, ", "))
}

// Unwrap lets errors.Is match ErrEmployeeNotFound.
func (e *UnknownEmployeesError) Unwrap() error {
	return ErrEmployeeNotFound
}

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	// Service is the component that failed (e.g., "task", "notification")
	Service string
	// Operation is the operation that failed (e.g., "assign", "create")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

var passthrough = []error{
	ErrTaskNotFound,
	ErrEmployeeNotFound,
	ErrManagerNotFound,
	ErrNotificationNotFound,
	ErrNotYourTask,
	ErrNotAssignee,
	ErrTaskNotPending,
	ErrInvalidTransition,
	ErrDuplicateTask,
	ErrProjectExists,
	ErrInvalidInput,
}

// NewServiceError creates a new ServiceError.
// Service sentinels are returned unchanged and store sentinels are translated
// to their service counterparts; anything else is wrapped.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range passthrough {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, store.ErrManagerNotFound):
		return ErrManagerNotFound
	case errors.Is(err, store.ErrNotificationNotFound):
		return ErrNotificationNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// invalidInput marks a domain validation failure as a client error.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func missingDependency(service, name string) error {
	return &ServiceError{
		Service:   service,
		Operation: "create_service",
		Message:   name + " cannot be nil",
	}
}
