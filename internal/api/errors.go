package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/service"
)

// genericErrorMessage is the only text a 5xx response ever carries.
const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrManagerNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return http.StatusNotFound

	// Ownership errors
	case errors.Is(err, service.ErrNotYourTask),
		errors.Is(err, service.ErrNotAssignee):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrTaskNotPending),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateTask),
		errors.Is(err, service.ErrProjectExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var (
		unknown  *service.UnknownEmployeesError
		conflict *service.StatusConflictError
		verrs    validator.ValidationErrors
		vErr     *domain.ValidationError
	)

	switch {
	case errors.As(err, &unknown):
		return fmt.Sprintf("Employee not found: %s", strings.Join(unknown.IDs, ", "))
	case errors.Is(err, service.ErrEmployeeNotFound):
		return "Employee not found"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, service.ErrManagerNotFound):
		return "Manager not found"
	case errors.Is(err, service.ErrNotificationNotFound):
		return "Notification not found"

	case errors.Is(err, service.ErrNotYourTask):
		return "Not your task"
	case errors.Is(err, service.ErrNotAssignee):
		return "Employee is not assigned to this task"

	case errors.As(err, &conflict):
		return "Task " + conflict.Error()
	case errors.Is(err, service.ErrTaskNotPending):
		return "Task is not pending"
	case errors.Is(err, service.ErrInvalidTransition):
		return capitalize(err.Error())
	case errors.Is(err, service.ErrDuplicateTask):
		return "Duplicate task already exists"
	case errors.Is(err, service.ErrProjectExists):
		return "Project with same name already exists"

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)
	case errors.As(err, &vErr):
		if vErr.Field == "" {
			return capitalize(vErr.Message)
		}
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, service.ErrInvalidInput):
		return capitalize(detailAfter(err, service.ErrInvalidInput))
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid task status"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		return capitalize(err.Error())

	default:
		return genericErrorMessage
	}
}

// HandleAPIError writes the status code and safe message for err and logs the
// redacted details. A non-empty fallback replaces the message of 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'AssignTaskRequest.ManagerID' Error:Field validation for 'ManagerID' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := lowerFirst(fieldParts[1])
				if len(fieldParts) >= 5 {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fieldParts[3]))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "invalid date, expected YYYY-MM-DD"
	default:
		return "validation failed"
	}
}

// detailAfter strips the "<sentinel>: " prefix added when a sentinel wraps a detail.
func detailAfter(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
