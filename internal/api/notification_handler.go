package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
	"github.com/pmsdemo/pms-api/internal/service"
)

// NotificationHandler serves employee notifications.
type NotificationHandler struct {
	notifications service.NotificationService
	logger        *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications service.NotificationService, log *slog.Logger) *NotificationHandler {
	if notifications == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("notification service cannot be nil for NotificationHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &NotificationHandler{
		notifications: notifications,
		logger:        log.With(slog.String("component", "notification_handler")),
	}
}

// Register mounts the notification routes on r.
func (h *NotificationHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/employee/{employeeId}", h.ListForEmployee)
	r.Patch("/employee/{employeeId}/read-all", h.MarkAllRead)
	r.Get("/{notificationId}", h.Get)
	r.Patch("/{notificationId}/read", h.MarkRead)
	r.Delete("/{notificationId}", h.Delete)
}

// List handles GET /notifications requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, stats, err := h.notifications.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notifications")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"stats":         stats,
		"notifications": notificationsToResponse(notifications),
	})
}

// ListForEmployee handles GET /notifications/employee/{employeeId} requests.
func (h *NotificationHandler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathString(r, "employeeId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	unreadOnly, err := queryBool(r, "unread_only")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	inbox, err := h.notifications.ListForEmployee(r.Context(), employeeID, unreadOnly)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get notifications")
		return
	}

	filter := "all"
	if unreadOnly {
		filter = "unread"
	}
	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"employee": EmployeeRef{
			EmployeeID:   inbox.Employee.ID,
			EmployeeName: inbox.Employee.Name,
		},
		"filter":        filter,
		"stats":         inbox.Stats,
		"count":         len(inbox.Notifications),
		"notifications": notificationsToResponse(inbox.Notifications),
	})
}

// Get handles GET /notifications/{notificationId} requests.
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "notificationId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	n, err := h.notifications.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get notification")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"notification": notificationToResponse(n),
	})
}

// MarkRead handles PATCH /notifications/{notificationId}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "notificationId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to mark notification as read")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"message":        fmt.Sprintf("Notification %d marked as read", id),
		"notificationId": id,
	})
}

// MarkAllRead handles PATCH /notifications/employee/{employeeId}/read-all requests.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	employeeID, err := pathString(r, "employeeId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	marked, err := h.notifications.MarkAllRead(r.Context(), employeeID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark notifications as read")
		return
	}

	log.Debug("notifications marked read",
		slog.String("employee_id", employeeID),
		slog.Int("count", marked))

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("Marked %d notification(s) as read", marked),
		"employeeId":  employeeID,
		"markedCount": marked,
	})
}

// Delete handles DELETE /notifications/{notificationId} requests.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "notificationId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.notifications.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete notification")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, map[string]any{
		"message":        fmt.Sprintf("Notification %d deleted", id),
		"notificationId": id,
	})
}
