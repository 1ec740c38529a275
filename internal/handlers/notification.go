package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/repository"
)

type NotificationHandler struct {
	notifRepo *repository.NotificationRepo
}

func NewNotificationHandler(notifRepo *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notifType := r.URL.Query().Get("type")

	notifications, err := h.notifRepo.ListByUser(r.Context(), userID, notifType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list notifications", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.notifRepo.CountByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to count notifications", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.flip(w, r, h.notifRepo.MarkRead, "Notification marked as read")
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.flip(w, r, h.notifRepo.Dismiss, "Notification dismissed")
}

// flip runs one of the idempotent flag updates, scoped to the caller so
// users can't touch each other's notifications.
func (h *NotificationHandler) flip(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, userID uuid.UUID) (bool, error),
	message string,
) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid notification ID", r))
		return
	}

	updated, err := op(r.Context(), id, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update notification", r))
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Notification not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
