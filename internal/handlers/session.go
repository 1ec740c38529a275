package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	mentorID := middleware.GetUserID(r.Context())

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.sessions.Create(r.Context(), mentorID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mentorID := middleware.GetUserID(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	if err := h.sessions.Delete(r.Context(), sessionID, mentorID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

func (h *SessionHandler) Programs(w http.ResponseWriter, r *http.Request) {
	programs, err := h.sessions.Programs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list programs", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"programs": programs})
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	menteeID := middleware.GetUserID(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	if err := h.sessions.Register(r.Context(), sessionID, menteeID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registered for session"})
}

func (h *SessionHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	menteeID := middleware.GetUserID(r.Context())

	var req models.SessionRequestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.sessions.CreateRequest(r.Context(), menteeID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	mentorID := middleware.GetUserID(r.Context())

	requests, err := h.sessions.PendingRequests(r.Context(), mentorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list session requests", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *SessionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	mentorID := middleware.GetUserID(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.sessions.Respond(r.Context(), sessionID, mentorID, req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Response recorded"})
}

func (h *SessionHandler) Rejected(w http.ResponseWriter, r *http.Request) {
	menteeID := middleware.GetUserID(r.Context())

	sessions, err := h.sessions.RejectedForMentee(r.Context(), menteeID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list rejected sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rejected_sessions": sessions})
}
