package handlers

import (
	"encoding/json"
	"net/http"

	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/services"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	menteeID := middleware.GetUserID(r.Context())

	var req models.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	feedback, err := h.feedback.Submit(r.Context(), menteeID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": feedback,
	})
}
