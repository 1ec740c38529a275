package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/repository"
)

type MentorHandler struct {
	userRepo     *repository.UserRepo
	feedbackRepo *repository.FeedbackRepo
}

func NewMentorHandler(userRepo *repository.UserRepo, feedbackRepo *repository.FeedbackRepo) *MentorHandler {
	return &MentorHandler{userRepo: userRepo, feedbackRepo: feedbackRepo}
}

func (h *MentorHandler) List(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.userRepo.ListMentors(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list mentors", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"mentors": mentors})
}

func (h *MentorHandler) Get(w http.ResponseWriter, r *http.Request) {
	mentorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid mentor ID", r))
		return
	}

	listing, err := h.userRepo.GetMentorListing(r.Context(), mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Mentor not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load mentor", r))
		return
	}

	recent, err := h.feedbackRepo.RecentByMentor(r.Context(), mentorID, 5)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load feedback", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mentor": models.MentorProfile{MentorListing: *listing, RecentFeedback: recent},
	})
}
