package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/repository"
)

type UserHandler struct {
	userRepo  *repository.UserRepo
	skillRepo *repository.SkillRepo
}

func NewUserHandler(userRepo *repository.UserRepo, skillRepo *repository.SkillRepo) *UserHandler {
	return &UserHandler{userRepo: userRepo, skillRepo: skillRepo}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load profile", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load profile", r))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := h.userRepo.UpdateProfile(r.Context(), user); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update profile", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ListMentees is mentor-only, for picking a mentee when creating a direct
// session.
func (h *UserHandler) ListMentees(w http.ResponseWriter, r *http.Request) {
	mentees, err := h.userRepo.ListMentees(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list mentees", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"mentees": mentees})
}

func (h *UserHandler) MenteeSkills(w http.ResponseWriter, r *http.Request) {
	menteeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid mentee ID", r))
		return
	}

	// Mentees may only read their own learning progress.
	if middleware.GetUserRole(r.Context()) == models.RoleMentee && middleware.GetUserID(r.Context()) != menteeID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "You can only view your own skills", r))
		return
	}

	skills, err := h.skillRepo.ListByMentee(r.Context(), menteeID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list skills", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": skills})
}
