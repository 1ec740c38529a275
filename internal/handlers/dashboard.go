package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/repository"
	"mentorconnect-backend/internal/services"
)

type DashboardHandler struct {
	pool         *pgxpool.Pool
	userRepo     *repository.UserRepo
	sessionRepo  *repository.SessionRepo
	feedbackRepo *repository.FeedbackRepo
}

func NewDashboardHandler(pool *pgxpool.Pool, userRepo *repository.UserRepo, sessionRepo *repository.SessionRepo, feedbackRepo *repository.FeedbackRepo) *DashboardHandler {
	return &DashboardHandler{pool: pool, userRepo: userRepo, sessionRepo: sessionRepo, feedbackRepo: feedbackRepo}
}

func (h *DashboardHandler) Mentee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	menteeID := middleware.GetUserID(ctx)

	mentee, err := h.userRepo.GetByID(ctx, menteeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load dashboard", r))
		return
	}

	sessions, err := h.sessionRepo.ListByMentee(ctx, menteeID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load sessions", r))
		return
	}

	now := time.Now()
	completed := completedSessions(sessions, now)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mentee": mentee,
		"stats": map[string]interface{}{
			"completedSessions": len(completed),
			"learningHours":     learningHours(completed),
			"skillsAcquired":    skillsAcquired(completed),
		},
		"upcomingSessions": nearestUpcoming(sessions, now, 2),
		"sessionHistory":   sessions,
	})
}

func (h *DashboardHandler) Mentor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mentorID := middleware.GetUserID(ctx)

	mentor, err := h.userRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load dashboard", r))
		return
	}

	sessions, err := h.sessionRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load sessions", r))
		return
	}

	var activeMentees int
	h.pool.QueryRow(ctx,
		"SELECT COUNT(DISTINCT mentee_id) FROM sessions WHERE mentor_id = $1 AND mentee_id IS NOT NULL",
		mentorID,
	).Scan(&activeMentees)

	averageRating, err := h.feedbackRepo.AverageRatingForMentor(ctx, mentorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load ratings", r))
		return
	}

	recentFeedback, err := h.feedbackRepo.RecentByMentor(ctx, mentorID, 5)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load feedback", r))
		return
	}

	now := time.Now()
	completed := completedSessions(sessions, now)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mentor": mentor,
		"stats": map[string]interface{}{
			"totalSessions": len(completed),
			"activeMentees": activeMentees,
			"averageRating": averageRating,
		},
		"upcomingSessions": nearestUpcoming(sessions, now, 0),
		"sessionHistory":   completed,
		"recentFeedback":   recentFeedback,
	})
}

// completedSessions filters by the derived bucket, so a stale upcoming
// session well past its schedule still counts.
func completedSessions(sessions []models.Session, now time.Time) []models.Session {
	completed := []models.Session{}
	for _, s := range sessions {
		if models.SessionBucket(s.Status, s.Schedule, now) == models.StatusCompleted {
			completed = append(completed, s)
		}
	}
	return completed
}

// nearestUpcoming returns sessions that haven't started yet, soonest
// first. limit 0 means no cap. Input is assumed schedule-ordered.
func nearestUpcoming(sessions []models.Session, now time.Time, limit int) []models.Session {
	upcoming := []models.Session{}
	for _, s := range sessions {
		bucket := models.SessionBucket(s.Status, s.Schedule, now)
		if bucket != models.StatusUpcoming && bucket != models.BucketOngoing {
			continue
		}
		if !s.Schedule.After(now) {
			continue
		}
		upcoming = append(upcoming, s)
		if limit > 0 && len(upcoming) == limit {
			break
		}
	}
	return upcoming
}

// learningHours sums session lengths, assuming two hours when a session
// has no explicit end time.
func learningHours(completed []models.Session) float64 {
	total := 0.0
	for _, s := range completed {
		if s.EndSchedule != nil && s.EndSchedule.After(s.Schedule) {
			total += s.EndSchedule.Sub(s.Schedule).Hours()
		} else {
			total += 2
		}
	}
	return total
}

func skillsAcquired(completed []models.Session) int {
	distinct := make(map[string]bool)
	for _, s := range completed {
		if s.SkillsToLearn == nil {
			continue
		}
		for _, skill := range services.ParseSkills(*s.SkillsToLearn) {
			distinct[skill] = true
		}
	}
	return len(distinct)
}
