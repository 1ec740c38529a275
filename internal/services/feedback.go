package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/repository"
)

type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepo
	sessionRepo  *repository.SessionRepo
	skillRepo    *repository.SkillRepo
}

func NewFeedbackService(
	feedbackRepo *repository.FeedbackRepo,
	sessionRepo *repository.SessionRepo,
	skillRepo *repository.SkillRepo,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		sessionRepo:  sessionRepo,
		skillRepo:    skillRepo,
	}
}

// Submit upserts the mentee's feedback for a session and marks the session
// completed. Skill derivation afterwards is best effort: a failure there is
// logged but never fails the feedback write.
//
// The status write is unconditional, including over rejected or cancelled
// sessions. That mirrors the long-standing behavior this service replaced;
// see the policy note in DESIGN.md before changing it.
func (s *FeedbackService) Submit(ctx context.Context, menteeID uuid.UUID, req models.SubmitFeedbackRequest) (*models.Feedback, error) {
	fieldErrors := make(map[string]string)
	if req.SessionID == uuid.Nil {
		fieldErrors["session_id"] = "Session is required"
	}
	if req.Rating < 1 || req.Rating > 5 {
		fieldErrors["rating"] = "Rating must be between 1 and 5"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Session not found"}
		}
		return nil, err
	}
	if session.MenteeID == nil || *session.MenteeID != menteeID {
		return nil, &ForbiddenError{Message: "You can only leave feedback on your own sessions"}
	}

	feedback := &models.Feedback{
		SessionID: req.SessionID,
		MenteeID:  menteeID,
		MentorID:  session.MentorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.ForceComplete(ctx, req.SessionID); err != nil {
		return nil, err
	}

	s.deriveSkills(ctx, menteeID, session)

	return feedback, nil
}

func (s *FeedbackService) deriveSkills(ctx context.Context, menteeID uuid.UUID, session *models.Session) {
	if session.SkillsToLearn == nil {
		return
	}

	skills := ParseSkills(*session.SkillsToLearn)
	if len(skills) == 0 {
		return
	}

	if err := s.skillRepo.Add(ctx, menteeID, session.ID, skills); err != nil {
		log.Printf("failed to derive skills for session %s: %v", session.ID, err)
	}
}

// ParseSkills splits a comma-separated skill list, trimming whitespace and
// dropping empties and duplicates while preserving first-seen order.
func ParseSkills(raw string) []string {
	seen := make(map[string]bool)
	skills := []string{}
	for _, part := range strings.Split(raw, ",") {
		skill := strings.TrimSpace(part)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}
	return skills
}
