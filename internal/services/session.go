package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/repository"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// NotificationChannel is the redis pub/sub channel the websocket hub
// subscribes to for a given user.
func NotificationChannel(userID uuid.UUID) string {
	return "user_notifications:" + userID.String()
}

type SessionService struct {
	pool        *pgxpool.Pool
	sessionRepo *repository.SessionRepo
	notifRepo   *repository.NotificationRepo
	userRepo    *repository.UserRepo
	redis       *redis.Client
}

func NewSessionService(
	pool *pgxpool.Pool,
	sessionRepo *repository.SessionRepo,
	notifRepo *repository.NotificationRepo,
	userRepo *repository.UserRepo,
	redisClient *redis.Client,
) *SessionService {
	return &SessionService{
		pool:        pool,
		sessionRepo: sessionRepo,
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		redis:       redisClient,
	}
}

// Create stores a new session owned by the mentor. Without a mentee the
// session is an open program slot; with one it goes straight to upcoming.
func (s *SessionService) Create(ctx context.Context, mentorID uuid.UUID, req models.CreateSessionRequest) (*models.Session, error) {
	fieldErrors := make(map[string]string)
	if req.Topic == "" {
		fieldErrors["topic"] = "Topic is required"
	}
	if req.Schedule.IsZero() {
		fieldErrors["schedule"] = "Schedule is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	session := &models.Session{
		MentorID:      mentorID,
		MenteeID:      req.MenteeID,
		Topic:         req.Topic,
		Description:   req.Description,
		Schedule:      req.Schedule,
		EndSchedule:   req.EndSchedule,
		SkillsToLearn: req.SkillsToLearn,
		ZoomLink:      req.ZoomLink,
		MaterialLink:  req.MaterialLink,
		Status:        models.StatusOpen,
	}
	if req.MenteeID != nil {
		session.Status = models.StatusUpcoming
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID, mentorID uuid.UUID) error {
	deleted, err := s.sessionRepo.Delete(ctx, sessionID, mentorID)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Message: "Session not found"}
	}
	return nil
}

// Register claims an open program slot for the mentee. The claim is a
// single conditional update, so a concurrent registration loses cleanly
// instead of overwriting.
func (s *SessionService) Register(ctx context.Context, sessionID, menteeID uuid.UUID) error {
	claimed, err := s.sessionRepo.Claim(ctx, sessionID, menteeID)
	if err != nil {
		return err
	}
	if claimed {
		return nil
	}

	exists, err := s.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	return claimOutcome(claimed, exists)
}

// claimOutcome maps a failed or successful claim to the caller-facing
// result: a lost claim on an existing session is a conflict, on a
// missing one a not-found.
func claimOutcome(claimed, exists bool) error {
	if claimed {
		return nil
	}
	if !exists {
		return &NotFoundError{Message: "Session not found"}
	}
	return &ConflictError{Message: "Session is already taken by another mentee"}
}

// CreateRequest stores a mentee-initiated session proposal as a pending
// session row for the chosen mentor.
func (s *SessionService) CreateRequest(ctx context.Context, menteeID uuid.UUID, req models.SessionRequestInput) (*models.Session, error) {
	fieldErrors := make(map[string]string)
	if req.MentorID == uuid.Nil {
		fieldErrors["mentor_id"] = "Mentor is required"
	}
	if req.Topic == "" {
		fieldErrors["topic"] = "Topic is required"
	}
	if req.Schedule.IsZero() {
		fieldErrors["schedule"] = "Schedule is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	mentor, err := s.userRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Mentor not found"}
		}
		return nil, err
	}
	if mentor.Role != models.RoleMentor {
		return nil, &ValidationError{Fields: map[string]string{"mentor_id": "User is not a mentor"}}
	}

	description := req.Description
	if req.Message != nil && *req.Message != "" {
		base := ""
		if description != nil {
			base = *description
		}
		combined := base + "\n\nMessage from mentee: " + *req.Message
		description = &combined
	}

	session := &models.Session{
		MentorID:      req.MentorID,
		MenteeID:      &menteeID,
		Topic:         req.Topic,
		Description:   description,
		Schedule:      req.Schedule,
		SkillsToLearn: req.SkillsToLearn,
		Status:        models.StatusPending,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) PendingRequests(ctx context.Context, mentorID uuid.UUID) ([]models.Session, error) {
	return s.sessionRepo.ListPendingByMentor(ctx, mentorID)
}

// Respond approves or rejects a session request. The session update and
// the notification insert commit in one transaction, so a transition
// always produces exactly one notification row. Websocket push and the
// email job are fired after commit and are best effort.
func (s *SessionService) Respond(ctx context.Context, sessionID, mentorID uuid.UUID, req models.RespondRequest) error {
	if req.Action != ActionApprove && req.Action != ActionReject {
		return &ValidationError{Fields: map[string]string{"action": "Action must be approve or reject"}}
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Session not found"}
		}
		return err
	}
	if session.MentorID != mentorID {
		return &ForbiddenError{Message: "You can only respond to your own session requests"}
	}
	if session.MenteeID == nil {
		return &ConflictError{Message: "Session has no mentee to notify"}
	}

	updated, notification, err := buildResponse(session, req)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.sessionRepo.ApplyResponseTx(ctx, tx, updated); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if err := s.notifRepo.CreateTx(ctx, tx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}

	s.publishNotification(ctx, notification)
	s.enqueueEmail(ctx, session, updated, req)

	return nil
}

// buildResponse derives the post-transition session state and its
// notification from the mentor's action.
func buildResponse(session *models.Session, req models.RespondRequest) (*models.Session, *models.Notification, error) {
	updated := *session
	mentorName := ""
	if session.MentorName != nil {
		mentorName = *session.MentorName
	}

	notification := &models.Notification{
		UserID:    *session.MenteeID,
		SessionID: session.ID,
	}

	switch req.Action {
	case ActionReject:
		updated.Status = models.StatusRejected
		updated.RejectReason = req.RejectReason

		notification.Type = models.NotificationSessionRejected
		notification.Title = "Session Request Rejected"
		notification.Message = fmt.Sprintf("Your session request %q has been declined", session.Topic)

		data, err := json.Marshal(map[string]interface{}{
			"rejectReason":     req.RejectReason,
			"originalSchedule": session.Schedule,
			"mentorName":       mentorName,
		})
		if err != nil {
			return nil, nil, err
		}
		notification.Data = data

	case ActionApprove:
		updated.Status = models.StatusUpcoming
		if req.ZoomLink != nil {
			updated.ZoomLink = req.ZoomLink
		}
		if req.MaterialLink != nil {
			updated.MaterialLink = req.MaterialLink
		}

		rescheduled := req.Schedule != nil && !req.Schedule.Equal(session.Schedule)
		if rescheduled {
			updated.Schedule = *req.Schedule

			notification.Type = models.NotificationSessionRescheduled
			notification.Title = "Session Rescheduled"
			notification.Message = fmt.Sprintf("Your session %q has been approved with a new schedule", session.Topic)

			data, err := json.Marshal(map[string]interface{}{
				"originalSchedule": session.Schedule,
				"newSchedule":      *req.Schedule,
				"mentorName":       mentorName,
				"zoomLink":         req.ZoomLink,
				"materialLink":     req.MaterialLink,
			})
			if err != nil {
				return nil, nil, err
			}
			notification.Data = data
		} else {
			notification.Type = models.NotificationSessionApproved
			notification.Title = "Session Approved"
			notification.Message = fmt.Sprintf("Your session %q has been approved by %s", session.Topic, mentorName)

			data, err := json.Marshal(map[string]interface{}{
				"schedule":     session.Schedule,
				"mentorName":   mentorName,
				"zoomLink":     req.ZoomLink,
				"materialLink": req.MaterialLink,
			})
			if err != nil {
				return nil, nil, err
			}
			notification.Data = data
		}
	}

	return &updated, notification, nil
}

func (s *SessionService) publishNotification(ctx context.Context, n *models.Notification) {
	msg, err := json.Marshal(models.WSMessage{Type: "notification", Payload: n})
	if err != nil {
		return
	}
	if err := s.redis.Publish(ctx, NotificationChannel(n.UserID), string(msg)).Err(); err != nil {
		log.Printf("failed to publish notification %s: %v", n.ID, err)
	}
}

func (s *SessionService) enqueueEmail(ctx context.Context, original, updated *models.Session, req models.RespondRequest) {
	mentee, err := s.userRepo.GetByID(ctx, *original.MenteeID)
	if err != nil {
		log.Printf("failed to load mentee for email: %v", err)
		return
	}

	job := models.EmailJob{
		Type:       notificationTypeFor(original, req),
		To:         mentee.Email,
		MenteeName: mentee.Name,
		Topic:      original.Topic,
		Schedule:   updated.Schedule,
	}
	if original.MentorName != nil {
		job.MentorName = *original.MentorName
	}
	if req.RejectReason != nil {
		job.RejectReason = *req.RejectReason
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.redis.RPush(ctx, models.QueueNotificationEmails, payload).Err(); err != nil {
		log.Printf("failed to enqueue notification email: %v", err)
	}
}

func notificationTypeFor(session *models.Session, req models.RespondRequest) string {
	if req.Action == ActionReject {
		return models.NotificationSessionRejected
	}
	if req.Schedule != nil && !req.Schedule.Equal(session.Schedule) {
		return models.NotificationSessionRescheduled
	}
	return models.NotificationSessionApproved
}

func (s *SessionService) Programs(ctx context.Context) ([]models.Program, error) {
	return s.sessionRepo.ListOpenPrograms(ctx)
}

func (s *SessionService) RejectedForMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Session, error) {
	return s.sessionRepo.ListRejectedByMentee(ctx, menteeID)
}
