package services

import (
	"context"
	"log"
	"time"

	"mentorconnect-backend/internal/repository"
)

const (
	reminderWindow       = 24 * time.Hour
	reminderPollInterval = 1 * time.Hour
)

// ReminderScheduler emails mentees about upcoming sessions starting within
// the reminder window. Each session is reminded at most once, tracked by
// the reminded flag on the row.
type ReminderScheduler struct {
	sessionRepo *repository.SessionRepo
	userRepo    *repository.UserRepo
	email       *EmailService
	stopChan    chan struct{}
}

func NewReminderScheduler(sessionRepo *repository.SessionRepo, userRepo *repository.UserRepo, email *EmailService) *ReminderScheduler {
	return &ReminderScheduler{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		email:       email,
		stopChan:    make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	if s.sessionRepo == nil || s.email == nil {
		return
	}

	go s.loop()

	log.Printf("Session reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.sendReminders(context.Background())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendReminders(context.Background())
		}
	}
}

func (s *ReminderScheduler) sendReminders(ctx context.Context) {
	sessions, err := s.sessionRepo.ListDueReminders(ctx, reminderWindow)
	if err != nil {
		log.Printf("session reminders: failed to list due sessions: %v", err)
		return
	}

	for _, session := range sessions {
		mentee, err := s.userRepo.GetByID(ctx, *session.MenteeID)
		if err != nil {
			log.Printf("session reminders: failed to load mentee for %s: %v", session.ID, err)
			continue
		}

		mentorName := ""
		if session.MentorName != nil {
			mentorName = *session.MentorName
		}

		if err := s.email.SendSessionReminderEmail(mentee.Email, mentee.Name, mentorName, session.Topic, session.Schedule); err != nil {
			log.Printf("session reminders: failed to email %s: %v", mentee.Email, err)
			continue
		}

		// Mark only after a successful send so a failed one retries next tick.
		if err := s.sessionRepo.MarkReminded(ctx, session.ID); err != nil {
			log.Printf("session reminders: failed to mark %s: %v", session.ID, err)
		}
	}
}
