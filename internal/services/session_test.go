package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"mentorconnect-backend/internal/models"
)

func pendingSession(t *testing.T) *models.Session {
	t.Helper()
	menteeID := uuid.New()
	mentorName := "John Mentor"
	return &models.Session{
		ID:         uuid.New(),
		MentorID:   uuid.New(),
		MenteeID:   &menteeID,
		Topic:      "Intro to Go",
		Schedule:   time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Status:     models.StatusPending,
		MentorName: &mentorName,
	}
}

func TestBuildResponse_Reject(t *testing.T) {
	session := pendingSession(t)
	reason := "Schedule conflict"

	updated, notification, err := buildResponse(session, models.RespondRequest{
		Action:       ActionReject,
		RejectReason: &reason,
	})
	if err != nil {
		t.Fatalf("buildResponse failed: %v", err)
	}

	if updated.Status != models.StatusRejected {
		t.Errorf("expected status rejected, got %q", updated.Status)
	}
	if updated.RejectReason == nil || *updated.RejectReason != reason {
		t.Errorf("expected reject reason to be persisted")
	}
	if notification.Type != models.NotificationSessionRejected {
		t.Errorf("expected type session_rejected, got %q", notification.Type)
	}
	if notification.UserID != *session.MenteeID {
		t.Errorf("notification must target the mentee")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(notification.Data, &data); err != nil {
		t.Fatalf("failed to parse notification data: %v", err)
	}
	if data["rejectReason"] != reason {
		t.Errorf("expected rejectReason %q in payload, got %v", reason, data["rejectReason"])
	}
	if data["mentorName"] != "John Mentor" {
		t.Errorf("expected mentorName in payload, got %v", data["mentorName"])
	}
}

func TestBuildResponse_ApproveNoScheduleChange(t *testing.T) {
	session := pendingSession(t)

	updated, notification, err := buildResponse(session, models.RespondRequest{Action: ActionApprove})
	if err != nil {
		t.Fatalf("buildResponse failed: %v", err)
	}

	if updated.Status != models.StatusUpcoming {
		t.Errorf("expected status upcoming, got %q", updated.Status)
	}
	if !updated.Schedule.Equal(session.Schedule) {
		t.Errorf("schedule must be untouched on plain approval")
	}
	if notification.Type != models.NotificationSessionApproved {
		t.Errorf("expected type session_approved, got %q", notification.Type)
	}
}

func TestBuildResponse_ApproveSameSchedule(t *testing.T) {
	session := pendingSession(t)
	same := session.Schedule

	_, notification, err := buildResponse(session, models.RespondRequest{
		Action:   ActionApprove,
		Schedule: &same,
	})
	if err != nil {
		t.Fatalf("buildResponse failed: %v", err)
	}

	// An identical schedule is a plain approval, not a reschedule.
	if notification.Type != models.NotificationSessionApproved {
		t.Errorf("expected type session_approved, got %q", notification.Type)
	}
}

func TestBuildResponse_ApproveReschedule(t *testing.T) {
	session := pendingSession(t)
	newSchedule := session.Schedule.Add(48 * time.Hour)
	zoom := "https://zoom.example/j/123"

	updated, notification, err := buildResponse(session, models.RespondRequest{
		Action:   ActionApprove,
		Schedule: &newSchedule,
		ZoomLink: &zoom,
	})
	if err != nil {
		t.Fatalf("buildResponse failed: %v", err)
	}

	if updated.Status != models.StatusUpcoming {
		t.Errorf("expected status upcoming, got %q", updated.Status)
	}
	if !updated.Schedule.Equal(newSchedule) {
		t.Errorf("expected schedule to be overwritten")
	}
	if updated.ZoomLink == nil || *updated.ZoomLink != zoom {
		t.Errorf("expected zoom link to be updated")
	}
	if notification.Type != models.NotificationSessionRescheduled {
		t.Errorf("expected type session_rescheduled, got %q", notification.Type)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(notification.Data, &data); err != nil {
		t.Fatalf("failed to parse notification data: %v", err)
	}
	if _, ok := data["originalSchedule"]; !ok {
		t.Errorf("reschedule payload must carry the original schedule")
	}
	if _, ok := data["newSchedule"]; !ok {
		t.Errorf("reschedule payload must carry the new schedule")
	}
}

func TestNotificationTypeFor(t *testing.T) {
	session := pendingSession(t)
	moved := session.Schedule.Add(time.Hour)
	same := session.Schedule

	tests := []struct {
		name string
		req  models.RespondRequest
		want string
	}{
		{"reject", models.RespondRequest{Action: ActionReject}, models.NotificationSessionRejected},
		{"approve", models.RespondRequest{Action: ActionApprove}, models.NotificationSessionApproved},
		{"approve same schedule", models.RespondRequest{Action: ActionApprove, Schedule: &same}, models.NotificationSessionApproved},
		{"approve new schedule", models.RespondRequest{Action: ActionApprove, Schedule: &moved}, models.NotificationSessionRescheduled},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := notificationTypeFor(session, tc.req); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClaimOutcome(t *testing.T) {
	if err := claimOutcome(true, true); err != nil {
		t.Errorf("successful claim must not error, got %v", err)
	}

	err := claimOutcome(false, false)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("lost claim on a missing session: got %T, want *NotFoundError", err)
	}

	err = claimOutcome(false, true)
	if _, ok := err.(*ConflictError); !ok {
		t.Errorf("lost claim on an existing session: got %T, want *ConflictError", err)
	}
}

// The validation paths below all fail before any repository access, so a
// zero-value service is enough to exercise them.

func TestCreateValidation(t *testing.T) {
	svc := NewSessionService(nil, nil, nil, nil, nil)

	tests := []struct {
		name       string
		req        models.CreateSessionRequest
		wantFields []string
	}{
		{"missing everything", models.CreateSessionRequest{}, []string{"topic", "schedule"}},
		{"missing schedule", models.CreateSessionRequest{Topic: "Intro to Go"}, []string{"schedule"}},
		{"missing topic", models.CreateSessionRequest{Schedule: time.Now()}, []string{"topic"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tc.req)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("got %T, want *ValidationError", err)
			}
			for _, field := range tc.wantFields {
				if verr.Fields[field] == "" {
					t.Errorf("expected a field error for %q, got %v", field, verr.Fields)
				}
			}
		})
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewSessionService(nil, nil, nil, nil, nil)

	_, err := svc.CreateRequest(context.Background(), uuid.New(), models.SessionRequestInput{})
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("got %T, want *ValidationError", err)
	}
	for _, field := range []string{"mentor_id", "topic", "schedule"} {
		if verr.Fields[field] == "" {
			t.Errorf("expected a field error for %q, got %v", field, verr.Fields)
		}
	}
}

func TestRespondUnknownAction(t *testing.T) {
	svc := NewSessionService(nil, nil, nil, nil, nil)

	for _, action := range []string{"", "maybe", "APPROVE"} {
		err := svc.Respond(context.Background(), uuid.New(), uuid.New(), models.RespondRequest{Action: action})
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("action %q: got %T, want *ValidationError", action, err)
		}
		if verr.Fields["action"] == "" {
			t.Errorf("action %q: expected a field error for action", action)
		}
	}
}
