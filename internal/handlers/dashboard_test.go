package handlers

import (
	"testing"
	"time"

	"mentorconnect-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestCompletedSessions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{Status: models.StatusCompleted, Schedule: now.Add(-48 * time.Hour)},
		// Stale upcoming row well past its schedule still counts.
		{Status: models.StatusUpcoming, Schedule: now.Add(-5 * time.Hour)},
		{Status: models.StatusUpcoming, Schedule: now.Add(5 * time.Hour)},
		{Status: models.StatusRejected, Schedule: now.Add(-48 * time.Hour)},
		{Status: models.StatusOpen, Schedule: now.Add(-48 * time.Hour)},
	}

	completed := completedSessions(sessions, now)
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed sessions, got %d", len(completed))
	}
}

func TestNearestUpcoming(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{Topic: "past", Status: models.StatusUpcoming, Schedule: now.Add(-5 * time.Hour)},
		{Topic: "soon", Status: models.StatusUpcoming, Schedule: now.Add(1 * time.Hour)},
		{Topic: "tomorrow", Status: models.StatusUpcoming, Schedule: now.Add(24 * time.Hour)},
		{Topic: "next week", Status: models.StatusUpcoming, Schedule: now.Add(7 * 24 * time.Hour)},
		{Topic: "pending", Status: models.StatusPending, Schedule: now.Add(2 * time.Hour)},
	}

	got := nearestUpcoming(sessions, now, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming sessions, got %d", len(got))
	}
	if got[0].Topic != "soon" || got[1].Topic != "tomorrow" {
		t.Errorf("unexpected order: %q, %q", got[0].Topic, got[1].Topic)
	}

	all := nearestUpcoming(sessions, now, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 upcoming sessions without a cap, got %d", len(all))
	}
}

func TestLearningHours(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := []models.Session{
		{Schedule: start, EndSchedule: timePtr(start.Add(90 * time.Minute))},
		{Schedule: start},
		// End before start falls back to the default length.
		{Schedule: start, EndSchedule: timePtr(start.Add(-time.Hour))},
	}

	if got := learningHours(completed); got != 5.5 {
		t.Errorf("learningHours = %v, want 5.5", got)
	}
}

func TestSkillsAcquired(t *testing.T) {
	completed := []models.Session{
		{SkillsToLearn: strPtr("Go, SQL")},
		{SkillsToLearn: strPtr("sql, Docker")},
		{SkillsToLearn: nil},
	}

	// Skill names are case sensitive, so "SQL" and "sql" count separately.
	if got := skillsAcquired(completed); got != 4 {
		t.Errorf("skillsAcquired = %d, want 4", got)
	}
}
