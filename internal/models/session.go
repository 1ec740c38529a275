package models

import (
	"time"

	"github.com/google/uuid"
)

// Stored session statuses. The display bucket shown to users is derived
// from these plus the schedule, see SessionBucket.
const (
	StatusOpen      = "open"
	StatusUpcoming  = "upcoming"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Derived-only bucket: a session within the live window around its schedule.
const BucketOngoing = "ongoing"

type Session struct {
	ID            uuid.UUID  `json:"id"`
	MentorID      uuid.UUID  `json:"mentor_id"`
	MenteeID      *uuid.UUID `json:"mentee_id"`
	Topic         string     `json:"topic"`
	Description   *string    `json:"description"`
	Schedule      time.Time  `json:"schedule"`
	EndSchedule   *time.Time `json:"end_schedule,omitempty"`
	Status        string     `json:"status"`
	SkillsToLearn *string    `json:"skills_to_learn"`
	ZoomLink      *string    `json:"zoom_link"`
	MaterialLink  *string    `json:"material_link"`
	RejectReason  *string    `json:"reject_reason,omitempty"`
	Reminded      bool       `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`

	// Joined fields, populated by list queries.
	MentorName   *string `json:"mentor_name,omitempty"`
	MentorAvatar *string `json:"mentor_avatar,omitempty"`
	MenteeName   *string `json:"mentee_name,omitempty"`
	MenteeAvatar *string `json:"mentee_avatar,omitempty"`

	FeedbackRating  *int       `json:"feedback_rating,omitempty"`
	FeedbackComment *string    `json:"feedback_comment,omitempty"`
	FeedbackDate    *time.Time `json:"feedback_date,omitempty"`
}

// ongoingWindow is how far around the scheduled time a session counts as live.
const ongoingWindow = 2 * time.Hour

// SessionBucket derives the display bucket for a session from its stored
// status and scheduled time. Terminal and not-yet-confirmed statuses pass
// through untouched; everything else is bucketed by distance from now:
// more than two hours past the schedule is completed, within two hours
// either side is ongoing, further out is upcoming.
//
// This is a pure read-side projection. The derived bucket is never written
// back to the sessions table.
func SessionBucket(status string, schedule time.Time, now time.Time) string {
	switch status {
	case StatusCompleted, StatusRejected, StatusCancelled, StatusPending, StatusOpen:
		return status
	}

	diff := schedule.Sub(now)
	switch {
	case diff < -ongoingWindow:
		return StatusCompleted
	case diff <= ongoingWindow:
		return BucketOngoing
	default:
		return StatusUpcoming
	}
}

type CreateSessionRequest struct {
	MenteeID      *uuid.UUID `json:"mentee_id"`
	Topic         string     `json:"topic"`
	Description   *string    `json:"description"`
	Schedule      time.Time  `json:"schedule"`
	EndSchedule   *time.Time `json:"end_schedule"`
	SkillsToLearn *string    `json:"skills_to_learn"`
	ZoomLink      *string    `json:"zoom_link"`
	MaterialLink  *string    `json:"material_link"`
}

type SessionRequestInput struct {
	MentorID      uuid.UUID  `json:"mentor_id"`
	Topic         string     `json:"topic"`
	Description   *string    `json:"description"`
	Schedule      time.Time  `json:"schedule"`
	SkillsToLearn *string    `json:"skills_to_learn"`
	Message       *string    `json:"message"`
}

type RespondRequest struct {
	Action       string     `json:"action"`
	Schedule     *time.Time `json:"schedule"`
	RejectReason *string    `json:"reject_reason"`
	ZoomLink     *string    `json:"zoom_link"`
	MaterialLink *string    `json:"material_link"`
}

// Program is an open session presented to mentees as a joinable slot.
type Program struct {
	Session
	MentorExpertise *string `json:"mentor_expertise"`
	MentorBio       *string `json:"mentor_bio"`
	IsAvailable     bool    `json:"is_available"`
	TotalSlots      int     `json:"total_slots"`
	AvailableSlots  int     `json:"available_slots"`
}
