package models

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	MenteeID  uuid.UUID `json:"mentee_id"`
	MentorID  uuid.UUID `json:"mentor_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitFeedbackRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
}

// FeedbackEntry is a feedback row joined with the mentee who wrote it,
// used on mentor profiles and dashboards.
type FeedbackEntry struct {
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	MenteeName string    `json:"mentee_name"`
}

// MenteeSkill is a denormalized record of a skill a mentee picked up from
// a completed session, derived from the session's skills_to_learn text.
type MenteeSkill struct {
	ID           uuid.UUID  `json:"id"`
	MenteeID     uuid.UUID  `json:"mentee_id"`
	SkillName    string     `json:"skill_name"`
	SessionID    uuid.UUID  `json:"acquired_from_session_id"`
	AcquiredDate time.Time  `json:"acquired_date"`
	SessionTopic *string    `json:"session_topic,omitempty"`
	SessionDate  *time.Time `json:"session_date,omitempty"`
}
