package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the session-request transition handler.
const (
	NotificationSessionApproved    = "session_approved"
	NotificationSessionRejected    = "session_rejected"
	NotificationSessionRescheduled = "session_rescheduled"
)

type Notification struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	SessionID    uuid.UUID       `json:"session_id"`
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	ReadStatus   bool            `json:"read_status"`
	Dismissed    bool            `json:"dismissed"`
	CreatedAt    time.Time       `json:"created_at"`
	SessionTopic *string         `json:"session_topic,omitempty"`
}

type NotificationCount struct {
	Total       int `json:"total"`
	Unread      int `json:"unread"`
	Rejected    int `json:"rejected"`
	Approved    int `json:"approved"`
	Rescheduled int `json:"rescheduled"`
}

// WSMessage is the envelope pushed to a user's open websocket connections.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// QueueNotificationEmails is the redis list the email workers consume.
const QueueNotificationEmails = "queue:notification-emails"

// EmailJob is a queued request to send one notification email.
type EmailJob struct {
	Type         string    `json:"type"`
	To           string    `json:"to"`
	MenteeName   string    `json:"mentee_name"`
	MentorName   string    `json:"mentor_name"`
	Topic        string    `json:"topic"`
	Schedule     time.Time `json:"schedule"`
	RejectReason string    `json:"reject_reason,omitempty"`
	Retries      int       `json:"retries,omitempty"`
}
