package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	RoleID         string     `json:"role_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Role           string     `json:"role"`
	Bio            *string    `json:"bio"`
	Skills         *string    `json:"skills"`
	Interests      *string    `json:"interests"`
	ProfilePicture *string    `json:"profile_picture"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	Bio            *string `json:"bio"`
	Skills         *string `json:"skills"`
	Interests      *string `json:"interests"`
	ProfilePicture *string `json:"profile_picture"`
}

// MentorListing is a mentor row joined with its feedback aggregates,
// as shown in the mentor directory.
type MentorListing struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Bio               *string   `json:"bio"`
	Skills            *string   `json:"skills"`
	ProfilePicture    *string   `json:"profile_picture"`
	AverageRating     float64   `json:"average_rating"`
	FeedbackCount     int       `json:"feedback_count"`
	CompletedSessions int       `json:"completed_sessions"`
	TotalMentees      int       `json:"total_mentees"`
}

// MentorProfile is a single mentor detail page: the listing plus
// its most recent feedback.
type MentorProfile struct {
	MentorListing
	RecentFeedback []FeedbackEntry `json:"recent_feedback"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}
