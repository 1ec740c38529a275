package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"mentorconnect-backend/internal/models"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "Go, SQL, Docker", []string{"Go", "SQL", "Docker"}},
		{"duplicates collapse", "A, B, A", []string{"A", "B"}},
		{"whitespace trimmed", "  Go ,  SQL  ", []string{"Go", "SQL"}},
		{"empties dropped", "Go,,  ,SQL", []string{"Go", "SQL"}},
		{"empty string", "", []string{}},
		{"only separators", ", , ,", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSkills(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseSkills(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

// Rating and session checks run before any repository access, so a
// zero-value service is enough to exercise them.
func TestSubmitValidation(t *testing.T) {
	svc := NewFeedbackService(nil, nil, nil)

	tests := []struct {
		name      string
		req       models.SubmitFeedbackRequest
		wantField string
	}{
		{"missing session", models.SubmitFeedbackRequest{Rating: 4}, "session_id"},
		{"rating zero", models.SubmitFeedbackRequest{SessionID: uuid.New()}, "rating"},
		{"rating too low", models.SubmitFeedbackRequest{SessionID: uuid.New(), Rating: -1}, "rating"},
		{"rating too high", models.SubmitFeedbackRequest{SessionID: uuid.New(), Rating: 6}, "rating"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), uuid.New(), tc.req)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("got %T, want *ValidationError", err)
			}
			if verr.Fields[tc.wantField] == "" {
				t.Errorf("expected a field error for %q, got %v", tc.wantField, verr.Fields)
			}
		})
	}
}
