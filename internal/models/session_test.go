package models

import (
	"testing"
	"time"
)

func TestSessionBucket(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   string
		schedule time.Time
		want     string
	}{
		{"completed passes through", StatusCompleted, now.Add(48 * time.Hour), StatusCompleted},
		{"rejected passes through", StatusRejected, now.Add(-48 * time.Hour), StatusRejected},
		{"cancelled passes through", StatusCancelled, now, StatusCancelled},
		{"pending passes through", StatusPending, now.Add(-72 * time.Hour), StatusPending},
		{"open is never auto-completed", StatusOpen, now.Add(-72 * time.Hour), StatusOpen},
		{"open is never ongoing", StatusOpen, now, StatusOpen},
		{"three hours past is completed", StatusUpcoming, now.Add(-3 * time.Hour), StatusCompleted},
		{"one hour past is ongoing", StatusUpcoming, now.Add(-time.Hour), BucketOngoing},
		{"exactly now is ongoing", StatusUpcoming, now, BucketOngoing},
		{"one hour out is ongoing", StatusUpcoming, now.Add(time.Hour), BucketOngoing},
		{"exactly two hours out is ongoing", StatusUpcoming, now.Add(2 * time.Hour), BucketOngoing},
		{"three hours out is upcoming", StatusUpcoming, now.Add(3 * time.Hour), StatusUpcoming},
		{"next week is upcoming", StatusUpcoming, now.Add(7 * 24 * time.Hour), StatusUpcoming},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SessionBucket(tc.status, tc.schedule, now)
			if got != tc.want {
				t.Errorf("SessionBucket(%q, schedule=%v) = %q, want %q", tc.status, tc.schedule, got, tc.want)
			}
		})
	}
}

func TestSessionBucketBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Just inside the past edge of the window.
	if got := SessionBucket(StatusUpcoming, now.Add(-2*time.Hour+time.Second), now); got != BucketOngoing {
		t.Errorf("just inside past edge: got %q, want %q", got, BucketOngoing)
	}
	// Just outside the past edge.
	if got := SessionBucket(StatusUpcoming, now.Add(-2*time.Hour-time.Second), now); got != StatusCompleted {
		t.Errorf("just outside past edge: got %q, want %q", got, StatusCompleted)
	}
	// Just outside the future edge.
	if got := SessionBucket(StatusUpcoming, now.Add(2*time.Hour+time.Second), now); got != StatusUpcoming {
		t.Errorf("just outside future edge: got %q, want %q", got, StatusUpcoming)
	}
}
