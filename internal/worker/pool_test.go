package worker

import (
	"testing"

	"mentorconnect-backend/internal/models"
)

func TestRequeueSkippedAfterStop(t *testing.T) {
	// The nil redis client means any attempted LPush would panic, which
	// is exactly what must not happen once the pool is stopped.
	p := NewPool(nil, nil, 1)
	p.Stop()

	p.requeue(models.EmailJob{
		Type:    models.NotificationSessionApproved,
		To:      "mentee@example.com",
		Retries: 1,
	})
}
