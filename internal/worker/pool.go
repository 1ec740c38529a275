package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/services"
)

// Pool consumes queued notification email jobs. Delivery is best-effort:
// a job is retried with backoff a few times and then dropped, since the
// in-app notification row was already committed before the job was queued.
type Pool struct {
	redis       *redis.Client
	email       *services.EmailService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, email *services.EmailService, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		email:       email,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d email worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Email worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, models.QueueNotificationEmails).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.EmailJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Email worker %d: failed to parse job: %v", id, err)
			continue
		}

		if err := p.email.SendSessionResponseEmail(job); err != nil {
			p.handleFailure(&job, err)
			continue
		}

		log.Printf("Email worker %d: sent %s email to %s", id, job.Type, job.To)
	}
}

func (p *Pool) handleFailure(job *models.EmailJob, err error) {
	job.Retries++

	if job.Retries >= 3 {
		log.Printf("Email to %s failed permanently: %v", job.To, err)
		return
	}

	log.Printf("Email to %s failed (attempt %d): %v, retrying", job.To, job.Retries, err)

	backoff := time.Duration(1<<uint(job.Retries)) * time.Second
	retry := *job
	time.AfterFunc(backoff, func() {
		p.requeue(retry)
	})
}

// requeue puts a failed job back on the queue unless the pool has been
// stopped, so backoff timers firing mid-shutdown don't write to redis.
func (p *Pool) requeue(job models.EmailJob) {
	select {
	case <-p.stopChan:
		return
	default:
	}

	jobBytes, _ := json.Marshal(job)
	p.redis.LPush(context.Background(), models.QueueNotificationEmails, string(jobBytes))
}
