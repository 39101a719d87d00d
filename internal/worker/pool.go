package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"smartpulse-backend/internal/database"
	"smartpulse-backend/internal/models"
	"smartpulse-backend/internal/repository"
	"smartpulse-backend/internal/services"
)

// AlertJob is the payload the session-ingest handler enqueues for each
// uploaded session.
type AlertJob struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// Pool consumes alert-evaluation jobs: for every ingested work session
// it checks the owner's productivity threshold and records a
// LOW_PRODUCTIVITY alert (plus an optional email) when the session
// falls below it.
type Pool struct {
	redis       *redis.Client
	sessionRepo *repository.SessionRepo
	userRepo    *repository.UserRepo
	alertRepo   *repository.AlertRepo
	email       *services.EmailService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	sessionRepo *repository.SessionRepo,
	userRepo *repository.UserRepo,
	alertRepo *repository.AlertRepo,
	email *services.EmailService,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		alertRepo:   alertRepo,
		email:       email,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d alert worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Alert worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, database.AlertQueueKey).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job AlertJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Alert worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("alert_lock:%s", job.SessionID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		if err := p.evaluate(ctx, job); err != nil {
			log.Printf("Alert worker %d: session %s: %v", id, job.SessionID, err)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) evaluate(ctx context.Context, job AlertJob) error {
	session, err := p.sessionRepo.GetByID(ctx, job.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	settings, err := p.userRepo.GetSettings(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	triggered, productivity := EvaluateSession(session, settings.Notifications.ProductivityThreshold)
	if !triggered {
		return nil
	}

	activity, _ := json.Marshal(map[string]interface{}{
		"sessionId":    session.ID,
		"productivity": productivity,
		"startTime":    session.StartTime,
	})

	alert := &models.Alert{
		UserID:   job.UserID,
		Type:     models.AlertLowProductivity,
		Details:  fmt.Sprintf("Session productivity %.1f%% fell below the %d%% threshold", productivity, settings.Notifications.ProductivityThreshold),
		Activity: activity,
	}
	if err := p.alertRepo.Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	if settings.Notifications.EmailLowProductivity {
		user, err := p.userRepo.GetByID(ctx, job.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user for email: %w", err)
		}
		go p.email.SendLowProductivityAlert(user.Email, user.FullName, productivity, settings.Notifications.ProductivityThreshold)
	}

	return nil
}

// EvaluateSession reports whether the session's own productivity share
// falls below the threshold, along with the computed percentage.
func EvaluateSession(session *models.WorkSession, threshold int) (bool, float64) {
	pct := services.SessionProductivityPercent(*session)
	return pct < float64(threshold), pct
}
