package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"smartpulse-backend/internal/models"
)

const reportPollInterval = 1 * time.Hour

// dailyReportRecipients is the slice of the user store the scheduler
// needs: users whose settings opt into daily report emails.
type dailyReportRecipients interface {
	ListWithDailyReports(ctx context.Context) ([]*models.User, error)
}

// ReportScheduler periodically emails a work summary of the last 24
// hours to users who enabled dailyReports in their settings. Redis
// keeps the once-per-day latch so restarts do not re-send.
type ReportScheduler struct {
	users    dailyReportRecipients
	sessions SessionSource
	email    *EmailService
	redis    *redis.Client
	stopChan chan struct{}
}

func NewReportScheduler(users dailyReportRecipients, sessions SessionSource, email *EmailService, redisClient *redis.Client) *ReportScheduler {
	return &ReportScheduler{
		users:    users,
		sessions: sessions,
		email:    email,
		redis:    redisClient,
		stopChan: make(chan struct{}),
	}
}

func (s *ReportScheduler) Start() {
	go s.loop()
	log.Printf("Daily report scheduler started")
}

func (s *ReportScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReportScheduler) loop() {
	// Run on startup as well as by interval.
	s.sendDailyReports(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reportPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.sendDailyReports(context.Background(), now.UTC())
		}
	}
}

func (s *ReportScheduler) sendDailyReports(ctx context.Context, now time.Time) {
	recipients, err := s.users.ListWithDailyReports(ctx)
	if err != nil {
		log.Printf("✗ Daily reports: failed to list recipients: %v", err)
		return
	}

	for _, user := range recipients {
		latch := "daily_report_sent:" + user.ID.String() + ":" + now.Format("2006-01-02")
		ok, err := s.redis.SetNX(ctx, latch, "1", 48*time.Hour).Result()
		if err != nil || !ok {
			continue
		}

		sessions, err := s.sessions.ListSince(ctx, user.ID, now.Add(-24*time.Hour))
		if err != nil {
			log.Printf("✗ Daily reports: failed to load sessions for %s: %v", user.ID, err)
			continue
		}

		if err := s.email.SendDailyReport(user.Email, user.FullName, BuildWorkSummary(sessions)); err != nil {
			// Drop the latch so the next poll retries.
			s.redis.Del(ctx, latch)
		}
	}
}
