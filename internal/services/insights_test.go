package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartpulse-backend/internal/models"
)

func TestSplitHours(t *testing.T) {
	cases := []struct {
		hours   float64
		h, m    int
	}{
		{0, 0, 0},
		{1.5, 1, 30},
		{7.25, 7, 15},
		{0.99, 0, 59},
		{2.0, 2, 0},
	}
	for _, c := range cases {
		parts := splitHours(c.hours)
		if parts.Hours != c.h || parts.Minutes != c.m {
			t.Fatalf("splitHours(%v): expected %d:%02d, got %d:%02d",
				c.hours, c.h, c.m, parts.Hours, parts.Minutes)
		}
	}
}

type stubUserLister struct {
	users []*models.User
}

func (s *stubUserLister) ListByCompany(context.Context, uuid.UUID) ([]*models.User, error) {
	return s.users, nil
}

func TestReports_OneRowPerMember(t *testing.T) {
	alice := &models.User{ID: uuid.New(), FullName: "Alice"}
	bob := &models.User{ID: uuid.New(), FullName: "Bob"}

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	src := &perUserSource{sessions: map[uuid.UUID][]models.WorkSession{
		alice.ID: {{
			UserID: alice.ID, StartTime: start, EndTime: &end,
			Productive: 90, Unproductive: 10,
		}},
	}}

	svc := NewInsightsService(&stubUserLister{users: []*models.User{alice, bob}}, src)
	reports, err := svc.Reports(context.Background(), uuid.New(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected a row per member, got %d", len(reports))
	}
	if reports[0].Name != "Alice" || reports[0].Productivity != 90 {
		t.Fatalf("expected Alice at 90, got %+v", reports[0])
	}
	if reports[0].TimeWorked.Hours != 2 || reports[0].TimeWorked.Minutes != 0 {
		t.Fatalf("expected 2:00 worked, got %+v", reports[0].TimeWorked)
	}
	if reports[1].Productivity != 0 || reports[1].TimeWorked.Hours != 0 {
		t.Fatalf("expected idle member to report zeros, got %+v", reports[1])
	}
}

type perUserSource struct {
	sessions map[uuid.UUID][]models.WorkSession
}

func (s *perUserSource) ListSince(_ context.Context, userID uuid.UUID, _ time.Time) ([]models.WorkSession, error) {
	return s.sessions[userID], nil
}
