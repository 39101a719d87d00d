package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartpulse-backend/internal/models"
)

func sessionAt(start time.Time, hours float64, productive, unproductive, undefined float64) models.WorkSession {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return models.WorkSession{
		ID:           uuid.New(),
		StartTime:    start,
		EndTime:      &end,
		Productive:   productive,
		Unproductive: unproductive,
		Undefined:    undefined,
	}
}

func TestBuildProductivityStats_PooledRatios(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// 30m at 90/5/5 and 30m at 70/15/15 pooled: 160/20/20 over 200.
	a := sessionAt(start, 0.5, 90, 5, 5)
	b := sessionAt(start.Add(time.Hour), 0.5, 70, 15, 15)

	stats := BuildProductivityStats([]models.WorkSession{a, b})

	if stats.Productivity.Productive != 80.0 {
		t.Fatalf("expected pooled productive 80.0, got %v", stats.Productivity.Productive)
	}
	if stats.Productivity.Unproductive != 10.0 || stats.Productivity.Undefined != 10.0 {
		t.Fatalf("expected 10.0/10.0 split, got %v/%v",
			stats.Productivity.Unproductive, stats.Productivity.Undefined)
	}
	if stats.HoursWorked != 1.00 {
		t.Fatalf("expected 1.00 hours worked, got %v", stats.HoursWorked)
	}
}

func TestBuildProductivityStats_RatiosSumNear100(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sessions := []models.WorkSession{
		sessionAt(start, 1, 33.3, 33.3, 33.4),
		sessionAt(start.Add(2*time.Hour), 1, 17, 5, 11),
		sessionAt(start.Add(4*time.Hour), 1, 1, 1, 1),
	}

	stats := BuildProductivityStats(sessions)
	sum := stats.Productivity.Productive + stats.Productivity.Unproductive + stats.Productivity.Undefined
	if math.Abs(sum-100) > 0.3 {
		t.Fatalf("expected ratio sum within 0.3 of 100, got %v", sum)
	}
}

func TestBuildProductivityStats_EmptyInput(t *testing.T) {
	stats := BuildProductivityStats(nil)

	if stats.Productivity.Productive != 0 || stats.HoursWorked != 0 || stats.IdleTime != 0 {
		t.Fatalf("expected zeroed stats for empty input, got %+v", stats)
	}
	if stats.TopApps == nil || len(stats.TopApps) != 0 {
		t.Fatalf("expected empty (non-nil) topApps, got %#v", stats.TopApps)
	}
	if stats.ActivityHistory == nil || len(stats.ActivityHistory) != 0 {
		t.Fatalf("expected empty (non-nil) activityHistory, got %#v", stats.ActivityHistory)
	}
}

func TestBuildProductivityStats_AllZeroCountersUseFloorDenominator(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	stats := BuildProductivityStats([]models.WorkSession{sessionAt(start, 1, 0, 0, 0)})

	if stats.Productivity.Productive != 0 || stats.Productivity.Unproductive != 0 || stats.Productivity.Undefined != 0 {
		t.Fatalf("expected 0%% ratios for zero counters, got %+v", stats.Productivity)
	}
	if stats.HoursWorked != 1.00 {
		t.Fatalf("expected duration to survive zero counters, got %v", stats.HoursWorked)
	}
}

func TestBuildProductivityStats_OpenSessionContributesZeroHours(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	open := models.WorkSession{StartTime: start, Productive: 50, Unproductive: 50}

	stats := BuildProductivityStats([]models.WorkSession{open})
	if stats.HoursWorked != 0 {
		t.Fatalf("expected open session to add 0 hours, got %v", stats.HoursWorked)
	}
	if stats.Productivity.Productive != 50.0 {
		t.Fatalf("expected counters to still pool, got %v", stats.Productivity.Productive)
	}
}

func TestBuildProductivityStats_NegativeDurationPropagates(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(-30 * time.Minute)
	bad := models.WorkSession{StartTime: start, EndTime: &end}
	good := sessionAt(start.Add(time.Hour), 1, 0, 0, 0)

	stats := BuildProductivityStats([]models.WorkSession{bad, good})
	if stats.HoursWorked != 0.50 {
		t.Fatalf("expected negative duration to subtract, got %v", stats.HoursWorked)
	}
}

func TestBuildProductivityStats_IdleTimeConvertsToHours(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := sessionAt(start, 1, 10, 0, 0)
	a.IdleTime = 45
	b := sessionAt(start.Add(2*time.Hour), 1, 10, 0, 0)
	b.IdleTime = 30

	stats := BuildProductivityStats([]models.WorkSession{a, b})
	if stats.IdleTime != 1.25 {
		t.Fatalf("expected 75 idle minutes to report as 1.25 hours, got %v", stats.IdleTime)
	}
}

func TestTopUsage_RanksAndTruncatesToFive(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := sessionAt(start, 1, 10, 0, 0)
	s.AppsUsed = []models.AppUsage{
		{Name: "editor", Duration: 50},
		{Name: "browser", Duration: 20},
		{Name: "terminal", Duration: 10},
		{Name: "chat", Duration: 8},
		{Name: "mail", Duration: 7},
		{Name: "music", Duration: 5},
	}

	stats := BuildProductivityStats([]models.WorkSession{s})
	if len(stats.TopApps) != 5 {
		t.Fatalf("expected top list truncated to 5, got %d", len(stats.TopApps))
	}
	if stats.TopApps[0].Name != "editor" || stats.TopApps[0].Percentage != 50.0 {
		t.Fatalf("expected editor at 50.0%% first, got %+v", stats.TopApps[0])
	}
	for i := 1; i < len(stats.TopApps); i++ {
		if stats.TopApps[i].Percentage > stats.TopApps[i-1].Percentage {
			t.Fatalf("expected descending percentages, got %+v", stats.TopApps)
		}
	}
	for _, e := range stats.TopApps {
		if e.Name == "music" {
			t.Fatalf("expected smallest entry to be cut")
		}
	}
}

func TestTopUsage_AccumulatesAcrossSessions(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := sessionAt(start, 1, 10, 0, 0)
	a.WebsitesUsed = []models.AppUsage{{Name: "docs", Duration: 30}}
	b := sessionAt(start.Add(2*time.Hour), 1, 10, 0, 0)
	b.WebsitesUsed = []models.AppUsage{{Name: "docs", Duration: 30}, {Name: "news", Duration: 40}}

	stats := BuildProductivityStats([]models.WorkSession{a, b})
	if len(stats.TopWebsites) != 2 {
		t.Fatalf("expected 2 websites, got %d", len(stats.TopWebsites))
	}
	if stats.TopWebsites[0].Name != "docs" || stats.TopWebsites[0].Percentage != 60.0 {
		t.Fatalf("expected docs pooled to 60.0%%, got %+v", stats.TopWebsites[0])
	}
}

func TestActivityHistory_GroupsByUTCDateAscending(t *testing.T) {
	// 23:30 UTC-adjacent instants land on different UTC dates.
	d1 := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 3, 0, 30, 0, 0, time.UTC)

	stats := BuildProductivityStats([]models.WorkSession{
		sessionAt(d2, 1, 40, 60, 0),
		sessionAt(d1, 1, 90, 10, 0),
	})

	if len(stats.ActivityHistory) != 2 {
		t.Fatalf("expected 2 activity days, got %d", len(stats.ActivityHistory))
	}
	if stats.ActivityHistory[0].Date != "2026-03-02" || stats.ActivityHistory[1].Date != "2026-03-03" {
		t.Fatalf("expected ascending dates, got %+v", stats.ActivityHistory)
	}
	if stats.ActivityHistory[0].Productive != 90.0 {
		t.Fatalf("expected per-day pooled ratio 90.0, got %v", stats.ActivityHistory[0].Productive)
	}
}

func pinnedTip(int) int { return 2 }

func TestBuildStressInsights_HeuristicAndClamp(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// 5 hours and 40 switches: (5-3)*20 + (40/5)*0.5 = 44.
	s := sessionAt(start, 5, 10, 0, 0)
	s.AppSwitches = 40

	insights := BuildStressInsights([]models.WorkSession{s}, pinnedTip)
	if insights.StressLevel != 44 {
		t.Fatalf("expected stress level 44, got %v", insights.StressLevel)
	}
	if insights.WorkDuration != 5.00 {
		t.Fatalf("expected 5.00 work duration, got %v", insights.WorkDuration)
	}
	if insights.AppSwitches != 8.0 {
		t.Fatalf("expected switch rate 8.0, got %v", insights.AppSwitches)
	}
	if insights.Tip != StressTips[2] {
		t.Fatalf("expected pinned tip, got %q", insights.Tip)
	}
}

func TestBuildStressInsights_ShortDayNoDurationTerm(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Under 3 hours the duration term is zero; floor-1 rate denominator.
	s := sessionAt(start, 0.5, 10, 0, 0)
	s.AppSwitches = 10

	insights := BuildStressInsights([]models.WorkSession{s}, pinnedTip)
	if insights.StressLevel != 5 {
		t.Fatalf("expected 10 switches over floored hour to score 5, got %v", insights.StressLevel)
	}
}

func TestBuildStressInsights_ClampsToHundred(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := sessionAt(start, 12, 10, 0, 0)
	s.AppSwitches = 2000

	insights := BuildStressInsights([]models.WorkSession{s}, pinnedTip)
	if insights.StressLevel != 100 {
		t.Fatalf("expected stress clamped to 100, got %v", insights.StressLevel)
	}
}

func TestBuildStressInsights_PerSessionHistory(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	high := sessionAt(start, 1, 90, 5, 5) // 90% productive adds the +10 bump
	high.AppSwitches = 6
	low := sessionAt(start.Add(2*time.Hour), 1, 20, 40, 40)
	low.AppSwitches = 4

	insights := BuildStressInsights([]models.WorkSession{high, low}, pinnedTip)
	if len(insights.StressHistory) != 2 {
		t.Fatalf("expected one point per session, got %d", len(insights.StressHistory))
	}
	if insights.StressHistory[0].StressLevel != 13.0 {
		t.Fatalf("expected 6*0.5+10 = 13.0, got %v", insights.StressHistory[0].StressLevel)
	}
	if insights.StressHistory[1].StressLevel != 2.0 {
		t.Fatalf("expected 4*0.5 = 2.0, got %v", insights.StressHistory[1].StressLevel)
	}
}

func TestBuildStressInsights_EmptyInput(t *testing.T) {
	insights := BuildStressInsights(nil, pinnedTip)
	if insights.StressLevel != 0 || insights.WorkDuration != 0 {
		t.Fatalf("expected zeroed insights, got %+v", insights)
	}
	if insights.StressHistory == nil || len(insights.StressHistory) != 0 {
		t.Fatalf("expected empty (non-nil) history, got %#v", insights.StressHistory)
	}
	if insights.Tip != StressTips[2] {
		t.Fatalf("expected a tip even with no sessions, got %q", insights.Tip)
	}
}

func TestBuildWorkSummary_MeanOfSessionPercentages(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Per-session percentages 100 and 50; the day reports their mean 75,
	// not the pooled value of the summed counters.
	a := sessionAt(start, 2, 10, 0, 0)
	b := sessionAt(start.Add(3*time.Hour), 1, 50, 50, 0)

	days := BuildWorkSummary([]models.WorkSession{a, b})
	if len(days) != 1 {
		t.Fatalf("expected single day, got %d", len(days))
	}
	if days[0].Productivity != 75 {
		t.Fatalf("expected mean productivity 75, got %d", days[0].Productivity)
	}
	if days[0].Hours != 3.00 {
		t.Fatalf("expected 3.00 summed hours, got %v", days[0].Hours)
	}
	if days[0].Date != "2026-03-02" {
		t.Fatalf("expected ISO date key, got %q", days[0].Date)
	}
}

func TestBuildWorkSummary_SortsDaysAscending(t *testing.T) {
	days := BuildWorkSummary([]models.WorkSession{
		sessionAt(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), 1, 10, 0, 0),
		sessionAt(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 1, 10, 0, 0),
		sessionAt(time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), 1, 10, 0, 0),
	})
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			t.Fatalf("expected ascending dates, got %+v", days)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	day, err := PeriodStart(now, "day")
	if err != nil || !day.Equal(now) {
		t.Fatalf("expected day window to start now, got %v %v", day, err)
	}

	week, err := PeriodStart(now, "week")
	if err != nil || !week.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("expected week window 7 days back, got %v %v", week, err)
	}

	// AddDate normalizes Feb 31 forward to Mar 3.
	month, err := PeriodStart(now, "month")
	if err != nil || !month.Equal(time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected month-end normalization to Mar 3, got %v %v", month, err)
	}

	if _, err := PeriodStart(now, "year"); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

type stubSessionSource struct {
	sessions []models.WorkSession
	err      error
	gotUser  uuid.UUID
	gotSince time.Time
}

func (s *stubSessionSource) ListSince(_ context.Context, userID uuid.UUID, since time.Time) ([]models.WorkSession, error) {
	s.gotUser = userID
	s.gotSince = since
	return s.sessions, s.err
}

func TestStatsService_PassesWindowToSource(t *testing.T) {
	src := &stubSessionSource{}
	svc := NewStatsService(src, pinnedTip)

	userID := uuid.New()
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.UserStats(context.Background(), userID, since); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.gotUser != userID || !src.gotSince.Equal(since) {
		t.Fatalf("expected source queried with user and cutoff, got %v %v", src.gotUser, src.gotSince)
	}
}
