package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"smartpulse-backend/internal/models"
)

// SessionSource is the slice of the session store the aggregator
// needs: all of a user's sessions starting at or after a cutoff.
type SessionSource interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.WorkSession, error)
}

// StressTips is the fixed set a stress-insights response picks its tip
// from. Selection is delegated to an injected index function so tests
// can pin a specific tip.
var StressTips = []string{
	"Take a 5-minute break every hour to reduce stress.",
	"Try the 20-20-20 rule: every 20 minutes, look at something 20 feet away for 20 seconds.",
	"Batch similar tasks together to cut down on app switching.",
	"Step away from your desk for lunch. A change of scenery lowers stress.",
	"Close tabs and apps you are not actively using.",
	"A short walk between long work blocks helps you reset.",
}

type StatsService struct {
	sessions SessionSource
	tipIndex func(n int) int
}

// NewStatsService builds the aggregator over a session source.
// tipIndex maps a set size to a chosen index; pass rand.IntN for
// production behavior.
func NewStatsService(sessions SessionSource, tipIndex func(n int) int) *StatsService {
	return &StatsService{sessions: sessions, tipIndex: tipIndex}
}

// PeriodStart converts a dashboard period token into the window-start
// cutoff. "day" keeps the current instant, "week" subtracts exactly 7
// days, "month" subtracts one calendar month (AddDate normalization
// applies at month-end dates, e.g. Mar 31 minus 1 month rolls past Feb).
func PeriodStart(now time.Time, period string) (time.Time, error) {
	switch period {
	case "day", "":
		return now, nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

func (s *StatsService) UserStats(ctx context.Context, userID uuid.UUID, since time.Time) (*models.ProductivityStats, error) {
	sessions, err := s.sessions.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return BuildProductivityStats(sessions), nil
}

func (s *StatsService) UserStress(ctx context.Context, userID uuid.UUID, since time.Time) (*models.StressInsights, error) {
	sessions, err := s.sessions.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return BuildStressInsights(sessions, s.tipIndex), nil
}

func (s *StatsService) UserWorkSummary(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.WorkSummaryDay, error) {
	sessions, err := s.sessions.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return BuildWorkSummary(sessions), nil
}

// BuildProductivityStats pools the three activity counters across all
// sessions, sums hours worked and idle time, ranks app and website
// usage, and groups a per-day activity history. It is a total function:
// an empty input yields zeros and empty slices, never an error.
func BuildProductivityStats(sessions []models.WorkSession) *models.ProductivityStats {
	var productive, unproductive, undefined float64
	var hoursWorked, idleMinutes float64

	for _, s := range sessions {
		productive += s.Productive
		unproductive += s.Unproductive
		undefined += s.Undefined
		hoursWorked += sessionHours(s)
		idleMinutes += s.IdleTime
	}

	// Denominator floors at 1 so an all-zero window reports 0%
	// instead of dividing by zero.
	total := productive + unproductive + undefined
	if total == 0 {
		total = 1
	}

	return &models.ProductivityStats{
		Productivity: models.ProductivityBreakdown{
			Productive:   round1(productive / total * 100),
			Unproductive: round1(unproductive / total * 100),
			Undefined:    round1(undefined / total * 100),
		},
		HoursWorked:     round2(hoursWorked),
		IdleTime:        round2(idleMinutes / 60),
		TopApps:         topUsage(sessions, func(s models.WorkSession) []models.AppUsage { return s.AppsUsed }),
		TopWebsites:     topUsage(sessions, func(s models.WorkSession) []models.AppUsage { return s.WebsitesUsed }),
		ActivityHistory: activityHistory(sessions),
	}
}

// BuildStressInsights derives the stress heuristic from work duration
// and app-switch frequency. The score is a UI signal, not a validated
// model.
func BuildStressInsights(sessions []models.WorkSession, tipIndex func(n int) int) *models.StressInsights {
	var hoursWorked, idleMinutes float64
	var switches float64

	history := make([]models.StressPoint, 0, len(sessions))
	for _, s := range sessions {
		hoursWorked += sessionHours(s)
		idleMinutes += s.IdleTime
		switches += float64(s.AppSwitches)

		// Per-session point estimate; intentionally finer-grained
		// than the per-day activity history.
		point := float64(s.AppSwitches) * 0.5
		if s.Productive > 80 {
			point += 10
		}
		history = append(history, models.StressPoint{
			Date:        dateKey(s),
			StressLevel: round1(clamp(point, 0, 100)),
		})
	}

	switchDenom := hoursWorked
	if switchDenom < 1 {
		switchDenom = 1
	}
	switchRate := switches / switchDenom

	stress := 0.0
	if hoursWorked > 3 {
		stress += (hoursWorked - 3) * 20
	}
	stress += switchRate * 0.5

	tip := ""
	if len(StressTips) > 0 {
		tip = StressTips[tipIndex(len(StressTips))]
	}

	return &models.StressInsights{
		StressLevel:   math.Round(clamp(stress, 0, 100)),
		WorkDuration:  round2(hoursWorked),
		AppSwitches:   round1(switchRate),
		BreakTime:     round2(idleMinutes / 60),
		StressHistory: history,
		Tip:           tip,
	}
}

// BuildWorkSummary groups sessions by UTC calendar date. A day's
// productivity is the arithmetic mean of each session's own
// productivity percentage, rounded to an integer, not a pooled
// recomputation from summed counters, which is what the top-level
// breakdown does. The dashboard was built against this behavior.
func BuildWorkSummary(sessions []models.WorkSession) []models.WorkSummaryDay {
	type bucket struct {
		hours float64
		pcts  []float64
	}
	buckets := make(map[string]*bucket)

	for _, s := range sessions {
		key := dateKey(s)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.hours += sessionHours(s)
		b.pcts = append(b.pcts, SessionProductivityPercent(s))
	}

	days := make([]models.WorkSummaryDay, 0, len(buckets))
	for date, b := range buckets {
		mean := 0.0
		if len(b.pcts) > 0 {
			for _, p := range b.pcts {
				mean += p
			}
			mean /= float64(len(b.pcts))
		}
		days = append(days, models.WorkSummaryDay{
			Date:         date,
			Hours:        round2(b.hours),
			Productivity: int(math.Round(mean)),
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// SessionProductivityPercent is a single session's productive share of
// its own counters, with the same floor-1 denominator rule.
func SessionProductivityPercent(s models.WorkSession) float64 {
	total := s.Productive + s.Unproductive + s.Undefined
	if total == 0 {
		total = 1
	}
	return s.Productive / total * 100
}

// sessionHours is the session's duration in hours. An open session
// (no end time) contributes zero. End-before-start subtractions
// propagate negative, matching the store's raw arithmetic.
func sessionHours(s models.WorkSession) float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Hours()
}

// dateKey truncates a session's start instant to its UTC calendar date.
func dateKey(s models.WorkSession) string {
	return s.StartTime.UTC().Format("2006-01-02")
}

func topUsage(sessions []models.WorkSession, usage func(models.WorkSession) []models.AppUsage) []models.UsageEntry {
	totals := make(map[string]float64)
	var grandTotal float64
	for _, s := range sessions {
		for _, u := range usage(s) {
			totals[u.Name] += u.Duration
			grandTotal += u.Duration
		}
	}
	if grandTotal == 0 {
		grandTotal = 1
	}

	entries := make([]models.UsageEntry, 0, len(totals))
	for name, duration := range totals {
		entries = append(entries, models.UsageEntry{
			Name:       name,
			Percentage: round1(duration / grandTotal * 100),
		})
	}

	// Ties keep whatever order map iteration produced; the ranking
	// only promises descending percentages.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Percentage > entries[j].Percentage })
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}

func activityHistory(sessions []models.WorkSession) []models.ActivityDay {
	type counters struct {
		productive, unproductive, undefined float64
	}
	byDate := make(map[string]*counters)

	for _, s := range sessions {
		key := dateKey(s)
		c := byDate[key]
		if c == nil {
			c = &counters{}
			byDate[key] = c
		}
		c.productive += s.Productive
		c.unproductive += s.Unproductive
		c.undefined += s.Undefined
	}

	history := make([]models.ActivityDay, 0, len(byDate))
	for date, c := range byDate {
		total := c.productive + c.unproductive + c.undefined
		if total == 0 {
			total = 1
		}
		history = append(history, models.ActivityDay{
			Date:         date,
			Productive:   round1(c.productive / total * 100),
			Unproductive: round1(c.unproductive / total * 100),
			Undefined:    round1(c.undefined / total * 100),
		})
	}

	// ISO dates sort lexicographically in chronological order.
	sort.Slice(history, func(i, j int) bool { return history[i].Date < history[j].Date })
	return history
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
