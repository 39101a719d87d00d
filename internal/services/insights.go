package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"smartpulse-backend/internal/models"
)

// userLister is the part of the user store the company-wide analytics
// need.
type userLister interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error)
}

// InsightsService produces the admin dashboard's team overview and
// reports by running the per-user aggregation over every member of a
// company.
type InsightsService struct {
	users    userLister
	sessions SessionSource
}

func NewInsightsService(users userLister, sessions SessionSource) *InsightsService {
	return &InsightsService{users: users, sessions: sessions}
}

// EmployeeInsights covers today only: the cutoff is midnight UTC of
// the current day.
func (s *InsightsService) EmployeeInsights(ctx context.Context, companyID uuid.UUID) ([]models.EmployeeInsight, error) {
	users, err := s.users.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)

	insights := make([]models.EmployeeInsight, 0, len(users))
	for _, user := range users {
		sessions, err := s.sessions.ListSince(ctx, user.ID, midnight)
		if err != nil {
			return nil, err
		}
		stats := BuildProductivityStats(sessions)

		insights = append(insights, models.EmployeeInsight{
			ID:             user.ID.String(),
			Name:           user.FullName,
			AvatarURL:      user.AvatarURL,
			TimeWorked:     splitHours(stats.HoursWorked),
			Activity:       stats.Productivity,
			ProductiveTime: int(math.Round(stats.Productivity.Productive)),
			IdleTime:       splitHours(stats.IdleTime),
		})
	}
	return insights, nil
}

func (s *InsightsService) Reports(ctx context.Context, companyID uuid.UUID, since time.Time) ([]models.EmployeeReport, error) {
	users, err := s.users.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	reports := make([]models.EmployeeReport, 0, len(users))
	for _, user := range users {
		sessions, err := s.sessions.ListSince(ctx, user.ID, since)
		if err != nil {
			return nil, err
		}
		stats := BuildProductivityStats(sessions)

		reports = append(reports, models.EmployeeReport{
			ID:           user.ID.String(),
			UserID:       user.ID.String(),
			Name:         user.FullName,
			AvatarURL:    user.AvatarURL,
			TimeWorked:   splitHours(stats.HoursWorked),
			Productivity: int(math.Round(stats.Productivity.Productive)),
			IdleTime:     splitHours(stats.IdleTime),
			AppsUsed:     stats.TopApps,
			WebsitesUsed: stats.TopWebsites,
		})
	}
	return reports, nil
}

// splitHours turns fractional hours into the {hours, minutes} shape
// the admin tables render.
func splitHours(hours float64) models.TimeParts {
	whole := math.Floor(hours)
	return models.TimeParts{
		Hours:   int(whole),
		Minutes: int(math.Round((hours - whole) * 60)),
	}
}
