package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
	"smartpulse-backend/internal/services"
)

// statsProvider is what the stats endpoints need from the aggregator.
type statsProvider interface {
	UserStats(ctx context.Context, userID uuid.UUID, since time.Time) (*models.ProductivityStats, error)
	UserStress(ctx context.Context, userID uuid.UUID, since time.Time) (*models.StressInsights, error)
	UserWorkSummary(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.WorkSummaryDay, error)
}

type settingsStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (models.UserSettings, error)
	MergeSettings(ctx context.Context, userID uuid.UUID, updates json.RawMessage) error
	UpdateProfile(ctx context.Context, user *models.User) error
}

type alertLister interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Alert, error)
}

type companyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

// UserHandler serves the admin dashboard endpoints: company analytics,
// alerts and the admin settings page.
type UserHandler struct {
	stats     statsProvider
	insights  *services.InsightsService
	users     settingsStore
	alerts    alertLister
	companies companyGetter
}

func NewUserHandler(stats statsProvider, insights *services.InsightsService, users settingsStore, alerts alertLister, companies companyGetter) *UserHandler {
	return &UserHandler{
		stats:     stats,
		insights:  insights,
		users:     users,
		alerts:    alerts,
		companies: companies,
	}
}

// windowStart resolves the period query parameter ("day" when absent)
// into the aggregation cutoff.
func windowStart(r *http.Request) (time.Time, error) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "day"
	}
	return services.PeriodStart(time.Now(), period)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "period must be day, week, or month", r))
		return
	}

	stats, err := h.stats.UserStats(r.Context(), middleware.GetUserID(r.Context()), since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch stats", r))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *UserHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.insights.EmployeeInsights(r.Context(), middleware.GetCompanyID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch insights", r))
		return
	}

	writeJSON(w, http.StatusOK, insights)
}

func (h *UserHandler) Reports(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "period must be day, week, or month", r))
		return
	}

	reports, err := h.insights.Reports(r.Context(), middleware.GetCompanyID(r.Context()), since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch reports", r))
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

func (h *UserHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.ListByCompany(r.Context(), middleware.GetCompanyID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch alerts", r))
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

// GetSettings returns the admin settings page payload: tracking rules,
// notification settings and the company roster.
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	companyID := middleware.GetCompanyID(ctx)

	settings, err := h.users.GetSettings(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch settings", r))
		return
	}

	company, err := h.companies.GetByID(ctx, companyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch settings", r))
		return
	}

	users, err := h.users.ListByCompany(ctx, companyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch settings", r))
		return
	}

	members := make([]models.CompanyMember, 0, len(users))
	for _, u := range users {
		members = append(members, models.CompanyMember{
			ID:        u.ID.String(),
			AvatarURL: u.AvatarURL,
			Name:      u.FullName,
			Email:     u.Email,
			Role:      u.Role,
			Company:   company.Name,
		})
	}

	writeJSON(w, http.StatusOK, models.AdminSettings{
		TrackingRules: settings.TrackingRules,
		Notifications: settings.Notifications,
		Users:         members,
	})
}

// UpdateSettings folds the posted settings document into the stored
// blob. The dashboard saves one page at a time, so partial documents
// are the normal case.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var updates map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	raw, err := json.Marshal(updates)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.users.MergeSettings(r.Context(), userID, raw); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
		return
	}

	settings, err := h.users.GetSettings(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
