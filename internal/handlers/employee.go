package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
)

type employeeProjectStore interface {
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.ProjectAssignment, error)
	Complete(ctx context.Context, id uuid.UUID, githubLink string) error
}

// EmployeeHandler serves the employee dashboard: personal stats,
// stress insights, the per-day work summary, settings and assigned
// projects.
type EmployeeHandler struct {
	stats     statsProvider
	users     settingsStore
	companies companyGetter
	projects  employeeProjectStore
}

func NewEmployeeHandler(stats statsProvider, users settingsStore, companies companyGetter, projects employeeProjectStore) *EmployeeHandler {
	return &EmployeeHandler{
		stats:     stats,
		users:     users,
		companies: companies,
		projects:  projects,
	}
}

func (h *EmployeeHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

func (h *EmployeeHandler) Stress(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "period must be day, week, or month", r))
		return
	}

	stress, err := h.stats.UserStress(r.Context(), middleware.GetUserID(r.Context()), since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch stress insights", r))
		return
	}

	writeJSON(w, http.StatusOK, stress)
}

func (h *EmployeeHandler) WorkSummary(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "period must be day, week, or month", r))
		return
	}

	summary, err := h.stats.UserWorkSummary(r.Context(), middleware.GetUserID(r.Context()), since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch work summary", r))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *EmployeeHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch settings", r))
		return
	}

	settings, err := h.users.GetSettings(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch settings", r))
		return
	}

	companyName := ""
	if company, err := h.companies.GetByID(ctx, user.CompanyID); err == nil {
		companyName = company.Name
	}

	resp := models.EmployeeSettings{
		FullName:      user.FullName,
		Email:         user.Email,
		Company:       companyName,
		Notifications: settings.Notifications,
	}
	if user.CountryCode != nil {
		resp.CountryCode = *user.CountryCode
	}
	if user.Contact != nil {
		resp.Contact = *user.Contact
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateSettings saves the employee settings page: profile fields on
// the user row plus notification flags folded into the settings blob.
func (h *EmployeeHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req struct {
		FullName      string                       `json:"fullName"`
		Email         string                       `json:"email"`
		CountryCode   string                       `json:"countryCode"`
		Contact       string                       `json:"contact"`
		Notifications *models.NotificationSettings `json:"notifications"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.CountryCode != "" {
		user.CountryCode = &req.CountryCode
	}
	if req.Contact != "" {
		user.Contact = &req.Contact
	}

	if err := h.users.UpdateProfile(ctx, user); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
		return
	}

	if req.Notifications != nil {
		// Overlay the posted flags on the stored notifications so the
		// admin-facing fields in the same blob survive.
		settings, err := h.users.GetSettings(ctx, userID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
			return
		}
		settings.Notifications.DailyReports = req.Notifications.DailyReports
		settings.Notifications.StressAlerts = req.Notifications.StressAlerts

		raw, _ := json.Marshal(map[string]interface{}{"notifications": settings.Notifications})
		if err := h.users.MergeSettings(ctx, userID, raw); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update settings", r))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings updated"})
}

func (h *EmployeeHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListByEmployee(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch projects", r))
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// SubmitProject records the employee's GitHub link and marks the
// assignment completed.
func (h *EmployeeHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	var req struct {
		GithubLink string `json:"githubLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GithubLink == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing GitHub link", r))
		return
	}

	if err := h.projects.Complete(r.Context(), projectID, req.GithubLink); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to submit project", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project submitted"})
}
