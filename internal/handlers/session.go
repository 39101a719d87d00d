package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"smartpulse-backend/internal/database"
	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
)

type sessionWriter interface {
	Create(ctx context.Context, s *models.WorkSession) error
}

// SessionHandler ingests tracked work sessions from the desktop agent
// and queues each one for alert evaluation.
type SessionHandler struct {
	sessions sessionWriter
	redis    *redis.Client
}

func NewSessionHandler(sessions sessionWriter, redisClient *redis.Client) *SessionHandler {
	return &SessionHandler{sessions: sessions, redis: redisClient}
}

func (h *SessionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		StartTime    time.Time         `json:"startTime"`
		EndTime      *time.Time        `json:"endTime"`
		Productive   float64           `json:"productive"`
		Unproductive float64           `json:"unproductive"`
		Undefined    float64           `json:"undefined"`
		IdleTime     float64           `json:"idleTime"`
		AppSwitches  int               `json:"appSwitches"`
		AppsUsed     []models.AppUsage `json:"appsUsed"`
		WebsitesUsed []models.AppUsage `json:"websitesUsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.StartTime.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "startTime is required", r))
		return
	}
	if req.Productive < 0 || req.Unproductive < 0 || req.Undefined < 0 || req.IdleTime < 0 || req.AppSwitches < 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "counters must be non-negative", r))
		return
	}

	session := &models.WorkSession{
		UserID:       userID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Productive:   req.Productive,
		Unproductive: req.Unproductive,
		Undefined:    req.Undefined,
		IdleTime:     req.IdleTime,
		AppSwitches:  req.AppSwitches,
		AppsUsed:     req.AppsUsed,
		WebsitesUsed: req.WebsitesUsed,
	}

	if err := h.sessions.Create(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save session", r))
		return
	}

	// Queue the session for threshold evaluation; ingest succeeds even
	// if the queue push fails, alerts are best-effort.
	job, _ := json.Marshal(map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
	})
	h.redis.LPush(r.Context(), database.AlertQueueKey, job)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}
