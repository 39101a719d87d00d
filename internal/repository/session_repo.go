package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpulse-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.WorkSession) error {
	s.ID = uuid.New()

	appsBytes, _ := json.Marshal(s.AppsUsed)
	if appsBytes == nil {
		appsBytes = []byte("[]")
	}
	sitesBytes, _ := json.Marshal(s.WebsitesUsed)
	if sitesBytes == nil {
		sitesBytes = []byte("[]")
	}

	query := `
		INSERT INTO work_sessions
			(id, user_id, start_time, end_time, productive, unproductive, undefined, idle_time, app_switches, apps_used, websites_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.StartTime, s.EndTime,
		s.Productive, s.Unproductive, s.Undefined,
		s.IdleTime, s.AppSwitches, appsBytes, sitesBytes,
	).Scan(&s.CreatedAt)
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkSession, error) {
	var s models.WorkSession
	var appsRaw, sitesRaw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, start_time, end_time, productive, unproductive, undefined,
		       idle_time, app_switches, apps_used, websites_used, created_at
		FROM work_sessions
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.UserID, &s.StartTime, &s.EndTime,
		&s.Productive, &s.Unproductive, &s.Undefined,
		&s.IdleTime, &s.AppSwitches, &appsRaw, &sitesRaw, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(appsRaw) > 0 {
		json.Unmarshal(appsRaw, &s.AppsUsed)
	}
	if len(sitesRaw) > 0 {
		json.Unmarshal(sitesRaw, &s.WebsitesUsed)
	}
	return &s, nil
}

// ListSince returns the user's sessions with start_time at or after the
// cutoff, in no particular order. The aggregator does not depend on
// ordering.
func (r *SessionRepo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.WorkSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, start_time, end_time, productive, unproductive, undefined,
		       idle_time, app_switches, apps_used, websites_used, created_at
		FROM work_sessions
		WHERE user_id = $1 AND start_time >= $2
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.WorkSession, 0)
	for rows.Next() {
		var s models.WorkSession
		var appsRaw, sitesRaw []byte
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.StartTime, &s.EndTime,
			&s.Productive, &s.Unproductive, &s.Undefined,
			&s.IdleTime, &s.AppSwitches, &appsRaw, &sitesRaw, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(appsRaw) > 0 {
			json.Unmarshal(appsRaw, &s.AppsUsed)
		}
		if len(sitesRaw) > 0 {
			json.Unmarshal(sitesRaw, &s.WebsitesUsed)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
