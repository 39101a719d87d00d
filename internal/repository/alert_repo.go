package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpulse-backend/internal/models"
)

type AlertRepo struct {
	pool *pgxpool.Pool
}

func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

func (r *AlertRepo) Create(ctx context.Context, a *models.Alert) error {
	a.ID = uuid.New()
	if len(a.Activity) == 0 {
		a.Activity = json.RawMessage("{}")
	}

	query := `
		INSERT INTO alerts (id, user_id, type, details, activity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING timestamp`

	return r.pool.QueryRow(ctx, query,
		a.ID, a.UserID, a.Type, a.Details, a.Activity,
	).Scan(&a.Timestamp)
}

// ListByCompany returns all alerts for the company's users joined with
// each user's name and avatar, newest first.
func (r *AlertRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.type, a.details, a.activity, a.timestamp, u.full_name, u.avatar_url
		FROM alerts a
		JOIN users u ON u.id = a.user_id
		WHERE u.company_id = $1
		ORDER BY a.timestamp DESC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		a := &models.Alert{}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.Details, &a.Activity,
			&a.Timestamp, &a.Name, &a.AvatarURL,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
