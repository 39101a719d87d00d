package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpulse-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, full_name, contact, country_code, role, terms_agreed, settings_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '{}'::jsonb)
		RETURNING created_at`

	user.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, user.FullName,
		user.Contact, user.CountryCode, user.Role, user.TermsAgreed,
	).Scan(&user.CreatedAt)
}

const userColumns = `id, company_id, email, password_hash, full_name, avatar_url, contact, country_code, role, terms_agreed, settings_json, created_at, last_login_at`

func (r *UserRepo) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.CompanyID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.AvatarURL, &user.Contact, &user.CountryCode, &user.Role,
		&user.TermsAgreed, &user.SettingsJSON, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE company_id = $1", companyID).Scan(&count)
	return count, err
}

func (r *UserRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ListEmployees returns the company's EMPLOYEE-role users, the set the
// admin dashboard assigns projects to and reports on.
func (r *UserRepo) ListEmployees(ctx context.Context, companyID uuid.UUID) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND role = $2 ORDER BY full_name`,
		companyID, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", time.Now(), userID)
	return err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET full_name = $1, email = $2, contact = $3, country_code = $4, avatar_url = $5 WHERE id = $6`,
		user.FullName, user.Email, user.Contact, user.CountryCode, user.AvatarURL, user.ID,
	)
	return err
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET avatar_url = $1 WHERE id = $2", avatarURL, userID)
	return err
}

// GetSettings decodes the user's settings blob over the dashboard
// defaults, so partially saved settings keep default values for the
// untouched fields.
func (r *UserRepo) GetSettings(ctx context.Context, userID uuid.UUID) (models.UserSettings, error) {
	settings := models.DefaultSettings()

	var raw []byte
	err := r.pool.QueryRow(ctx, "SELECT settings_json FROM users WHERE id = $1", userID).Scan(&raw)
	if err != nil {
		return settings, err
	}

	if len(raw) > 0 {
		// Ignore a malformed blob rather than fail the request.
		json.Unmarshal(raw, &settings)
	}
	return settings, nil
}

// ListWithDailyReports returns users whose stored settings enable the
// dailyReports notification flag.
func (r *UserRepo) ListWithDailyReports(ctx context.Context) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(COALESCE(settings_json->'notifications'->>'dailyReports', 'false')) = 'true'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// MergeSettings folds the given partial settings document into the
// stored blob (JSONB shallow merge), matching how the dashboard saves
// one settings page at a time.
func (r *UserRepo) MergeSettings(ctx context.Context, userID uuid.UUID, updates json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET settings_json = COALESCE(settings_json, '{}'::jsonb) || $2::jsonb
		WHERE id = $1
	`, userID, updates)
	return err
}
