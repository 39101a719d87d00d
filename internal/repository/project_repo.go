package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpulse-backend/internal/models"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.ProjectAssignment) error {
	p.ID = uuid.New()
	p.Status = models.ProjectAssigned

	query := `
		INSERT INTO project_assignments (id, user_id, project_name, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.UserID, p.ProjectName, p.Description, p.Status, p.DueDate,
	).Scan(&p.CreatedAt)
}

const projectColumns = `p.id, p.user_id, p.project_name, p.description, p.status, p.github_link, p.due_date, p.completed_at, p.created_at`

// ListByCompany returns every assignment in the company joined with the
// employee's name, newest first.
func (r *ProjectRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.ProjectAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`, u.full_name
		FROM project_assignments p
		JOIN users u ON u.id = p.user_id
		WHERE u.company_id = $1
		ORDER BY p.created_at DESC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.ProjectAssignment, 0)
	for rows.Next() {
		p := &models.ProjectAssignment{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ProjectName, &p.Description, &p.Status,
			&p.GithubLink, &p.DueDate, &p.CompletedAt, &p.CreatedAt, &p.EmployeeName,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.ProjectAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM project_assignments p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.ProjectAssignment, 0)
	for rows.Next() {
		p := &models.ProjectAssignment{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ProjectName, &p.Description, &p.Status,
			&p.GithubLink, &p.DueDate, &p.CompletedAt, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Complete marks the assignment completed with the submitted link.
// Used both by the admin complete action and the employee submit flow.
func (r *ProjectRepo) Complete(ctx context.Context, id uuid.UUID, githubLink string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE project_assignments
		SET status = $2, github_link = $3, completed_at = $4
		WHERE id = $1
	`, id, models.ProjectCompleted, githubLink, time.Now())
	return err
}

func (r *ProjectRepo) Reject(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE project_assignments SET status = $2 WHERE id = $1", id, models.ProjectRejected)
	return err
}

func (r *ProjectRepo) UpdateDueDate(ctx context.Context, id uuid.UUID, dueDate time.Time) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE project_assignments SET due_date = $2 WHERE id = $1", id, dueDate)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM project_assignments WHERE id = $1", id)
	return err
}
