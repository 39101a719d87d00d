package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpulse-backend/internal/models"
)

type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

func (r *CompanyRepo) Create(ctx context.Context, company *models.Company) error {
	company.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		"INSERT INTO companies (id, name) VALUES ($1, $2) RETURNING created_at",
		company.ID, company.Name,
	).Scan(&company.CreatedAt)
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*models.Company, error) {
	company := &models.Company{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM companies WHERE name = $1", name,
	).Scan(&company.ID, &company.Name, &company.CreatedAt)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM companies WHERE id = $1", id,
	).Scan(&company.ID, &company.Name, &company.CreatedAt)
	if err != nil {
		return nil, err
	}
	return company, nil
}
