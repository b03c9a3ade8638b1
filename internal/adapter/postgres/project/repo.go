// Package project implements the project repository using PostgreSQL.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const projectColumns = `id, name, created_at, updated_at`

// Create inserts a project and returns the stored row.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO projects (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+projectColumns,
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt,
	)

	created, err := scanProject(row)
	if err != nil {
		return nil, mapError(err, p.ID)
	}
	return created, nil
}

// GetByID returns a project by primary key.
func (r *Repo) GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)

	p, err := scanProject(row)
	if err != nil {
		return nil, mapError(err, projectID)
	}
	return p, nil
}

// List returns all projects in creation order.
func (r *Repo) List(ctx context.Context) ([]domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Rename updates a project's name.
func (r *Repo) Rename(ctx context.Context, projectID uuid.UUID, name string) (*domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE projects SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+projectColumns,
		projectID, name,
	)

	p, err := scanProject(row)
	if err != nil {
		return nil, mapError(err, projectID)
	}
	return p, nil
}

// Delete removes a project and everything scoped under it via cascades.
func (r *Repo) Delete(ctx context.Context, projectID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return mapError(err, projectID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "project", id)
}
