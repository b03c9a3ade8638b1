// Package script implements the script repository using PostgreSQL.
package script

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides script persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new script repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const scriptColumns = `id, project_id, title, body, notes, created_at, updated_at`

// Create inserts a script and returns the stored row.
func (r *Repo) Create(ctx context.Context, s *domain.Script) (*domain.Script, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO scripts (id, project_id, title, body, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+scriptColumns,
		s.ID, s.ProjectID, s.Title, s.Body, s.Notes, s.CreatedAt, s.UpdatedAt,
	)

	created, err := scanScript(row)
	if err != nil {
		return nil, mapError(err, s.ID)
	}
	return created, nil
}

// GetByID returns a script by primary key.
func (r *Repo) GetByID(ctx context.Context, scriptID uuid.UUID) (*domain.Script, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+scriptColumns+` FROM scripts WHERE id = $1`, scriptID)

	s, err := scanScript(row)
	if err != nil {
		return nil, mapError(err, scriptID)
	}
	return s, nil
}

// ListByProject returns all scripts of a project, newest first.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Script, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+scriptColumns+` FROM scripts WHERE project_id = $1 ORDER BY created_at DESC, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []domain.Script
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, fmt.Errorf("list scripts: %w", err)
		}
		scripts = append(scripts, *s)
	}
	return scripts, rows.Err()
}

// UpdateBody replaces a script's body and notes.
func (r *Repo) UpdateBody(ctx context.Context, scriptID uuid.UUID, body, notes string) (*domain.Script, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE scripts SET body = $2, notes = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+scriptColumns,
		scriptID, body, notes,
	)

	s, err := scanScript(row)
	if err != nil {
		return nil, mapError(err, scriptID)
	}
	return s, nil
}

// Delete removes a script.
func (r *Repo) Delete(ctx context.Context, scriptID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM scripts WHERE id = $1`, scriptID)
	if err != nil {
		return mapError(err, scriptID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("script %s: %w", scriptID, domain.ErrNotFound)
	}
	return nil
}

func scanScript(row pgx.Row) (*domain.Script, error) {
	var s domain.Script
	err := row.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Body, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "script", id)
}
