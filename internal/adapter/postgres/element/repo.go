// Package element implements the catalog element repository using PostgreSQL.
package element

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides element persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new element repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const elementColumns = `id, project_id, type, name, description, notes, estimated_cents, created_at`

// Create inserts an element and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.Element) (*domain.Element, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO elements (id, project_id, type, name, description, notes, estimated_cents, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+elementColumns,
		e.ID, e.ProjectID, string(e.Type), e.Name, e.Description, e.Notes, e.EstimatedCents, e.CreatedAt,
	)

	created, err := scanElement(row)
	if err != nil {
		return nil, mapError(err, e.ID)
	}
	return created, nil
}

// GetByID returns an element by primary key.
func (r *Repo) GetByID(ctx context.Context, elementID uuid.UUID) (*domain.Element, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+elementColumns+` FROM elements WHERE id = $1`, elementID)

	e, err := scanElement(row)
	if err != nil {
		return nil, mapError(err, elementID)
	}
	return e, nil
}

// ListByProject returns elements of a project, optionally filtered by type.
// An empty elementType returns every type.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID, elementType domain.ElementType) ([]domain.Element, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := `SELECT ` + elementColumns + ` FROM elements WHERE project_id = $1`
	args := []any{projectID}
	if elementType != "" {
		sql += ` AND type = $2`
		args = append(args, string(elementType))
	}
	sql += ` ORDER BY created_at, id`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	defer rows.Close()

	var elements []domain.Element
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, fmt.Errorf("list elements: %w", err)
		}
		elements = append(elements, *e)
	}
	return elements, rows.Err()
}

// Delete removes an element.
func (r *Repo) Delete(ctx context.Context, elementID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM elements WHERE id = $1`, elementID)
	if err != nil {
		return mapError(err, elementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("element %s: %w", elementID, domain.ErrNotFound)
	}
	return nil
}

func scanElement(row pgx.Row) (*domain.Element, error) {
	var e domain.Element
	var typ string
	err := row.Scan(
		&e.ID, &e.ProjectID, &typ, &e.Name, &e.Description, &e.Notes, &e.EstimatedCents, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = domain.ElementType(typ)
	return &e, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "element", id)
}
