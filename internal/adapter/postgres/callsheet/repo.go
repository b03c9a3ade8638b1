// Package callsheet implements the call sheet repository using PostgreSQL.
package callsheet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides call sheet persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new call sheet repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sheetColumns = `id, project_id, shoot_date, sheet, created_at`

// Create inserts a call sheet and returns the stored row.
func (r *Repo) Create(ctx context.Context, cs *domain.CallSheet) (*domain.CallSheet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO call_sheets (id, project_id, shoot_date, sheet, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+sheetColumns,
		cs.ID, cs.ProjectID, cs.ShootDate, cs.Sheet, cs.CreatedAt,
	)

	created, err := scanSheet(row)
	if err != nil {
		return nil, mapError(err, cs.ID)
	}
	return created, nil
}

// GetByID returns a call sheet by primary key.
func (r *Repo) GetByID(ctx context.Context, sheetID uuid.UUID) (*domain.CallSheet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+sheetColumns+` FROM call_sheets WHERE id = $1`, sheetID)

	cs, err := scanSheet(row)
	if err != nil {
		return nil, mapError(err, sheetID)
	}
	return cs, nil
}

// ListByProject returns all call sheets of a project ordered by shoot date.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.CallSheet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+sheetColumns+` FROM call_sheets WHERE project_id = $1 ORDER BY shoot_date, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list call sheets: %w", err)
	}
	defer rows.Close()

	var sheets []domain.CallSheet
	for rows.Next() {
		cs, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("list call sheets: %w", err)
		}
		sheets = append(sheets, *cs)
	}
	return sheets, rows.Err()
}

// Delete removes a call sheet.
func (r *Repo) Delete(ctx context.Context, sheetID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM call_sheets WHERE id = $1`, sheetID)
	if err != nil {
		return mapError(err, sheetID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("call sheet %s: %w", sheetID, domain.ErrNotFound)
	}
	return nil
}

func scanSheet(row pgx.Row) (*domain.CallSheet, error) {
	var cs domain.CallSheet
	err := row.Scan(&cs.ID, &cs.ProjectID, &cs.ShootDate, &cs.Sheet, &cs.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "call sheet", id)
}
