// Package stripday implements the strip day repository using PostgreSQL.
package stripday

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides strip day persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new strip day repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const dayColumns = `id, project_id, shoot_date, scene_order, target_mins, total_mins, updated_at`

// Create inserts a new strip day and returns the stored row.
func (r *Repo) Create(ctx context.Context, day *domain.StripDay) (*domain.StripDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO strip_days (id, project_id, shoot_date, scene_order, target_mins, total_mins, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+dayColumns,
		day.ID, day.ProjectID, day.ShootDate, day.SceneOrder, day.TargetMins, day.TotalMins, day.UpdatedAt,
	)

	created, err := scanDay(row)
	if err != nil {
		return nil, mapError(err, day.ID)
	}
	return created, nil
}

// GetByID returns a strip day by primary key.
func (r *Repo) GetByID(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+dayColumns+` FROM strip_days WHERE id = $1`,
		dayID,
	)

	day, err := scanDay(row)
	if err != nil {
		return nil, mapError(err, dayID)
	}
	return day, nil
}

// ListByProject returns all strip days of a project ordered by shoot date.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.StripDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+dayColumns+` FROM strip_days
		 WHERE project_id = $1
		 ORDER BY shoot_date, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list strip days: %w", err)
	}
	defer rows.Close()

	var days []domain.StripDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("list strip days: %w", err)
		}
		days = append(days, *day)
	}
	return days, rows.Err()
}

// UpdateOrder replaces the scene order and recomputed total of one day.
// The two fields always travel together so the total cache can never be
// written without the order that produced it.
func (r *Repo) UpdateOrder(ctx context.Context, dayID uuid.UUID, order []uuid.UUID, totalMins int) (*domain.StripDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE strip_days
		 SET scene_order = $2, total_mins = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+dayColumns,
		dayID, order, totalMins,
	)

	day, err := scanDay(row)
	if err != nil {
		return nil, mapError(err, dayID)
	}
	return day, nil
}

// UpdateTarget sets a new target duration.
func (r *Repo) UpdateTarget(ctx context.Context, dayID uuid.UUID, targetMins int) (*domain.StripDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE strip_days
		 SET target_mins = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+dayColumns,
		dayID, targetMins,
	)

	day, err := scanDay(row)
	if err != nil {
		return nil, mapError(err, dayID)
	}
	return day, nil
}

// Delete removes the day row. Scene rows referenced from scene_order are
// left untouched.
func (r *Repo) Delete(ctx context.Context, dayID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM strip_days WHERE id = $1`, dayID)
	if err != nil {
		return mapError(err, dayID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("strip day %s: %w", dayID, domain.ErrNotFound)
	}
	return nil
}

func scanDay(row pgx.Row) (*domain.StripDay, error) {
	var day domain.StripDay
	var shootDate time.Time
	err := row.Scan(
		&day.ID, &day.ProjectID, &shootDate, &day.SceneOrder,
		&day.TargetMins, &day.TotalMins, &day.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	day.ShootDate = shootDate
	if day.SceneOrder == nil {
		day.SceneOrder = []uuid.UUID{}
	}
	return &day, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "strip day", id)
}
