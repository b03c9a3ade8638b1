// Package scene implements the scene repository using PostgreSQL.
package scene

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides scene persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new scene repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sceneColumns = `id, project_id, slugline, summary, location, duration_mins, priority, created_at, updated_at`

// Create inserts a scene and returns the stored row.
func (r *Repo) Create(ctx context.Context, s *domain.Scene) (*domain.Scene, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO scenes (id, project_id, slugline, summary, location, duration_mins, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+sceneColumns,
		s.ID, s.ProjectID, s.Slugline, s.Summary, s.Location, s.DurationMins, string(s.Priority), s.CreatedAt, s.UpdatedAt,
	)

	created, err := scanScene(row)
	if err != nil {
		return nil, mapError(err, s.ID)
	}
	return created, nil
}

// GetByID returns a scene by primary key.
func (r *Repo) GetByID(ctx context.Context, sceneID uuid.UUID) (*domain.Scene, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+sceneColumns+` FROM scenes WHERE id = $1`, sceneID)

	s, err := scanScene(row)
	if err != nil {
		return nil, mapError(err, sceneID)
	}
	return s, nil
}

// ListByProject returns all scenes of a project in creation order.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Scene, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE project_id = $1 ORDER BY created_at, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []domain.Scene
	for rows.Next() {
		s, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("list scenes: %w", err)
		}
		scenes = append(scenes, *s)
	}
	return scenes, rows.Err()
}

// DurationsByIDs returns a duration lookup for the given scene refs.
// Unknown refs are simply absent from the map.
func (r *Repo) DurationsByIDs(ctx context.Context, sceneIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	durations := make(map[uuid.UUID]int, len(sceneIDs))
	if len(sceneIDs) == 0 {
		return durations, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, duration_mins FROM scenes WHERE id = ANY($1::uuid[])`,
		sceneIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("get scene durations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var mins int
		if err := rows.Scan(&id, &mins); err != nil {
			return nil, fmt.Errorf("get scene durations: %w", err)
		}
		durations[id] = mins
	}
	return durations, rows.Err()
}

// Update replaces the mutable fields of a scene.
func (r *Repo) Update(ctx context.Context, s *domain.Scene) (*domain.Scene, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE scenes
		 SET slugline = $2, summary = $3, location = $4, duration_mins = $5, priority = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+sceneColumns,
		s.ID, s.Slugline, s.Summary, s.Location, s.DurationMins, string(s.Priority),
	)

	updated, err := scanScene(row)
	if err != nil {
		return nil, mapError(err, s.ID)
	}
	return updated, nil
}

// Delete removes a scene. Strip day orders referencing it are not touched;
// the dangling ref then contributes zero to duration sums.
func (r *Repo) Delete(ctx context.Context, sceneID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, sceneID)
	if err != nil {
		return mapError(err, sceneID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scene %s: %w", sceneID, domain.ErrNotFound)
	}
	return nil
}

func scanScene(row pgx.Row) (*domain.Scene, error) {
	var s domain.Scene
	var priority string
	err := row.Scan(
		&s.ID, &s.ProjectID, &s.Slugline, &s.Summary, &s.Location,
		&s.DurationMins, &priority, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Priority = domain.ScenePriority(priority)
	return &s, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "scene", id)
}
