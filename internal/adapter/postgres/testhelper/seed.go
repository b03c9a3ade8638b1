package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProject creates a project row and returns the filled domain.Project.
func SeedProject(t *testing.T, pool *pgxpool.Pool) domain.Project {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	project := domain.Project{
		ID:        uuid.New(),
		Name:      "Test Project " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO projects (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		project.ID, project.Name, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert: %v", err)
	}

	return project
}

// SeedScene creates a scene with the given duration.
func SeedScene(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, durationMins int) domain.Scene {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	scene := domain.Scene{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Slugline:     "INT. SOUNDSTAGE " + suffix + " - DAY",
		Summary:      "Scene " + suffix,
		Location:     "Stage 4",
		DurationMins: durationMins,
		Priority:     domain.PriorityMedium,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO scenes (id, project_id, slugline, summary, location, duration_mins, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		scene.ID, scene.ProjectID, scene.Slugline, scene.Summary, scene.Location,
		scene.DurationMins, string(scene.Priority), scene.CreatedAt, scene.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedScene insert: %v", err)
	}

	return scene
}

// SeedStripDay creates a strip day with the given order and totals.
func SeedStripDay(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, order []uuid.UUID, targetMins, totalMins int) domain.StripDay {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	day := domain.StripDay{
		ID:         uuid.New(),
		ProjectID:  projectID,
		ShootDate:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		SceneOrder: order,
		TargetMins: targetMins,
		TotalMins:  totalMins,
		UpdatedAt:  now,
	}
	if day.SceneOrder == nil {
		day.SceneOrder = []uuid.UUID{}
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO strip_days (id, project_id, shoot_date, scene_order, target_mins, total_mins, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		day.ID, day.ProjectID, day.ShootDate, day.SceneOrder, day.TargetMins, day.TotalMins, day.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStripDay insert: %v", err)
	}

	return day
}

// SeedBudgetItem creates a budget line item with total derived from qty*unit.
func SeedBudgetItem(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, scope domain.BudgetScope, refID uuid.UUID, category string, qty int, unitCents int64) domain.BudgetLineItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.BudgetLineItem{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Scope:       scope,
		RefID:       refID,
		Description: "Seeded item " + uniqueSuffix(),
		Category:    category,
		Qty:         qty,
		UnitCents:   unitCents,
		Currency:    domain.DefaultCurrency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.TotalCents = item.ComputeTotal()

	_, err := pool.Exec(ctx,
		`INSERT INTO budget_items (id, project_id, scope, ref_id, description, category, qty, unit_cents, total_cents, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		item.ID, item.ProjectID, string(item.Scope), item.RefID, item.Description, item.Category,
		item.Qty, item.UnitCents, item.TotalCents, item.Currency, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBudgetItem insert: %v", err)
	}

	return item
}

// SeedScript creates a script row.
func SeedScript(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, body string) domain.Script {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	script := domain.Script{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Draft " + uniqueSuffix(),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO scripts (id, project_id, title, body, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, '', $5, $6)`,
		script.ID, script.ProjectID, script.Title, script.Body, script.CreatedAt, script.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedScript insert: %v", err)
	}

	return script
}
