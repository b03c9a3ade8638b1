package stripday_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres/stripday"
	"github.com/slateroom/preprod-backend/internal/adapter/postgres/testhelper"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*stripday.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return stripday.New(pool), pool
}

// buildDay creates a minimal domain.StripDay suitable for Create.
func buildDay(projectID uuid.UUID, order []uuid.UUID, targetMins, totalMins int) domain.StripDay {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if order == nil {
		order = []uuid.UUID{}
	}
	return domain.StripDay{
		ID:         uuid.New(),
		ProjectID:  projectID,
		ShootDate:  time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		SceneOrder: order,
		TargetMins: targetMins,
		TotalMins:  totalMins,
		UpdatedAt:  now,
	}
}

func sameOrder(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	s1 := testhelper.SeedScene(t, pool, project.ID, 45)
	s2 := testhelper.SeedScene(t, pool, project.ID, 30)

	day := buildDay(project.ID, []uuid.UUID{s1.ID, s2.ID}, 480, 75)

	got, err := repo.Create(ctx, &day)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID != day.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, day.ID)
	}
	if got.ProjectID != project.ID {
		t.Errorf("ProjectID mismatch: got %s, want %s", got.ProjectID, project.ID)
	}
	if !sameOrder(got.SceneOrder, day.SceneOrder) {
		t.Errorf("SceneOrder mismatch: got %v, want %v", got.SceneOrder, day.SceneOrder)
	}
	if got.TargetMins != 480 {
		t.Errorf("TargetMins mismatch: got %d, want 480", got.TargetMins)
	}
	if got.TotalMins != 75 {
		t.Errorf("TotalMins mismatch: got %d, want 75", got.TotalMins)
	}
}

func TestRepo_Create_EmptyOrder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	day := buildDay(project.ID, nil, 480, 0)

	got, err := repo.Create(ctx, &day)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.SceneOrder == nil {
		t.Error("expected empty non-nil SceneOrder")
	}
	if len(got.SceneOrder) != 0 {
		t.Errorf("expected empty SceneOrder, got %v", got.SceneOrder)
	}
}

func TestRepo_Create_UnknownProject(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	day := buildDay(uuid.New(), nil, 480, 0)

	_, err := repo.Create(ctx, &day)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_GetByID_DanglingSceneRefsSurvive(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	scene := testhelper.SeedScene(t, pool, project.ID, 20)
	day := testhelper.SeedStripDay(t, pool, project.ID, []uuid.UUID{scene.ID}, 480, 20)

	// Deleting the scene must not touch the day's order array.
	if _, err := pool.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, scene.ID); err != nil {
		t.Fatalf("delete scene: %v", err)
	}

	got, err := repo.GetByID(ctx, day.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if !sameOrder(got.SceneOrder, []uuid.UUID{scene.ID}) {
		t.Errorf("expected dangling ref to remain, got %v", got.SceneOrder)
	}
}

func TestRepo_ListByProject_OrderedByShootDate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)

	later := buildDay(project.ID, nil, 480, 0)
	later.ShootDate = time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)
	earlier := buildDay(project.ID, nil, 480, 0)
	earlier.ShootDate = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Create(ctx, &later); err != nil {
		t.Fatalf("Create later: %v", err)
	}
	if _, err := repo.Create(ctx, &earlier); err != nil {
		t.Fatalf("Create earlier: %v", err)
	}

	days, err := repo.ListByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListByProject: unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].ID != earlier.ID || days[1].ID != later.ID {
		t.Errorf("expected shoot date order [%s %s], got [%s %s]",
			earlier.ID, later.ID, days[0].ID, days[1].ID)
	}
}

func TestRepo_ListByProject_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)

	days, err := repo.ListByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListByProject: unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected no days, got %d", len(days))
	}
}

func TestRepo_UpdateOrder_PersistsOrderAndTotal(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	s1 := testhelper.SeedScene(t, pool, project.ID, 40)
	s2 := testhelper.SeedScene(t, pool, project.ID, 25)
	day := testhelper.SeedStripDay(t, pool, project.ID, []uuid.UUID{s1.ID, s2.ID}, 480, 65)

	newOrder := []uuid.UUID{s2.ID, s1.ID}
	got, err := repo.UpdateOrder(ctx, day.ID, newOrder, 65)
	if err != nil {
		t.Fatalf("UpdateOrder: unexpected error: %v", err)
	}
	if !sameOrder(got.SceneOrder, newOrder) {
		t.Errorf("SceneOrder mismatch: got %v, want %v", got.SceneOrder, newOrder)
	}
	if got.TotalMins != 65 {
		t.Errorf("TotalMins mismatch: got %d, want 65", got.TotalMins)
	}
	if !got.UpdatedAt.After(day.UpdatedAt) {
		t.Errorf("expected UpdatedAt to advance past %v, got %v", day.UpdatedAt, got.UpdatedAt)
	}
}

func TestRepo_UpdateOrder_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.UpdateOrder(ctx, uuid.New(), []uuid.UUID{uuid.New()}, 10)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateTarget(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	day := testhelper.SeedStripDay(t, pool, project.ID, nil, 480, 0)

	got, err := repo.UpdateTarget(ctx, day.ID, 600)
	if err != nil {
		t.Fatalf("UpdateTarget: unexpected error: %v", err)
	}
	if got.TargetMins != 600 {
		t.Errorf("TargetMins mismatch: got %d, want 600", got.TargetMins)
	}
}

func TestRepo_UpdateTarget_NegativeRejectedByCheck(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	day := testhelper.SeedStripDay(t, pool, project.ID, nil, 480, 0)

	_, err := repo.UpdateTarget(ctx, day.ID, -10)
	assertIsDomainError(t, err, domain.ErrValidation)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	project := testhelper.SeedProject(t, pool)
	day := testhelper.SeedStripDay(t, pool, project.ID, nil, 480, 0)

	if err := repo.Delete(ctx, day.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, day.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.Delete(ctx, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// assertIsDomainError fails the test if err does not wrap target.
func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
