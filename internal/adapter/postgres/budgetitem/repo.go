// Package budgetitem implements the budget line-item repository using
// PostgreSQL. Partial updates are built with squirrel so that the derived
// total is recomputed in the same statement from merged values.
package budgetitem

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides budget line-item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new budget item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const itemColumns = `id, project_id, scope, ref_id, description, category, qty, unit_cents, total_cents, currency, created_at, updated_at`

// Create inserts a line item. TotalCents must already be derived by the caller.
func (r *Repo) Create(ctx context.Context, item *domain.BudgetLineItem) (*domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO budget_items (id, project_id, scope, ref_id, description, category, qty, unit_cents, total_cents, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+itemColumns,
		item.ID, item.ProjectID, string(item.Scope), item.RefID, item.Description, item.Category,
		item.Qty, item.UnitCents, item.TotalCents, item.Currency, item.CreatedAt, item.UpdatedAt,
	)

	created, err := scanItem(row)
	if err != nil {
		return nil, mapError(err, item.ID)
	}
	return created, nil
}

// GetByID returns a line item by primary key.
func (r *Repo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM budget_items WHERE id = $1`,
		itemID,
	)

	item, err := scanItem(row)
	if err != nil {
		return nil, mapError(err, itemID)
	}
	return item, nil
}

// UpdatePartial merges the given fields over the stored row and recomputes
// total_cents inside the UPDATE, so fields absent from the payload keep
// their prior persisted values in the recompute.
func (r *Repo) UpdatePartial(ctx context.Context, itemID uuid.UUID, p domain.BudgetItemPatch) (*domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Update("budget_items").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID}).
		Suffix("RETURNING " + itemColumns)

	if p.Description != nil {
		b = b.Set("description", *p.Description)
	}
	if p.Category != nil {
		b = b.Set("category", *p.Category)
	}
	if p.Currency != nil {
		b = b.Set("currency", *p.Currency)
	}
	if p.Qty != nil {
		b = b.Set("qty", *p.Qty)
	}
	if p.UnitCents != nil {
		b = b.Set("unit_cents", *p.UnitCents)
	}
	if p.Qty != nil || p.UnitCents != nil {
		// SET expressions read the pre-update row, so COALESCE picks the
		// stored value for whichever of qty/unit_cents is not in the payload.
		b = b.Set("total_cents", sq.Expr("COALESCE(?::int, qty)::bigint * COALESCE(?::bigint, unit_cents)", p.Qty, p.UnitCents))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	item, err := scanItem(row)
	if err != nil {
		return nil, mapError(err, itemID)
	}
	return item, nil
}

// ListByScope returns items for the exact scope+ref pair. This is not a
// hierarchy traversal: day-scoped items never show up in a project query.
func (r *Repo) ListByScope(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error) {
	b := sq.Select(itemColumns).
		PlaceholderFormat(sq.Dollar).
		From("budget_items").
		Where(sq.Eq{"scope": string(scope), "ref_id": refID}).
		OrderBy("created_at", "id")

	if filter.Category != "" {
		b = b.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Currency != "" {
		b = b.Where(sq.Eq{"currency": filter.Currency})
	}

	return r.list(ctx, b)
}

// ListByProject returns every line item of a project regardless of scope.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error) {
	b := sq.Select(itemColumns).
		PlaceholderFormat(sq.Dollar).
		From("budget_items").
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("created_at", "id")

	return r.list(ctx, b)
}

// Delete removes the line item.
func (r *Repo) Delete(ctx context.Context, itemID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM budget_items WHERE id = $1`, itemID)
	if err != nil {
		return mapError(err, itemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget item %s: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, b sq.SelectBuilder) ([]domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	items := []domain.BudgetLineItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list budget items: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*domain.BudgetLineItem, error) {
	var item domain.BudgetLineItem
	var scope string
	err := row.Scan(
		&item.ID, &item.ProjectID, &scope, &item.RefID, &item.Description, &item.Category,
		&item.Qty, &item.UnitCents, &item.TotalCents, &item.Currency, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Scope = domain.BudgetScope(scope)
	return &item, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "budget item", id)
}
