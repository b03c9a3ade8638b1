package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetScope identifies which kind of entity a line item is attributed to.
type BudgetScope string

const (
	ScopeProject BudgetScope = "project"
	ScopeDay     BudgetScope = "day"
	ScopeScene   BudgetScope = "scene"
	ScopeElement BudgetScope = "element"
)

// ValidBudgetScope reports whether s is one of the four known scopes.
func ValidBudgetScope(s BudgetScope) bool {
	switch s {
	case ScopeProject, ScopeDay, ScopeScene, ScopeElement:
		return true
	}
	return false
}

// BudgetLineItem is one cost entry attributed to a scope+ref pair.
// RefID is not referentially enforced: a line item may outlive the day or
// scene it points at.
type BudgetLineItem struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Scope       BudgetScope
	RefID       uuid.UUID
	Description string
	Category    string
	Qty         int
	UnitCents   int64
	// TotalCents is derived and must equal Qty * UnitCents after every write.
	TotalCents int64
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ComputeTotal returns the derived total for the item's current qty and
// unit price.
func (i BudgetLineItem) ComputeTotal() int64 {
	return int64(i.Qty) * i.UnitCents
}

// BudgetItemPatch carries a partial update. Nil fields keep their stored
// value; a patch touching Qty or UnitCents forces a total recompute from
// the merged values.
type BudgetItemPatch struct {
	Description *string
	Category    *string
	Qty         *int
	UnitCents   *int64
	Currency    *string
}

// Empty reports whether the patch changes nothing.
func (p BudgetItemPatch) Empty() bool {
	return p.Description == nil && p.Category == nil && p.Qty == nil &&
		p.UnitCents == nil && p.Currency == nil
}

// BudgetItemFilter narrows line-item listings. Zero values mean no filtering.
type BudgetItemFilter struct {
	Category string
	Currency string
}

// CategoryTotal is one row of a per-category budget rollup.
type CategoryTotal struct {
	Category string
	Cents    int64
}

// BudgetTotals is a computed aggregate over a set of line items. It is never
// persisted. Currency is the code of the last item seen: summing items in
// mixed currencies produces a misleading single figure, and callers that mix
// currencies get no conversion or warning.
type BudgetTotals struct {
	TotalCents    int64
	Currency      string
	LineItemCount int
	// Categories preserves first-occurrence order of each category.
	Categories []CategoryTotal
}

// CalculateTotals sums line items in a single pass. Category rows appear in
// the order each category was first seen.
func CalculateTotals(items []BudgetLineItem) BudgetTotals {
	totals := BudgetTotals{
		Currency:      DefaultCurrency,
		Categories:    []CategoryTotal{},
		LineItemCount: len(items),
	}

	index := make(map[string]int, len(items))
	for _, item := range items {
		totals.TotalCents += item.TotalCents
		if item.Currency != "" {
			totals.Currency = item.Currency
		}

		if pos, ok := index[item.Category]; ok {
			totals.Categories[pos].Cents += item.TotalCents
			continue
		}
		index[item.Category] = len(totals.Categories)
		totals.Categories = append(totals.Categories, CategoryTotal{
			Category: item.Category,
			Cents:    item.TotalCents,
		})
	}

	return totals
}

// CategoryCents returns the summed cents for one category, 0 if absent.
func (t BudgetTotals) CategoryCents(category string) int64 {
	for _, c := range t.Categories {
		if c.Category == category {
			return c.Cents
		}
	}
	return 0
}
