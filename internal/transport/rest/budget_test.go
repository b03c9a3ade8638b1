package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/budget"
)

type budgetServiceMock struct {
	CreateItemFunc             func(ctx context.Context, input budget.CreateItemInput) (*domain.BudgetLineItem, error)
	GetItemFunc                func(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error)
	UpdateItemFunc             func(ctx context.Context, itemID uuid.UUID, patch domain.BudgetItemPatch) (*domain.BudgetLineItem, error)
	ListByScopeFunc            func(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error)
	ListByProjectFunc          func(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error)
	DeleteItemFunc             func(ctx context.Context, itemID uuid.UUID) error
	CalculateScopeTotalsFunc   func(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID) (domain.BudgetTotals, error)
	CalculateProjectTotalsFunc func(ctx context.Context, projectID uuid.UUID) (domain.BudgetTotals, error)
}

func (m *budgetServiceMock) CreateItem(ctx context.Context, input budget.CreateItemInput) (*domain.BudgetLineItem, error) {
	return m.CreateItemFunc(ctx, input)
}

func (m *budgetServiceMock) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error) {
	return m.GetItemFunc(ctx, itemID)
}

func (m *budgetServiceMock) UpdateItem(ctx context.Context, itemID uuid.UUID, patch domain.BudgetItemPatch) (*domain.BudgetLineItem, error) {
	return m.UpdateItemFunc(ctx, itemID, patch)
}

func (m *budgetServiceMock) ListByScope(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error) {
	return m.ListByScopeFunc(ctx, scope, refID, filter)
}

func (m *budgetServiceMock) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error) {
	return m.ListByProjectFunc(ctx, projectID)
}

func (m *budgetServiceMock) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return m.DeleteItemFunc(ctx, itemID)
}

func (m *budgetServiceMock) CalculateScopeTotals(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID) (domain.BudgetTotals, error) {
	return m.CalculateScopeTotalsFunc(ctx, scope, refID)
}

func (m *budgetServiceMock) CalculateProjectTotals(ctx context.Context, projectID uuid.UUID) (domain.BudgetTotals, error) {
	return m.CalculateProjectTotalsFunc(ctx, projectID)
}

func sampleItem(projectID uuid.UUID) *domain.BudgetLineItem {
	return &domain.BudgetLineItem{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Scope:       domain.ScopeProject,
		RefID:       projectID,
		Description: "Camera package",
		Category:    "equipment",
		Qty:         2,
		UnitCents:   150050,
		TotalCents:  300100,
		Currency:    "USD",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestBudgetCreateItem_OK(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	item := sampleItem(projectID)

	var gotInput budget.CreateItemInput
	h := NewBudgetHandler(&budgetServiceMock{
		CreateItemFunc: func(_ context.Context, input budget.CreateItemInput) (*domain.BudgetLineItem, error) {
			gotInput = input
			return item, nil
		},
	}, testLogger())

	body, _ := json.Marshal(map[string]any{
		"projectId":   projectID,
		"scope":       "project",
		"refId":       projectID,
		"description": "Camera package",
		"category":    "equipment",
		"qty":         2,
		"unitCents":   150050,
		"currency":    "USD",
	})
	req := httptest.NewRequest(http.MethodPost, "/budget/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Scope != domain.ScopeProject {
		t.Errorf("expected scope project, got %s", gotInput.Scope)
	}
	if gotInput.UnitCents != 150050 {
		t.Errorf("expected unit cents 150050, got %d", gotInput.UnitCents)
	}

	var resp itemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCents != 300100 {
		t.Errorf("expected total 300100, got %d", resp.TotalCents)
	}
	if resp.Display == "" {
		t.Error("expected formatted display string")
	}
}

func TestBudgetCreateItem_ValidationError(t *testing.T) {
	t.Parallel()

	h := NewBudgetHandler(&budgetServiceMock{
		CreateItemFunc: func(_ context.Context, _ budget.CreateItemInput) (*domain.BudgetLineItem, error) {
			return nil, domain.NewValidationError("unit_cents", "must not be negative")
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/budget/items", bytes.NewReader([]byte(`{"unitCents":-1}`)))
	rec := httptest.NewRecorder()

	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBudgetGetItem_NotFound(t *testing.T) {
	t.Parallel()

	h := NewBudgetHandler(&budgetServiceMock{
		GetItemFunc: func(_ context.Context, _ uuid.UUID) (*domain.BudgetLineItem, error) {
			return nil, domain.ErrNotFound
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/budget/items/x", nil)
	req.SetPathValue("itemID", uuid.New().String())
	rec := httptest.NewRecorder()

	h.GetItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBudgetListByScope_PassesFilter(t *testing.T) {
	t.Parallel()

	refID := uuid.New()

	var gotScope domain.BudgetScope
	var gotFilter domain.BudgetItemFilter
	h := NewBudgetHandler(&budgetServiceMock{
		ListByScopeFunc: func(_ context.Context, scope domain.BudgetScope, _ uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error) {
			gotScope = scope
			gotFilter = filter
			return nil, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/budget/scene/"+refID.String()+"/items?category=art&currency=EUR", nil)
	req.SetPathValue("scope", "scene")
	req.SetPathValue("refID", refID.String())
	rec := httptest.NewRecorder()

	h.ListByScope(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotScope != domain.ScopeScene {
		t.Errorf("expected scope scene, got %s", gotScope)
	}
	if gotFilter.Category != "art" || gotFilter.Currency != "EUR" {
		t.Errorf("unexpected filter: %+v", gotFilter)
	}
}

func TestBudgetProjectTotals_OK(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	h := NewBudgetHandler(&budgetServiceMock{
		CalculateProjectTotalsFunc: func(_ context.Context, _ uuid.UUID) (domain.BudgetTotals, error) {
			return domain.BudgetTotals{
				TotalCents:    342699,
				Currency:      "USD",
				LineItemCount: 2,
				Categories: []domain.CategoryTotal{
					{Category: "equipment", Cents: 300100},
					{Category: "art", Cents: 42599},
				},
			}, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/budget/totals", nil)
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()

	h.ProjectTotals(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp totalsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCents != 342699 {
		t.Errorf("expected total 342699, got %d", resp.TotalCents)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(resp.Categories))
	}
	if resp.Categories[0].Category != "equipment" {
		t.Errorf("expected first-seen category order, got %+v", resp.Categories)
	}
}

func TestBudgetUpdateItem_ForwardsPatch(t *testing.T) {
	t.Parallel()

	item := sampleItem(uuid.New())

	var gotPatch domain.BudgetItemPatch
	h := NewBudgetHandler(&budgetServiceMock{
		UpdateItemFunc: func(_ context.Context, _ uuid.UUID, patch domain.BudgetItemPatch) (*domain.BudgetLineItem, error) {
			gotPatch = patch
			return item, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/budget/items/x", bytes.NewReader([]byte(`{"qty":5}`)))
	req.SetPathValue("itemID", item.ID.String())
	rec := httptest.NewRecorder()

	h.UpdateItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotPatch.Qty == nil || *gotPatch.Qty != 5 {
		t.Errorf("expected qty patch 5, got %v", gotPatch.Qty)
	}
	if gotPatch.Description != nil {
		t.Error("expected omitted fields to stay nil")
	}
}
