package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/budget"
)

// budgetService defines the minimal interface needed by BudgetHandler.
type budgetService interface {
	CreateItem(ctx context.Context, input budget.CreateItemInput) (*domain.BudgetLineItem, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, patch domain.BudgetItemPatch) (*domain.BudgetLineItem, error)
	ListByScope(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	CalculateScopeTotals(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID) (domain.BudgetTotals, error)
	CalculateProjectTotals(ctx context.Context, projectID uuid.UUID) (domain.BudgetTotals, error)
}

// BudgetHandler serves budget REST endpoints.
type BudgetHandler struct {
	svc budgetService
	log *slog.Logger
}

func NewBudgetHandler(svc budgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{svc: svc, log: logger.With("handler", "budget")}
}

type createItemRequest struct {
	ProjectID   uuid.UUID `json:"projectId"`
	Scope       string    `json:"scope"`
	RefID       uuid.UUID `json:"refId"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Qty         int       `json:"qty"`
	UnitCents   int64     `json:"unitCents"`
	Currency    string    `json:"currency"`
}

type updateItemRequest struct {
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Qty         *int    `json:"qty"`
	UnitCents   *int64  `json:"unitCents"`
	Currency    *string `json:"currency"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Scope       string    `json:"scope"`
	RefID       string    `json:"refId"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Qty         int       `json:"qty"`
	UnitCents   int64     `json:"unitCents"`
	TotalCents  int64     `json:"totalCents"`
	Currency    string    `json:"currency"`
	Display     string    `json:"display"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type totalsResponse struct {
	TotalCents    int64                   `json:"totalCents"`
	Currency      string                  `json:"currency"`
	Display       string                  `json:"display"`
	LineItemCount int                     `json:"lineItemCount"`
	Categories    []categoryTotalResponse `json:"categoryBreakdown"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Cents    int64  `json:"cents"`
}

func toItemResponse(i *domain.BudgetLineItem) itemResponse {
	return itemResponse{
		ID:          i.ID.String(),
		ProjectID:   i.ProjectID.String(),
		Scope:       string(i.Scope),
		RefID:       i.RefID.String(),
		Description: i.Description,
		Category:    i.Category,
		Qty:         i.Qty,
		UnitCents:   i.UnitCents,
		TotalCents:  i.TotalCents,
		Currency:    i.Currency,
		Display:     domain.FormatMoney(i.TotalCents, i.Currency),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toTotalsResponse(t domain.BudgetTotals) totalsResponse {
	cats := make([]categoryTotalResponse, 0, len(t.Categories))
	for _, c := range t.Categories {
		cats = append(cats, categoryTotalResponse{Category: c.Category, Cents: c.Cents})
	}
	return totalsResponse{
		TotalCents:    t.TotalCents,
		Currency:      t.Currency,
		Display:       domain.FormatMoney(t.TotalCents, t.Currency),
		LineItemCount: t.LineItemCount,
		Categories:    cats,
	}
}

// CreateItem handles POST /budget/items.
func (h *BudgetHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateItem(r.Context(), budget.CreateItemInput{
		ProjectID:   req.ProjectID,
		Scope:       domain.BudgetScope(req.Scope),
		RefID:       req.RefID,
		Description: req.Description,
		Category:    req.Category,
		Qty:         req.Qty,
		UnitCents:   req.UnitCents,
		Currency:    req.Currency,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// GetItem handles GET /budget/items/{itemID}.
func (h *BudgetHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), itemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// UpdateItem handles PATCH /budget/items/{itemID}. Omitted fields keep
// their stored values; the total is recomputed from the merged row.
func (h *BudgetHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), itemID, domain.BudgetItemPatch{
		Description: req.Description,
		Category:    req.Category,
		Qty:         req.Qty,
		UnitCents:   req.UnitCents,
		Currency:    req.Currency,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// ListByScope handles GET /budget/{scope}/{refID}/items?category=&currency=.
func (h *BudgetHandler) ListByScope(w http.ResponseWriter, r *http.Request) {
	refID, ok := pathUUID(w, r, "refID")
	if !ok {
		return
	}

	items, err := h.svc.ListByScope(r.Context(),
		domain.BudgetScope(r.PathValue("scope")), refID,
		domain.BudgetItemFilter{
			Category: r.URL.Query().Get("category"),
			Currency: r.URL.Query().Get("currency"),
		})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// ListByProject handles GET /projects/{projectID}/budget/items.
func (h *BudgetHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	items, err := h.svc.ListByProject(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func toItemResponses(items []domain.BudgetLineItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out
}

// ScopeTotals handles GET /budget/{scope}/{refID}/totals.
func (h *BudgetHandler) ScopeTotals(w http.ResponseWriter, r *http.Request) {
	refID, ok := pathUUID(w, r, "refID")
	if !ok {
		return
	}

	totals, err := h.svc.CalculateScopeTotals(r.Context(),
		domain.BudgetScope(r.PathValue("scope")), refID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTotalsResponse(totals))
}

// ProjectTotals handles GET /projects/{projectID}/budget/totals.
func (h *BudgetHandler) ProjectTotals(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	totals, err := h.svc.CalculateProjectTotals(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTotalsResponse(totals))
}

// DeleteItem handles DELETE /budget/items/{itemID}.
func (h *BudgetHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), itemID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
