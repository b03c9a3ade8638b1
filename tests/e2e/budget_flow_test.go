//go:build e2e

package e2e_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_BudgetFlow creates line items at two scopes and checks the
// integer-cents rollups.
func TestE2E_BudgetFlow(t *testing.T) {
	ts := setupTestServer(t, "")

	projectID := ts.createProject(t, "Budget Flow")
	sceneID := ts.createScene(t, projectID, "EXT. MARKET - DAY", 40)

	status, item1 := ts.doJSON(t, http.MethodPost, "/budget/items", map[string]any{
		"projectId":   projectID,
		"scope":       "project",
		"refId":       projectID,
		"description": "Camera package",
		"category":    "equipment",
		"qty":         2,
		"unitCents":   150050,
		"currency":    "USD",
	})
	require.Equal(t, http.StatusCreated, status, "create item: %v", item1)
	assert.Equal(t, float64(300100), item1["totalCents"])
	assert.Contains(t, item1["display"], "3,001.00")

	status, item2 := ts.doJSON(t, http.MethodPost, "/budget/items", map[string]any{
		"projectId":   projectID,
		"scope":       "scene",
		"refId":       sceneID,
		"description": "Market stall dressing",
		"category":    "art",
		"qty":         1,
		"unitCents":   42599,
		"currency":    "USD",
	})
	require.Equal(t, http.StatusCreated, status, "create item: %v", item2)

	// Scene-scoped totals only see the scene item.
	status, sceneTotals := ts.doJSON(t, http.MethodGet, fmt.Sprintf("/budget/scene/%s/totals", sceneID), nil)
	require.Equal(t, http.StatusOK, status, "scene totals: %v", sceneTotals)
	assert.Equal(t, float64(42599), sceneTotals["totalCents"])
	assert.Equal(t, float64(1), sceneTotals["lineItemCount"])

	// Project totals roll up both scopes.
	status, projTotals := ts.doJSON(t, http.MethodGet, fmt.Sprintf("/projects/%s/budget/totals", projectID), nil)
	require.Equal(t, http.StatusOK, status, "project totals: %v", projTotals)
	assert.Equal(t, float64(342699), projTotals["totalCents"])
	assert.Equal(t, float64(2), projTotals["lineItemCount"])

	cats := projTotals["categoryBreakdown"].([]any)
	require.Len(t, cats, 2)

	// Patching quantity reprices the item and the rollup.
	status, patched := ts.doJSON(t, http.MethodPatch, fmt.Sprintf("/budget/items/%s", item1["id"]), map[string]any{
		"qty": 1,
	})
	require.Equal(t, http.StatusOK, status, "patch: %v", patched)
	assert.Equal(t, float64(150050), patched["totalCents"])

	status, projTotals = ts.doJSON(t, http.MethodGet, fmt.Sprintf("/projects/%s/budget/totals", projectID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(192649), projTotals["totalCents"])

	// Deleting removes the item from the rollup.
	status, _ = ts.doJSON(t, http.MethodDelete, fmt.Sprintf("/budget/items/%s", item2["id"]), nil)
	require.Equal(t, http.StatusNoContent, status)

	status, projTotals = ts.doJSON(t, http.MethodGet, fmt.Sprintf("/projects/%s/budget/totals", projectID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(150050), projTotals["totalCents"])
	assert.Equal(t, float64(1), projTotals["lineItemCount"])
}

// TestE2E_BudgetValidation verifies bad scope and negative cost are
// rejected with 400.
func TestE2E_BudgetValidation(t *testing.T) {
	ts := setupTestServer(t, "")

	projectID := ts.createProject(t, "Budget Validation")

	status, body := ts.doJSON(t, http.MethodPost, "/budget/items", map[string]any{
		"projectId":   projectID,
		"scope":       "galaxy",
		"refId":       projectID,
		"description": "Bad scope",
		"category":    "misc",
		"qty":         1,
		"unitCents":   100,
	})
	assert.Equal(t, http.StatusBadRequest, status, "bad scope: %v", body)

	status, body = ts.doJSON(t, http.MethodPost, "/budget/items", map[string]any{
		"projectId":   projectID,
		"scope":       "project",
		"refId":       projectID,
		"description": "Negative",
		"category":    "misc",
		"qty":         1,
		"unitCents":   -500,
	})
	assert.Equal(t, http.StatusBadRequest, status, "negative cents: %v", body)
}
