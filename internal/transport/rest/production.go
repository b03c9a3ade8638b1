package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/production"
)

// productionService defines the minimal interface needed by ProductionHandler.
type productionService interface {
	CreateScene(ctx context.Context, input production.CreateSceneInput) (*domain.Scene, error)
	GetScene(ctx context.Context, sceneID uuid.UUID) (*domain.Scene, error)
	ListScenes(ctx context.Context, projectID uuid.UUID) ([]domain.Scene, error)
	UpdateScene(ctx context.Context, sceneID uuid.UUID, input production.UpdateSceneInput) (*domain.Scene, error)
	DeleteScene(ctx context.Context, sceneID uuid.UUID) error

	CreateElement(ctx context.Context, input production.CreateElementInput) (*domain.Element, error)
	GetElement(ctx context.Context, elementID uuid.UUID) (*domain.Element, error)
	ListElements(ctx context.Context, projectID uuid.UUID, elementType domain.ElementType) ([]domain.Element, error)
	DeleteElement(ctx context.Context, elementID uuid.UUID) error

	CreateScript(ctx context.Context, input production.CreateScriptInput) (*domain.Script, error)
	GetScript(ctx context.Context, scriptID uuid.UUID) (*domain.Script, error)
	ListScripts(ctx context.Context, projectID uuid.UUID) ([]domain.Script, error)
	UpdateScriptBody(ctx context.Context, scriptID uuid.UUID, body, notes string) (*domain.Script, error)
	DeleteScript(ctx context.Context, scriptID uuid.UUID) error

	CreateCallSheet(ctx context.Context, input production.CreateCallSheetInput) (*domain.CallSheet, error)
	GetCallSheet(ctx context.Context, sheetID uuid.UUID) (*domain.CallSheet, error)
	ListCallSheets(ctx context.Context, projectID uuid.UUID) ([]domain.CallSheet, error)
	DeleteCallSheet(ctx context.Context, sheetID uuid.UUID) error
}

// ProductionHandler serves scene, element, script and call-sheet endpoints.
type ProductionHandler struct {
	svc productionService
	log *slog.Logger
}

func NewProductionHandler(svc productionService, logger *slog.Logger) *ProductionHandler {
	return &ProductionHandler{svc: svc, log: logger.With("handler", "production")}
}

// --- scenes ---

type createSceneRequest struct {
	Slugline     string `json:"slugline"`
	Summary      string `json:"summary"`
	Location     string `json:"location"`
	DurationMins int    `json:"durationMins"`
	Priority     string `json:"priority"`
}

type updateSceneRequest struct {
	Slugline     *string `json:"slugline"`
	Summary      *string `json:"summary"`
	Location     *string `json:"location"`
	DurationMins *int    `json:"durationMins"`
	Priority     *string `json:"priority"`
}

type sceneResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	Slugline     string    `json:"slugline"`
	Summary      string    `json:"summary"`
	Location     string    `json:"location"`
	DurationMins int       `json:"durationMins"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toSceneResponse(s *domain.Scene) sceneResponse {
	return sceneResponse{
		ID:           s.ID.String(),
		ProjectID:    s.ProjectID.String(),
		Slugline:     s.Slugline,
		Summary:      s.Summary,
		Location:     s.Location,
		DurationMins: s.DurationMins,
		Priority:     string(s.Priority),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// CreateScene handles POST /projects/{projectID}/scenes.
func (h *ProductionHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scene, err := h.svc.CreateScene(r.Context(), production.CreateSceneInput{
		ProjectID:    projectID,
		Slugline:     req.Slugline,
		Summary:      req.Summary,
		Location:     req.Location,
		DurationMins: req.DurationMins,
		Priority:     domain.ScenePriority(req.Priority),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSceneResponse(scene))
}

// GetScene handles GET /scenes/{sceneID}.
func (h *ProductionHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := pathUUID(w, r, "sceneID")
	if !ok {
		return
	}

	scene, err := h.svc.GetScene(r.Context(), sceneID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSceneResponse(scene))
}

// ListScenes handles GET /projects/{projectID}/scenes.
func (h *ProductionHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	scenes, err := h.svc.ListScenes(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]sceneResponse, 0, len(scenes))
	for i := range scenes {
		out = append(out, toSceneResponse(&scenes[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateScene handles PATCH /scenes/{sceneID}.
func (h *ProductionHandler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := pathUUID(w, r, "sceneID")
	if !ok {
		return
	}

	var req updateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := production.UpdateSceneInput{
		Slugline:     req.Slugline,
		Summary:      req.Summary,
		Location:     req.Location,
		DurationMins: req.DurationMins,
	}
	if req.Priority != nil {
		p := domain.ScenePriority(*req.Priority)
		input.Priority = &p
	}

	scene, err := h.svc.UpdateScene(r.Context(), sceneID, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSceneResponse(scene))
}

// DeleteScene handles DELETE /scenes/{sceneID}.
func (h *ProductionHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	sceneID, ok := pathUUID(w, r, "sceneID")
	if !ok {
		return
	}

	if err := h.svc.DeleteScene(r.Context(), sceneID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- elements ---

type createElementRequest struct {
	Type           string `json:"type"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Notes          string `json:"notes"`
	EstimatedCents int64  `json:"estimatedCents"`
}

type elementResponse struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"projectId"`
	Type           string    `json:"type"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Notes          string    `json:"notes"`
	EstimatedCents int64     `json:"estimatedCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toElementResponse(e *domain.Element) elementResponse {
	return elementResponse{
		ID:             e.ID.String(),
		ProjectID:      e.ProjectID.String(),
		Type:           string(e.Type),
		Name:           e.Name,
		Description:    e.Description,
		Notes:          e.Notes,
		EstimatedCents: e.EstimatedCents,
		CreatedAt:      e.CreatedAt,
	}
}

// CreateElement handles POST /projects/{projectID}/elements.
func (h *ProductionHandler) CreateElement(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	element, err := h.svc.CreateElement(r.Context(), production.CreateElementInput{
		ProjectID:      projectID,
		Type:           domain.ElementType(req.Type),
		Name:           req.Name,
		Description:    req.Description,
		Notes:          req.Notes,
		EstimatedCents: req.EstimatedCents,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toElementResponse(element))
}

// GetElement handles GET /elements/{elementID}.
func (h *ProductionHandler) GetElement(w http.ResponseWriter, r *http.Request) {
	elementID, ok := pathUUID(w, r, "elementID")
	if !ok {
		return
	}

	element, err := h.svc.GetElement(r.Context(), elementID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toElementResponse(element))
}

// ListElements handles GET /projects/{projectID}/elements?type=prop.
func (h *ProductionHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	elements, err := h.svc.ListElements(r.Context(), projectID,
		domain.ElementType(r.URL.Query().Get("type")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]elementResponse, 0, len(elements))
	for i := range elements {
		out = append(out, toElementResponse(&elements[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteElement handles DELETE /elements/{elementID}.
func (h *ProductionHandler) DeleteElement(w http.ResponseWriter, r *http.Request) {
	elementID, ok := pathUUID(w, r, "elementID")
	if !ok {
		return
	}

	if err := h.svc.DeleteElement(r.Context(), elementID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- scripts ---

type createScriptRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updateScriptRequest struct {
	Body  string `json:"body"`
	Notes string `json:"notes"`
}

type scriptResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toScriptResponse(s *domain.Script) scriptResponse {
	return scriptResponse{
		ID:        s.ID.String(),
		ProjectID: s.ProjectID.String(),
		Title:     s.Title,
		Body:      s.Body,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateScript handles POST /projects/{projectID}/scripts.
func (h *ProductionHandler) CreateScript(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	script, err := h.svc.CreateScript(r.Context(), production.CreateScriptInput{
		ProjectID: projectID,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toScriptResponse(script))
}

// GetScript handles GET /scripts/{scriptID}.
func (h *ProductionHandler) GetScript(w http.ResponseWriter, r *http.Request) {
	scriptID, ok := pathUUID(w, r, "scriptID")
	if !ok {
		return
	}

	script, err := h.svc.GetScript(r.Context(), scriptID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toScriptResponse(script))
}

// ListScripts handles GET /projects/{projectID}/scripts.
func (h *ProductionHandler) ListScripts(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	scripts, err := h.svc.ListScripts(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]scriptResponse, 0, len(scripts))
	for i := range scripts {
		out = append(out, toScriptResponse(&scripts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateScript handles PUT /scripts/{scriptID}.
func (h *ProductionHandler) UpdateScript(w http.ResponseWriter, r *http.Request) {
	scriptID, ok := pathUUID(w, r, "scriptID")
	if !ok {
		return
	}

	var req updateScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	script, err := h.svc.UpdateScriptBody(r.Context(), scriptID, req.Body, req.Notes)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toScriptResponse(script))
}

// DeleteScript handles DELETE /scripts/{scriptID}.
func (h *ProductionHandler) DeleteScript(w http.ResponseWriter, r *http.Request) {
	scriptID, ok := pathUUID(w, r, "scriptID")
	if !ok {
		return
	}

	if err := h.svc.DeleteScript(r.Context(), scriptID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- call sheets ---

type createCallSheetRequest struct {
	ShootDate string          `json:"shootDate"`
	Sheet     json.RawMessage `json:"sheet"`
}

type callSheetResponse struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"projectId"`
	ShootDate string          `json:"shootDate"`
	Sheet     json.RawMessage `json:"sheet"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toCallSheetResponse(cs *domain.CallSheet) callSheetResponse {
	return callSheetResponse{
		ID:        cs.ID.String(),
		ProjectID: cs.ProjectID.String(),
		ShootDate: cs.ShootDate.Format("2006-01-02"),
		Sheet:     cs.Sheet,
		CreatedAt: cs.CreatedAt,
	}
}

// CreateCallSheet handles POST /projects/{projectID}/callsheets.
func (h *ProductionHandler) CreateCallSheet(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createCallSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shootDate, err := time.Parse("2006-01-02", req.ShootDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "shootDate must be YYYY-MM-DD")
		return
	}

	sheet, err := h.svc.CreateCallSheet(r.Context(), production.CreateCallSheetInput{
		ProjectID: projectID,
		ShootDate: shootDate,
		Sheet:     req.Sheet,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCallSheetResponse(sheet))
}

// GetCallSheet handles GET /callsheets/{sheetID}.
func (h *ProductionHandler) GetCallSheet(w http.ResponseWriter, r *http.Request) {
	sheetID, ok := pathUUID(w, r, "sheetID")
	if !ok {
		return
	}

	sheet, err := h.svc.GetCallSheet(r.Context(), sheetID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCallSheetResponse(sheet))
}

// ListCallSheets handles GET /projects/{projectID}/callsheets.
func (h *ProductionHandler) ListCallSheets(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	sheets, err := h.svc.ListCallSheets(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]callSheetResponse, 0, len(sheets))
	for i := range sheets {
		out = append(out, toCallSheetResponse(&sheets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteCallSheet handles DELETE /callsheets/{sheetID}.
func (h *ProductionHandler) DeleteCallSheet(w http.ResponseWriter, r *http.Request) {
	sheetID, ok := pathUUID(w, r, "sheetID")
	if !ok {
		return
	}

	if err := h.svc.DeleteCallSheet(r.Context(), sheetID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
