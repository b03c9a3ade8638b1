package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/schedule"
)

// scheduleService defines the minimal interface needed by ScheduleHandler.
type scheduleService interface {
	CreateDay(ctx context.Context, input schedule.CreateDayInput) (*domain.StripDay, error)
	GetDay(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error)
	ListDays(ctx context.Context, projectID uuid.UUID) ([]domain.StripDay, error)
	ReorderWithinDay(ctx context.Context, dayID uuid.UUID, fromIndex, toIndex int) (*domain.StripDay, error)
	MoveBetweenDays(ctx context.Context, input schedule.MoveInput) (*schedule.MoveResult, error)
	SetDayTarget(ctx context.Context, dayID uuid.UUID, targetMins int) (*domain.StripDay, error)
	RefreshDayTotal(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error)
	DeleteDay(ctx context.Context, dayID uuid.UUID) error
}

// ScheduleHandler serves stripboard REST endpoints.
type ScheduleHandler struct {
	svc scheduleService
	log *slog.Logger
}

func NewScheduleHandler(svc scheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, log: logger.With("handler", "schedule")}
}

type createDayRequest struct {
	ShootDate  string      `json:"shootDate"`
	TargetMins *int        `json:"targetMins"`
	SceneOrder []uuid.UUID `json:"sceneOrder"`
}

type reorderRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

type moveRequest struct {
	SourceDayID uuid.UUID `json:"sourceDayId"`
	TargetDayID uuid.UUID `json:"targetDayId"`
	SourceIndex int       `json:"sourceIndex"`
	TargetIndex int       `json:"targetIndex"`
}

type targetRequest struct {
	TargetMins int `json:"targetMins"`
}

type dayResponse struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	ShootDate   string      `json:"shootDate"`
	SceneOrder  []uuid.UUID `json:"sceneOrder"`
	TargetMins  int         `json:"targetMins"`
	TotalMins   int         `json:"totalMins"`
	OverTarget  bool        `json:"overTarget"`
	OverageMins int         `json:"overageMins"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type moveResponse struct {
	Source        dayResponse `json:"source"`
	Target        dayResponse `json:"target"`
	SourceUpdated bool        `json:"sourceUpdated"`
	TargetUpdated bool        `json:"targetUpdated"`
}

func toDayResponse(d *domain.StripDay) dayResponse {
	return dayResponse{
		ID:          d.ID.String(),
		ProjectID:   d.ProjectID.String(),
		ShootDate:   d.ShootDate.Format("2006-01-02"),
		SceneOrder:  d.SceneOrder,
		TargetMins:  d.TargetMins,
		TotalMins:   d.TotalMins,
		OverTarget:  d.IsOverTarget(),
		OverageMins: d.OverageMins(),
		UpdatedAt:   d.UpdatedAt,
	}
}

// Create handles POST /projects/{projectID}/days.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shootDate, err := time.Parse("2006-01-02", req.ShootDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "shootDate must be YYYY-MM-DD")
		return
	}

	day, err := h.svc.CreateDay(r.Context(), schedule.CreateDayInput{
		ProjectID:    projectID,
		ShootDate:    shootDate,
		TargetMins:   req.TargetMins,
		InitialOrder: req.SceneOrder,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDayResponse(day))
}

// Get handles GET /days/{dayID}.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	day, err := h.svc.GetDay(r.Context(), dayID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayResponse(day))
}

// List handles GET /projects/{projectID}/days.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	days, err := h.svc.ListDays(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]dayResponse, 0, len(days))
	for i := range days {
		out = append(out, toDayResponse(&days[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Reorder handles POST /days/{dayID}/reorder.
func (h *ScheduleHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := h.svc.ReorderWithinDay(r.Context(), dayID, req.FromIndex, req.ToIndex)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayResponse(day))
}

// Move handles POST /days/move. A cross-day move issues two independent
// writes; when only one lands, the response still carries both days plus
// per-side flags so the client can see exactly what persisted.
func (h *ScheduleHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.MoveBetweenDays(r.Context(), schedule.MoveInput{
		SourceDayID: req.SourceDayID,
		TargetDayID: req.TargetDayID,
		SourceIndex: req.SourceIndex,
		TargetIndex: req.TargetIndex,
	})

	var moveErr *schedule.MoveError
	if errors.As(err, &moveErr) && result != nil {
		h.log.ErrorContext(r.Context(), "partial move",
			slog.String("side", moveErr.Side),
			slog.String("error", moveErr.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "move partially applied",
			"side":   moveErr.Side,
			"result": toMoveResponse(result),
		})
		return
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMoveResponse(result))
}

func toMoveResponse(result *schedule.MoveResult) moveResponse {
	return moveResponse{
		Source:        toDayResponse(result.Source),
		Target:        toDayResponse(result.Target),
		SourceUpdated: result.SourceUpdated,
		TargetUpdated: result.TargetUpdated,
	}
}

// SetTarget handles PATCH /days/{dayID}/target.
func (h *ScheduleHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day, err := h.svc.SetDayTarget(r.Context(), dayID, req.TargetMins)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayResponse(day))
}

// RefreshTotal handles POST /days/{dayID}/refresh-total. Recomputes the
// cached total after scene-duration edits left it stale.
func (h *ScheduleHandler) RefreshTotal(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	day, err := h.svc.RefreshDayTotal(r.Context(), dayID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayResponse(day))
}

// Delete handles DELETE /days/{dayID}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	if err := h.svc.DeleteDay(r.Context(), dayID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
