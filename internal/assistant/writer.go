package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ============================================================================
// Consumer-defined interfaces (private)
// ============================================================================

type sceneWriter interface {
	Create(ctx context.Context, s *domain.Scene) (*domain.Scene, error)
}

type elementWriter interface {
	Create(ctx context.Context, e *domain.Element) (*domain.Element, error)
}

type scriptWriter interface {
	UpdateBody(ctx context.Context, scriptID uuid.UUID, body, notes string) (*domain.Script, error)
}

type sheetWriter interface {
	Create(ctx context.Context, cs *domain.CallSheet) (*domain.CallSheet, error)
}

// CreatedItem identifies one downstream row produced by a fan-out write.
type CreatedItem struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WriteResult reports a fan-out write. Success means some usable output was
// produced; callers inspect both Created and Errors, since any subset of
// items may have failed independently.
type WriteResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Created []CreatedItem `json:"createdItems"`
	Errors  []string      `json:"errors,omitempty"`
}

// WriteContext scopes a fan-out write to its project and, per task, the
// script being reformatted or the shooting date the sheet covers.
type WriteContext struct {
	ProjectID uuid.UUID
	ScriptID  uuid.UUID
	ShootDate time.Time
}

// Writer fans a validated quick-action result out into the production
// stores. Item failures never abort the remaining items.
type Writer struct {
	log      *slog.Logger
	scenes   sceneWriter
	elements elementWriter
	scripts  scriptWriter
	sheets   sheetWriter
}

func NewWriter(log *slog.Logger, scenes sceneWriter, elements elementWriter, scripts scriptWriter, sheets sheetWriter) *Writer {
	return &Writer{
		log:      log.With("component", "assistant_writer"),
		scenes:   scenes,
		elements: elements,
		scripts:  scripts,
		sheets:   sheets,
	}
}

// Write validates raw against the task's shape and dispatches to the
// task-specific writer. Malformed input fails the whole operation; item
// failures inside a writer are accumulated instead.
func (w *Writer) Write(ctx context.Context, task Task, raw json.RawMessage, wc WriteContext) (*WriteResult, error) {
	if !ValidateResult(task, raw) {
		return nil, domain.NewValidationError("result", fmt.Sprintf("missing required keys for task %q", task))
	}

	var res *WriteResult
	switch task {
	case TaskFormatScript:
		res = w.writeFormatScript(ctx, raw, wc)
	case TaskBreakdown:
		res = w.writeBreakdown(ctx, raw, wc)
	case TaskShotlist:
		res = w.writeShotlist(ctx, raw, wc)
	case TaskCallsheet:
		res = w.writeCallsheet(ctx, raw, wc)
	default:
		return nil, fmt.Errorf("unknown task %q", task)
	}

	w.log.InfoContext(ctx, "fan-out write finished",
		"task", task,
		"project_id", wc.ProjectID,
		"created", len(res.Created),
		"errors", len(res.Errors),
	)
	return res, nil
}

// accumulator collects per-item outcomes of a fan-out write.
type accumulator struct {
	created []CreatedItem
	errors  []string
}

func (a *accumulator) ok(itemType string, id uuid.UUID, name string) {
	a.created = append(a.created, CreatedItem{Type: itemType, ID: id, Name: name})
}

func (a *accumulator) fail(itemType, name string, err error) {
	a.errors = append(a.errors, fmt.Sprintf("%s %q: %v", itemType, name, err))
}

func (a *accumulator) result(message string) *WriteResult {
	return &WriteResult{
		Success: len(a.created) > 0,
		Message: message,
		Created: a.created,
		Errors:  a.errors,
	}
}

type formatScriptResult struct {
	FormattedScript string `json:"formattedScript"`
	Issues          []struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Suggestion  string `json:"suggestion"`
		Line        int    `json:"line"`
	} `json:"issues"`
	Improvements []struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Suggestion  string `json:"suggestion"`
	} `json:"improvements"`
}

func (w *Writer) writeFormatScript(ctx context.Context, raw json.RawMessage, wc WriteContext) *WriteResult {
	var acc accumulator
	var res formatScriptResult
	if err := json.Unmarshal(raw, &res); err != nil {
		acc.errors = append(acc.errors, fmt.Sprintf("decode result: %v", err))
		return acc.result("script formatting failed")
	}

	notes := formatNotes(res)
	script, err := w.scripts.UpdateBody(ctx, wc.ScriptID, res.FormattedScript, notes)
	if err != nil {
		acc.fail("script", wc.ScriptID.String(), err)
		return acc.result("script formatting failed")
	}
	acc.ok("script", script.ID, script.Title)
	return acc.result("script formatted")
}

// formatNotes flattens issues and improvements into the script's free-text
// notes field.
func formatNotes(res formatScriptResult) string {
	var b strings.Builder
	for _, is := range res.Issues {
		fmt.Fprintf(&b, "issue [%s] line %d: %s (%s)\n", is.Type, is.Line, is.Description, is.Suggestion)
	}
	for _, im := range res.Improvements {
		fmt.Fprintf(&b, "improvement [%s]: %s (%s)\n", im.Category, im.Description, im.Suggestion)
	}
	return strings.TrimRight(b.String(), "\n")
}

type breakdownResult struct {
	Elements []struct {
		Type          string  `json:"type"`
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		Notes         string  `json:"notes"`
		EstimatedCost float64 `json:"estimatedCost"`
	} `json:"elements"`
	Locations []struct {
		Name          string   `json:"name"`
		Type          string   `json:"type"`
		Description   string   `json:"description"`
		Requirements  []string `json:"requirements"`
		EstimatedCost float64  `json:"estimatedCost"`
	} `json:"locations"`
	Characters []struct {
		Name                string   `json:"name"`
		Description         string   `json:"description"`
		Costume             []string `json:"costume"`
		Props               []string `json:"props"`
		SpecialRequirements string   `json:"specialRequirements"`
	} `json:"characters"`
}

func (w *Writer) writeBreakdown(ctx context.Context, raw json.RawMessage, wc WriteContext) *WriteResult {
	var acc accumulator
	var res breakdownResult
	if err := json.Unmarshal(raw, &res); err != nil {
		acc.errors = append(acc.errors, fmt.Sprintf("decode result: %v", err))
		return acc.result("breakdown failed")
	}

	for _, loc := range res.Locations {
		scene, err := w.scenes.Create(ctx, &domain.Scene{
			ProjectID: wc.ProjectID,
			Slugline:  loc.Name,
			Summary:   loc.Description,
			Location:  loc.Name,
			Priority:  domain.PriorityMedium,
		})
		if err != nil {
			acc.fail("scene", loc.Name, err)
			continue
		}
		acc.ok("scene", scene.ID, scene.Slugline)
	}

	for _, el := range res.Elements {
		elemType := domain.ElementType(el.Type)
		if !domain.ValidElementType(elemType) {
			elemType = domain.ElementProp
		}
		created, err := w.elements.Create(ctx, &domain.Element{
			ProjectID:      wc.ProjectID,
			Type:           elemType,
			Name:           el.Name,
			Description:    el.Description,
			Notes:          el.Notes,
			EstimatedCents: domain.DollarsToCents(el.EstimatedCost),
		})
		if err != nil {
			acc.fail("element", el.Name, err)
			continue
		}
		acc.ok("element", created.ID, created.Name)
	}

	for _, ch := range res.Characters {
		notes := characterNotes(ch.Costume, ch.Props, ch.SpecialRequirements)
		created, err := w.elements.Create(ctx, &domain.Element{
			ProjectID:   wc.ProjectID,
			Type:        domain.ElementCharacter,
			Name:        ch.Name,
			Description: ch.Description,
			Notes:       notes,
		})
		if err != nil {
			acc.fail("character", ch.Name, err)
			continue
		}
		acc.ok("element", created.ID, created.Name)
	}

	return acc.result("breakdown applied")
}

func characterNotes(costume, props []string, special string) string {
	var parts []string
	if len(costume) > 0 {
		parts = append(parts, "costume: "+strings.Join(costume, ", "))
	}
	if len(props) > 0 {
		parts = append(parts, "props: "+strings.Join(props, ", "))
	}
	if special != "" {
		parts = append(parts, special)
	}
	return strings.Join(parts, "; ")
}

type shotlistResult struct {
	Shots []struct {
		ShotNumber  int     `json:"shotNumber"`
		ShotType    string  `json:"shotType"`
		Angle       string  `json:"angle"`
		Movement    string  `json:"movement"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
		Notes       string  `json:"notes"`
		Difficulty  string  `json:"difficulty"`
		Duration    float64 `json:"duration"`
	} `json:"shots"`
	Coverage struct {
		TotalShots        int      `json:"totalShots"`
		EstimatedDuration float64  `json:"estimatedDuration"`
		Complexity        string   `json:"complexity"`
		SpecialEquipment  []string `json:"specialEquipment"`
	} `json:"coverage"`
}

func (w *Writer) writeShotlist(ctx context.Context, raw json.RawMessage, wc WriteContext) *WriteResult {
	var acc accumulator
	var res shotlistResult
	if err := json.Unmarshal(raw, &res); err != nil {
		acc.errors = append(acc.errors, fmt.Sprintf("decode result: %v", err))
		return acc.result("shotlist failed")
	}

	for _, shot := range res.Shots {
		name := fmt.Sprintf("Shot %d: %s %s", shot.ShotNumber, shot.ShotType, shot.Angle)
		desc := shot.Description
		if shot.Location != "" {
			desc = fmt.Sprintf("%s (at %s)", desc, shot.Location)
		}
		created, err := w.elements.Create(ctx, &domain.Element{
			ProjectID:   wc.ProjectID,
			Type:        domain.ElementShot,
			Name:        name,
			Description: desc,
			Notes:       shotNotes(shot.Movement, shot.Difficulty, shot.Notes),
		})
		if err != nil {
			acc.fail("shot", name, err)
			continue
		}
		acc.ok("element", created.ID, created.Name)
	}

	summaryName := fmt.Sprintf("Coverage: %d shots", res.Coverage.TotalShots)
	summary, err := w.elements.Create(ctx, &domain.Element{
		ProjectID: wc.ProjectID,
		Type:      domain.ElementTechnical,
		Name:      summaryName,
		Description: fmt.Sprintf("estimated %.0f min, complexity %s",
			res.Coverage.EstimatedDuration, res.Coverage.Complexity),
		Notes: strings.Join(res.Coverage.SpecialEquipment, ", "),
	})
	if err != nil {
		acc.fail("coverage", summaryName, err)
	} else {
		acc.ok("element", summary.ID, summary.Name)
	}

	return acc.result("shotlist applied")
}

func shotNotes(movement, difficulty, notes string) string {
	var parts []string
	if movement != "" {
		parts = append(parts, "movement: "+movement)
	}
	if difficulty != "" {
		parts = append(parts, "difficulty: "+difficulty)
	}
	if notes != "" {
		parts = append(parts, notes)
	}
	return strings.Join(parts, "; ")
}

func (w *Writer) writeCallsheet(ctx context.Context, raw json.RawMessage, wc WriteContext) *WriteResult {
	var acc accumulator

	shootDate := wc.ShootDate
	if shootDate.IsZero() {
		shootDate = callsheetDate(raw)
	}

	sheet, err := w.sheets.Create(ctx, &domain.CallSheet{
		ProjectID: wc.ProjectID,
		ShootDate: shootDate,
		Sheet:     raw,
	})
	if err != nil {
		acc.fail("call sheet", shootDate.Format("2006-01-02"), err)
		return acc.result("call sheet failed")
	}
	acc.ok("call_sheet", sheet.ID, shootDate.Format("2006-01-02"))
	return acc.result("call sheet created")
}

// callsheetDate digs the shoot date out of the generated sheet. Falls back
// to today when the model produced no parseable date.
func callsheetDate(raw json.RawMessage) time.Time {
	var res struct {
		Production struct {
			Date string `json:"date"`
		} `json:"production"`
	}
	if err := json.Unmarshal(raw, &res); err == nil {
		if d, err := time.Parse("2006-01-02", res.Production.Date); err == nil {
			return d
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}
