// Package seeder populates a database with a complete demo production:
// one project with a script, scenes, breakdown elements, stripboard days,
// budget line items, and a crew contact list. It is intended to be run
// offline against a fresh database, not as part of the main server.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	budgetsvc "github.com/slateroom/preprod-backend/internal/service/budget"
	contactsvc "github.com/slateroom/preprod-backend/internal/service/contact"
	productionsvc "github.com/slateroom/preprod-backend/internal/service/production"
	projectsvc "github.com/slateroom/preprod-backend/internal/service/project"
	schedulesvc "github.com/slateroom/preprod-backend/internal/service/schedule"
)

// Pipeline seeds demo data through the regular service layer so every row
// passes the same validation the API applies.
type Pipeline struct {
	log        *slog.Logger
	projects   *projectsvc.Service
	production *productionsvc.Service
	schedule   *schedulesvc.Service
	budget     *budgetsvc.Service
	contacts   *contactsvc.Service
}

func NewPipeline(
	log *slog.Logger,
	projects *projectsvc.Service,
	production *productionsvc.Service,
	schedule *schedulesvc.Service,
	budget *budgetsvc.Service,
	contacts *contactsvc.Service,
) *Pipeline {
	return &Pipeline{
		log:        log.With("component", "seeder"),
		projects:   projects,
		production: production,
		schedule:   schedule,
		budget:     budget,
		contacts:   contacts,
	}
}

// Run creates the demo project and everything under it. The first shoot day
// starts on firstShootDate; subsequent days follow consecutively.
func (p *Pipeline) Run(ctx context.Context, projectName string, firstShootDate time.Time) error {
	project, err := p.projects.CreateProject(ctx, projectName)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	p.log.InfoContext(ctx, "project created", "project_id", project.ID, "name", project.Name)

	if _, err := p.production.CreateScript(ctx, productionsvc.CreateScriptInput{
		ProjectID: project.ID,
		Title:     demoScriptTitle,
		Body:      demoScriptBody,
	}); err != nil {
		return fmt.Errorf("create script: %w", err)
	}

	sceneIDs, err := p.seedScenes(ctx, project.ID)
	if err != nil {
		return err
	}
	if err := p.seedElements(ctx, project.ID); err != nil {
		return err
	}
	if err := p.seedDays(ctx, project.ID, sceneIDs, firstShootDate); err != nil {
		return err
	}
	if err := p.seedBudget(ctx, project.ID, sceneIDs); err != nil {
		return err
	}
	if err := p.seedContacts(ctx, project.ID); err != nil {
		return err
	}

	p.log.InfoContext(ctx, "demo project seeded", "project_id", project.ID)
	return nil
}

func (p *Pipeline) seedScenes(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(demoScenes))
	for _, sc := range demoScenes {
		created, err := p.production.CreateScene(ctx, productionsvc.CreateSceneInput{
			ProjectID:    projectID,
			Slugline:     sc.slugline,
			Summary:      sc.summary,
			Location:     sc.location,
			DurationMins: sc.durationMins,
			Priority:     sc.priority,
		})
		if err != nil {
			return nil, fmt.Errorf("create scene %q: %w", sc.slugline, err)
		}
		ids = append(ids, created.ID)
	}
	p.log.InfoContext(ctx, "scenes seeded", "count", len(ids))
	return ids, nil
}

func (p *Pipeline) seedElements(ctx context.Context, projectID uuid.UUID) error {
	for _, el := range demoElements {
		if _, err := p.production.CreateElement(ctx, productionsvc.CreateElementInput{
			ProjectID:      projectID,
			Type:           el.typ,
			Name:           el.name,
			Description:    el.description,
			EstimatedCents: el.estimatedCents,
		}); err != nil {
			return fmt.Errorf("create element %q: %w", el.name, err)
		}
	}
	p.log.InfoContext(ctx, "elements seeded", "count", len(demoElements))
	return nil
}

// seedDays splits the scenes across consecutive shoot days, three per day.
func (p *Pipeline) seedDays(ctx context.Context, projectID uuid.UUID, sceneIDs []uuid.UUID, first time.Time) error {
	const scenesPerDay = 3
	day := 0
	for start := 0; start < len(sceneIDs); start += scenesPerDay {
		end := start + scenesPerDay
		if end > len(sceneIDs) {
			end = len(sceneIDs)
		}
		if _, err := p.schedule.CreateDay(ctx, schedulesvc.CreateDayInput{
			ProjectID:    projectID,
			ShootDate:    first.AddDate(0, 0, day),
			InitialOrder: sceneIDs[start:end],
		}); err != nil {
			return fmt.Errorf("create day %d: %w", day+1, err)
		}
		day++
	}
	p.log.InfoContext(ctx, "stripboard days seeded", "count", day)
	return nil
}

func (p *Pipeline) seedBudget(ctx context.Context, projectID uuid.UUID, sceneIDs []uuid.UUID) error {
	for i, item := range demoBudgetItems {
		// Spread scene-scoped items across the seeded scenes.
		refID := projectID
		scope := domain.ScopeProject
		if item.sceneScoped && len(sceneIDs) > 0 {
			refID = sceneIDs[i%len(sceneIDs)]
			scope = domain.ScopeScene
		}
		if _, err := p.budget.CreateItem(ctx, budgetsvc.CreateItemInput{
			ProjectID:   projectID,
			Scope:       scope,
			RefID:       refID,
			Description: item.description,
			Category:    item.category,
			Qty:         item.qty,
			UnitCents:   item.unitCents,
			Currency:    item.currency,
		}); err != nil {
			return fmt.Errorf("create budget item %q: %w", item.description, err)
		}
	}
	p.log.InfoContext(ctx, "budget items seeded", "count", len(demoBudgetItems))
	return nil
}

func (p *Pipeline) seedContacts(ctx context.Context, projectID uuid.UUID) error {
	for _, c := range demoContacts {
		if _, err := p.contacts.CreateContact(ctx, contactsvc.CreateContactInput{
			ProjectID: projectID,
			Name:      c.name,
			Email:     c.email,
			Phone:     c.phone,
			Role:      c.role,
		}); err != nil {
			return fmt.Errorf("create contact %q: %w", c.name, err)
		}
	}
	p.log.InfoContext(ctx, "contacts seeded", "count", len(demoContacts))
	return nil
}
