package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateElement creates a catalog element.
func (s *Service) CreateElement(ctx context.Context, input CreateElementInput) (*domain.Element, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	element := &domain.Element{
		ID:             uuid.New(),
		ProjectID:      input.ProjectID,
		Type:           input.Type,
		Name:           input.Name,
		Description:    input.Description,
		Notes:          input.Notes,
		EstimatedCents: input.EstimatedCents,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.elements.Create(ctx, element)
	if err != nil {
		return nil, fmt.Errorf("create element: %w", err)
	}

	s.log.InfoContext(ctx, "element created",
		"element_id", created.ID, "type", created.Type, "name", created.Name)
	return created, nil
}

// GetElement returns one element.
func (s *Service) GetElement(ctx context.Context, elementID uuid.UUID) (*domain.Element, error) {
	element, err := s.elements.GetByID(ctx, elementID)
	if err != nil {
		return nil, fmt.Errorf("get element: %w", err)
	}
	return element, nil
}

// ListElements returns a project's elements, optionally narrowed to one type.
func (s *Service) ListElements(ctx context.Context, projectID uuid.UUID, elementType domain.ElementType) ([]domain.Element, error) {
	elements, err := s.elements.ListByProject(ctx, projectID, elementType)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	return elements, nil
}

// DeleteElement removes an element. Budget items scoped to it keep their
// dangling ref.
func (s *Service) DeleteElement(ctx context.Context, elementID uuid.UUID) error {
	if err := s.elements.Delete(ctx, elementID); err != nil {
		return fmt.Errorf("delete element: %w", err)
	}
	s.log.InfoContext(ctx, "element deleted", "element_id", elementID)
	return nil
}
