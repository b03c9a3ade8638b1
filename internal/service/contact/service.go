// Package contact manages project contacts, including CSV roster import.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type contactRepo interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	CreateBatch(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error)
	Delete(ctx context.Context, contactID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements contact business logic.
type Service struct {
	log      *slog.Logger
	contacts contactRepo
	tx       txManager
}

// NewService creates a new Contact service.
func NewService(logger *slog.Logger, contacts contactRepo, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "contact"),
		contacts: contacts,
		tx:       tx,
	}
}

// CreateContact stores one contact.
func (s *Service) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Contact{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Role:      input.Role,
		Company:   input.Company,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.contacts.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

// ListContacts returns a project's contacts in name order.
func (s *Service) ListContacts(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error) {
	contacts, err := s.contacts.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// DeleteContact removes a contact.
func (s *Service) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	if err := s.contacts.Delete(ctx, contactID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
