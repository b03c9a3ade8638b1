package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateCallSheet stores a generated call sheet document.
func (s *Service) CreateCallSheet(ctx context.Context, input CreateCallSheetInput) (*domain.CallSheet, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sheet := &domain.CallSheet{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		ShootDate: input.ShootDate,
		Sheet:     input.Sheet,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.sheets.Create(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("create call sheet: %w", err)
	}

	s.log.InfoContext(ctx, "call sheet created",
		"sheet_id", created.ID, "project_id", created.ProjectID, "shoot_date", created.ShootDate)
	return created, nil
}

// GetCallSheet returns one call sheet.
func (s *Service) GetCallSheet(ctx context.Context, sheetID uuid.UUID) (*domain.CallSheet, error) {
	sheet, err := s.sheets.GetByID(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("get call sheet: %w", err)
	}
	return sheet, nil
}

// ListCallSheets returns a project's call sheets in shoot date order.
func (s *Service) ListCallSheets(ctx context.Context, projectID uuid.UUID) ([]domain.CallSheet, error) {
	sheets, err := s.sheets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list call sheets: %w", err)
	}
	return sheets, nil
}

// DeleteCallSheet removes a call sheet.
func (s *Service) DeleteCallSheet(ctx context.Context, sheetID uuid.UUID) error {
	if err := s.sheets.Delete(ctx, sheetID); err != nil {
		return fmt.Errorf("delete call sheet: %w", err)
	}
	s.log.InfoContext(ctx, "call sheet deleted", "sheet_id", sheetID)
	return nil
}
