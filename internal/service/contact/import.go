package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ImportResult summarizes one CSV import run. Rows without a name are
// dropped silently and only show up in the Skipped count.
type ImportResult struct {
	Imported []domain.Contact
	Invalid  []domain.ContactRowError
	Skipped  int
}

// recognized header names, matched case-insensitively.
var csvColumns = map[string]int{
	"name":    0,
	"email":   1,
	"phone":   2,
	"role":    3,
	"company": 4,
	"notes":   5,
}

// ImportCSV parses a contact roster and stores the valid rows in one
// transaction. The first line must be a header naming at least a "name"
// column; unrecognized columns are ignored. Duplicate names within the
// file are flagged invalid rather than deduplicated, and an import with
// invalid rows still commits its valid ones.
func (s *Service) ImportCSV(ctx context.Context, projectID uuid.UUID, r io.Reader) (*ImportResult, error) {
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}

	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}

	valid, invalid := domain.ValidateContactRows(rows)

	result := &ImportResult{
		Invalid: invalid,
		Skipped: len(rows) - len(valid) - len(invalid),
	}
	if len(valid) == 0 {
		return result, nil
	}

	now := time.Now().UTC()
	contacts := make([]domain.Contact, 0, len(valid))
	for _, row := range valid {
		contacts = append(contacts, domain.Contact{
			ID:        uuid.New(),
			ProjectID: projectID,
			Name:      strings.TrimSpace(row.Name),
			Email:     strings.TrimSpace(row.Email),
			Phone:     strings.TrimSpace(row.Phone),
			Role:      strings.TrimSpace(row.Role),
			Company:   strings.TrimSpace(row.Company),
			Notes:     strings.TrimSpace(row.Notes),
			CreatedAt: now,
		})
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.contacts.CreateBatch(txCtx, contacts)
		if err != nil {
			return err
		}
		result.Imported = created
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("import contacts: %w", txErr)
	}

	s.log.InfoContext(ctx, "contacts imported",
		"project_id", projectID,
		"imported", len(result.Imported),
		"invalid", len(result.Invalid),
		"skipped", result.Skipped)
	return result, nil
}

// parseCSV reads the roster into rows, mapping columns by header name.
// LineNumber is 1-based counting the header line, matching what a user
// sees in a spreadsheet.
func parseCSV(r io.Reader) ([]domain.ContactRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("file", "is empty")
		}
		return nil, domain.NewValidationError("file", "is not valid CSV")
	}

	// Map file column positions onto the known fields.
	fieldAt := make(map[int]string, len(header))
	hasName := false
	for pos, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, known := csvColumns[name]; known {
			fieldAt[pos] = name
			if name == "name" {
				hasName = true
			}
		}
	}
	if !hasName {
		return nil, domain.NewValidationError("file", "header must contain a name column")
	}

	var rows []domain.ContactRow
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError("file", fmt.Sprintf("line %d is not valid CSV", line))
		}

		row := domain.ContactRow{LineNumber: line}
		for pos, value := range record {
			switch fieldAt[pos] {
			case "name":
				row.Name = value
			case "email":
				row.Email = value
			case "phone":
				row.Phone = value
			case "role":
				row.Role = value
			case "company":
				row.Company = value
			case "notes":
				row.Notes = value
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
