package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a crew or cast contact attached to a project.
type Contact struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Email     string
	Phone     string
	Role      string
	Company   string
	Notes     string
	CreatedAt time.Time
}

// ContactRow is one parsed CSV import row, before validation.
type ContactRow struct {
	LineNumber int
	Name       string
	Email      string
	Phone      string
	Role       string
	Company    string
	Notes      string
}

// ContactRowError flags one rejected import row.
type ContactRowError struct {
	LineNumber int
	Name       string
	Reason     string
}

// ValidateContactRows splits rows into importable and rejected sets.
// Rows without a name are dropped silently (matching the import contract);
// duplicate names are compared case-insensitively and every later duplicate
// is flagged invalid rather than deduplicated.
func ValidateContactRows(rows []ContactRow) (valid []ContactRow, invalid []ContactRowError) {
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			invalid = append(invalid, ContactRowError{
				LineNumber: row.LineNumber,
				Name:       row.Name,
				Reason:     "duplicate name",
			})
			continue
		}
		seen[key] = true
		valid = append(valid, row)
	}

	return valid, invalid
}
