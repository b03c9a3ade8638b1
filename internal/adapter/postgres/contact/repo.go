// Package contact implements the contact repository using PostgreSQL.
package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const contactColumns = `id, project_id, name, email, phone, role, company, notes, created_at`

// Create inserts a contact and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO contacts (id, project_id, name, email, phone, role, company, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+contactColumns,
		c.ID, c.ProjectID, c.Name, c.Email, c.Phone, c.Role, c.Company, c.Notes, c.CreatedAt,
	)

	created, err := scanContact(row)
	if err != nil {
		return nil, mapError(err, c.ID)
	}
	return created, nil
}

// CreateBatch inserts contacts one by one inside the caller's transaction.
// The first failing row aborts the batch.
func (r *Repo) CreateBatch(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error) {
	created := make([]domain.Contact, 0, len(contacts))
	for i := range contacts {
		c, err := r.Create(ctx, &contacts[i])
		if err != nil {
			return nil, fmt.Errorf("contact %q: %w", contacts[i].Name, err)
		}
		created = append(created, *c)
	}
	return created, nil
}

// GetByID returns a contact by primary key.
func (r *Repo) GetByID(ctx context.Context, contactID uuid.UUID) (*domain.Contact, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, contactID)

	c, err := scanContact(row)
	if err != nil {
		return nil, mapError(err, contactID)
	}
	return c, nil
}

// ListByProject returns all contacts of a project in name order.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE project_id = $1 ORDER BY name, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("list contacts: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// Delete removes a contact.
func (r *Repo) Delete(ctx context.Context, contactID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, contactID)
	if err != nil {
		return mapError(err, contactID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", contactID, domain.ErrNotFound)
	}
	return nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Email, &c.Phone, &c.Role, &c.Company, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "contact", id)
}
