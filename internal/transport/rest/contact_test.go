package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/contact"
)

type contactServiceMock struct {
	CreateContactFunc func(ctx context.Context, input contact.CreateContactInput) (*domain.Contact, error)
	ListContactsFunc  func(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error)
	DeleteContactFunc func(ctx context.Context, contactID uuid.UUID) error
	ImportCSVFunc     func(ctx context.Context, projectID uuid.UUID, r io.Reader) (*contact.ImportResult, error)
}

func (m *contactServiceMock) CreateContact(ctx context.Context, input contact.CreateContactInput) (*domain.Contact, error) {
	return m.CreateContactFunc(ctx, input)
}

func (m *contactServiceMock) ListContacts(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error) {
	return m.ListContactsFunc(ctx, projectID)
}

func (m *contactServiceMock) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	return m.DeleteContactFunc(ctx, contactID)
}

func (m *contactServiceMock) ImportCSV(ctx context.Context, projectID uuid.UUID, r io.Reader) (*contact.ImportResult, error) {
	return m.ImportCSVFunc(ctx, projectID, r)
}

func TestContactCreate_OK(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	var got contact.CreateContactInput
	h := NewContactHandler(&contactServiceMock{
		CreateContactFunc: func(_ context.Context, input contact.CreateContactInput) (*domain.Contact, error) {
			got = input
			return &domain.Contact{
				ID:        uuid.New(),
				ProjectID: input.ProjectID,
				Name:      input.Name,
				Role:      input.Role,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}, testLogger())

	body, _ := json.Marshal(map[string]string{
		"name": "Mira Chen",
		"role": "gaffer",
	})
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/contacts", bytes.NewReader(body))
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.ProjectID != projectID || got.Name != "Mira Chen" || got.Role != "gaffer" {
		t.Errorf("unexpected service input: %+v", got)
	}

	var resp contactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Mira Chen" {
		t.Errorf("expected name in response, got %q", resp.Name)
	}
}

func TestContactCreate_ValidationError(t *testing.T) {
	t.Parallel()

	h := NewContactHandler(&contactServiceMock{
		CreateContactFunc: func(_ context.Context, _ contact.CreateContactInput) (*domain.Contact, error) {
			return nil, domain.NewValidationError("name", "required")
		},
	}, testLogger())

	projectID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/contacts", strings.NewReader(`{}`))
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestContactImport_ReportsAllOutcomes(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	h := NewContactHandler(&contactServiceMock{
		ImportCSVFunc: func(_ context.Context, gotProject uuid.UUID, r io.Reader) (*contact.ImportResult, error) {
			if gotProject != projectID {
				t.Errorf("expected project %s, got %s", projectID, gotProject)
			}
			raw, _ := io.ReadAll(r)
			if !strings.HasPrefix(string(raw), "name,email") {
				t.Errorf("expected raw CSV body, got %q", raw)
			}
			return &contact.ImportResult{
				Imported: []domain.Contact{
					{ID: uuid.New(), ProjectID: projectID, Name: "Sam Reyes"},
				},
				Invalid: []domain.ContactRowError{
					{LineNumber: 3, Name: "Sam Reyes", Reason: "duplicate name"},
				},
				Skipped: 1,
			}, nil
		},
	}, testLogger())

	csv := "name,email\nSam Reyes,sam@example.com\nSam Reyes,sam2@example.com\n,noname@example.com\n"
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/contacts/import", strings.NewReader(csv))
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp importResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Imported) != 1 || resp.Imported[0].Name != "Sam Reyes" {
		t.Errorf("unexpected imported rows: %+v", resp.Imported)
	}
	if len(resp.Invalid) != 1 || resp.Invalid[0].LineNumber != 3 || resp.Invalid[0].Reason != "duplicate name" {
		t.Errorf("unexpected invalid rows: %+v", resp.Invalid)
	}
	if resp.Skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", resp.Skipped)
	}
}

func TestContactImport_BadProjectID(t *testing.T) {
	t.Parallel()

	h := NewContactHandler(&contactServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/projects/nope/contacts/import", strings.NewReader("name\n"))
	req.SetPathValue("projectID", "nope")
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestContactDelete_NotFound(t *testing.T) {
	t.Parallel()

	h := NewContactHandler(&contactServiceMock{
		DeleteContactFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}, testLogger())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/contacts/"+id.String(), nil)
	req.SetPathValue("contactID", id.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
