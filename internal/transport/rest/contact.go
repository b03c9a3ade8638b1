package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
	"github.com/slateroom/preprod-backend/internal/service/contact"
)

// contactService defines the minimal interface needed by ContactHandler.
type contactService interface {
	CreateContact(ctx context.Context, input contact.CreateContactInput) (*domain.Contact, error)
	ListContacts(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, contactID uuid.UUID) error
	ImportCSV(ctx context.Context, projectID uuid.UUID, r io.Reader) (*contact.ImportResult, error)
}

// ContactHandler serves contact REST endpoints.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contact")}
}

type createContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type importRowError struct {
	LineNumber int    `json:"lineNumber"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
}

type importResponse struct {
	Imported []contactResponse `json:"imported"`
	Invalid  []importRowError  `json:"invalid"`
	Skipped  int               `json:"skipped"`
}

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID.String(),
		ProjectID: c.ProjectID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      c.Role,
		Company:   c.Company,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

// Create handles POST /projects/{projectID}/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateContact(r.Context(), contact.CreateContactInput{
		ProjectID: projectID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		Company:   req.Company,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactResponse(c))
}

// List handles GET /projects/{projectID}/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	contacts, err := h.svc.ListContacts(r.Context(), projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, toContactResponse(&contacts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Import handles POST /projects/{projectID}/contacts/import. The request
// body is the raw CSV document.
func (h *ContactHandler) Import(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	result, err := h.svc.ImportCSV(r.Context(), projectID, r.Body)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := importResponse{
		Imported: make([]contactResponse, 0, len(result.Imported)),
		Invalid:  make([]importRowError, 0, len(result.Invalid)),
		Skipped:  result.Skipped,
	}
	for i := range result.Imported {
		resp.Imported = append(resp.Imported, toContactResponse(&result.Imported[i]))
	}
	for _, e := range result.Invalid {
		resp.Invalid = append(resp.Invalid, importRowError{
			LineNumber: e.LineNumber,
			Name:       e.Name,
			Reason:     e.Reason,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /contacts/{contactID}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	contactID, ok := pathUUID(w, r, "contactID")
	if !ok {
		return
	}

	if err := h.svc.DeleteContact(r.Context(), contactID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
