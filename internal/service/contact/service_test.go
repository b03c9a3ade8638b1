package contact

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockContactRepo struct {
	CreateFunc        func(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	CreateBatchFunc   func(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error)
	ListByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error)
	DeleteFunc        func(ctx context.Context, contactID uuid.UUID) error
}

func (m *mockContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c, nil
}

func (m *mockContactRepo) CreateBatch(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, contacts)
	}
	return contacts, nil
}

func (m *mockContactRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Contact, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockContactRepo) Delete(ctx context.Context, contactID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, contactID)
	}
	return domain.ErrNotFound
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func newTestService() (*Service, *mockContactRepo) {
	contacts := &mockContactRepo{}
	return NewService(slog.Default(), contacts, &mockTxManager{}), contacts
}

// ===========================================================================
// ImportCSV tests
// ===========================================================================

const sampleCSV = `name,email,phone,role,company,notes
Ada Chen,ada@example.com,555-0100,1st AD,,
Marcus Webb,marcus@example.com,,Gaffer,GripCo,day rate
,no-name@example.com,,,,
ada chen,dupe@example.com,,,,
`

func TestService_ImportCSV_SplitsValidInvalidSkipped(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	result, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, result.Imported, 2)
	assert.Equal(t, "Ada Chen", result.Imported[0].Name)
	assert.Equal(t, "Marcus Webb", result.Imported[1].Name)

	require.Len(t, result.Invalid, 1)
	assert.Equal(t, 5, result.Invalid[0].LineNumber)
	assert.Equal(t, "duplicate name", result.Invalid[0].Reason)

	assert.Equal(t, 1, result.Skipped, "the nameless row is dropped silently")
}

func TestService_ImportCSV_ColumnOrderIrrelevant(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	csvData := "role,name\nDirector,Priya Nair\n"
	result, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)
	assert.Equal(t, "Priya Nair", result.Imported[0].Name)
	assert.Equal(t, "Director", result.Imported[0].Role)
}

func TestService_ImportCSV_MissingNameColumn(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader("email,phone\na@b.c,1\n"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ImportCSV_EmptyFile(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader(""))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ImportCSV_HeaderOnly(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	result, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader("name,email\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Invalid)
	assert.Zero(t, result.Skipped)
}

func TestService_ImportCSV_BatchFailureAbortsImport(t *testing.T) {
	t.Parallel()
	svc, contacts := newTestService()

	repoErr := errors.New("insert failed")
	contacts.CreateBatchFunc = func(_ context.Context, _ []domain.Contact) ([]domain.Contact, error) {
		return nil, repoErr
	}

	_, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader("name\nAda Chen\n"))
	require.ErrorIs(t, err, repoErr)
}

// ===========================================================================
// CreateContact tests
// ===========================================================================

func TestService_CreateContact_RequiresName(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.CreateContact(context.Background(), CreateContactInput{ProjectID: uuid.New()})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_CreateContact_HappyPath(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	created, err := svc.CreateContact(context.Background(), CreateContactInput{
		ProjectID: uuid.New(),
		Name:      "Sam Ortiz",
		Role:      "DP",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Sam Ortiz", created.Name)
}
