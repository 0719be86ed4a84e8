package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/notify"
)

type mockImporter struct {
	mock.Mock
}

func (m *mockImporter) Preview(ctx context.Context, kind notify.Kind, filename string, data []byte) (*importer.Preview, error) {
	args := m.Called(ctx, kind, filename, data)
	p, _ := args.Get(0).(*importer.Preview)
	return p, args.Error(1)
}

func (m *mockImporter) ApplyPreview(ctx context.Context, id uuid.UUID) (*importer.ApplyResult, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*importer.ApplyResult)
	return r, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockImporter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc, 0).Register(api)
	return api
}

const csvBody = "id,name,type\n,Checking,bank\n"

func TestHTTP_PreviewImport(t *testing.T) {
	previewID := uuid.Must(uuid.NewV4())
	svc := new(mockImporter)
	svc.On("Preview", mock.Anything, notify.KindAccounts, "accounts.csv", []byte(csvBody)).Return(&importer.Preview{
		ID:        previewID,
		Kind:      notify.KindAccounts,
		Filename:  "accounts.csv",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Rows: []importer.RowResult{
			{Line: 2, Action: importer.ActionUpdate, ID: "a", Changes: []importer.Change{{Field: "name", Before: "Chk", After: "Checking"}}},
			{Line: 3, Action: importer.ActionError, Errors: []string{"name is required"}},
		},
		Counts: importer.Counts{Update: 1, Error: 1},
	}, nil)

	resp := newTestAPI(t, svc).Post("/v1/import/accounts?filename=accounts.csv",
		"Content-Type: application/octet-stream", bytes.NewReader([]byte(csvBody)))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Preview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, previewID.String(), body.ID)
	assert.Equal(t, Counts{Update: 1, Error: 1}, body.Counts)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, []Change{{Field: "name", Before: "Chk", After: "Checking"}}, body.Rows[0].Changes)
	assert.Equal(t, []string{"name is required"}, body.Rows[1].Errors)
	svc.AssertExpectations(t)
}

func TestHTTP_PreviewImport_UnsupportedFile(t *testing.T) {
	svc := new(mockImporter)
	svc.On("Preview", mock.Anything, notify.KindGoals, "goals.pdf", mock.Anything).
		Return(nil, fmt.Errorf("%w: .pdf", importer.ErrUnsupportedFile))

	resp := newTestAPI(t, svc).Post("/v1/import/goals?filename=goals.pdf",
		"Content-Type: application/octet-stream", bytes.NewReader([]byte("%PDF")))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_PreviewImport_UnknownKind(t *testing.T) {
	svc := new(mockImporter)

	resp := newTestAPI(t, svc).Post("/v1/import/widgets?filename=w.csv",
		"Content-Type: application/octet-stream", bytes.NewReader([]byte(csvBody)))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Preview")
}

func TestHTTP_ApplyImport(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockImporter)
	svc.On("ApplyPreview", mock.Anything, id).Return(&importer.ApplyResult{
		Proceeded: true,
		Added:     2,
		Failed:    1,
		Failures:  []importer.RowFailure{{Line: 4, Message: "account does not exist"}},
	}, nil)

	resp := newTestAPI(t, svc).Post("/v1/import/preview/" + id.String() + "/apply")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Proceeded bool      `json:"proceeded"`
		Added     int       `json:"added"`
		Failed    int       `json:"failed"`
		Failures  []Failure `json:"failures"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Proceeded)
	assert.Equal(t, 2, body.Added)
	assert.Equal(t, []Failure{{Line: 4, Message: "account does not exist"}}, body.Failures)
}

func TestHTTP_ApplyImport_Refused(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockImporter)
	svc.On("ApplyPreview", mock.Anything, id).
		Return(&importer.ApplyResult{}, fmt.Errorf("%w: 1 of 3 rows", importer.ErrPreviewHasErrors))

	resp := newTestAPI(t, svc).Post("/v1/import/preview/" + id.String() + "/apply")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_ApplyImport_Expired(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockImporter)
	svc.On("ApplyPreview", mock.Anything, id).Return(nil, importer.ErrPreviewNotFound)

	resp := newTestAPI(t, svc).Post("/v1/import/preview/" + id.String() + "/apply")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_PreviewImport_LargeFile(t *testing.T) {
	workbook := bytes.Repeat([]byte{'x'}, 3<<20)
	svc := new(mockImporter)
	svc.On("Preview", mock.Anything, notify.KindTransactions, "ledger.xlsx", workbook).Return(&importer.Preview{
		ID:       uuid.Must(uuid.NewV4()),
		Kind:     notify.KindTransactions,
		Filename: "ledger.xlsx",
	}, nil)
	_, api := humatest.New(t)
	NewHandler(svc, 8<<20).Register(api)

	resp := api.Post("/v1/import/transactions?filename=ledger.xlsx",
		"Content-Type: application/octet-stream", bytes.NewReader(workbook))

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}
