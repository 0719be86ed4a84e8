package bill

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type mockBillService struct {
	mock.Mock
}

func (m *mockBillService) CreateBill(ctx context.Context, bill *sqlconfig.Bill) (uuid.UUID, error) {
	args := m.Called(ctx, bill)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockBillService) UpdateBill(ctx context.Context, bill *sqlconfig.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *mockBillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBillService) GetBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*sqlconfig.Bill)
	return b, args.Error(1)
}

func (m *mockBillService) ListBills(ctx context.Context) ([]*sqlconfig.Bill, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]*sqlconfig.Bill)
	return b, args.Error(1)
}

func (m *mockBillService) PayBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*sqlconfig.Bill)
	return b, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockBillService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateBill(t *testing.T) {
	svc := new(mockBillService)
	svc.On("CreateBill", mock.Anything, mock.MatchedBy(func(b *sqlconfig.Bill) bool {
		return b.Name == "Rent" &&
			b.Cadence == sqlconfig.CadenceMonthly &&
			b.NextDueDate.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) &&
			b.AutoPay
	})).Return(uuid.Must(uuid.NewV4()), nil)

	resp := newTestAPI(t, svc).Post("/v1/bill", BillBody{
		Name: "Rent", Amount: "1500", NextDueDate: "2025-07-01", Cadence: "monthly", AutoPay: true,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateBill_BadCadence(t *testing.T) {
	svc := new(mockBillService)

	resp := newTestAPI(t, svc).Post("/v1/bill", BillBody{
		Name: "Rent", Amount: "1500", NextDueDate: "2025-07-01", Cadence: "fortnightly",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateBill")
}

func TestHTTP_PayBill_Advances(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBillService)
	svc.On("PayBill", mock.Anything, id).Return(&sqlconfig.Bill{
		ID:          id,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1500),
		NextDueDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Cadence:     sqlconfig.CadenceMonthly,
	}, nil)

	resp := newTestAPI(t, svc).Post("/v1/bill/" + id.String() + "/pay")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Bill
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2025-08-01", body.NextDueDate)
	assert.False(t, body.Paid)
}

func TestHTTP_PayBill_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBillService)
	svc.On("PayBill", mock.Anything, id).Return(nil, service.ErrNotFound)

	resp := newTestAPI(t, svc).Post("/v1/bill/" + id.String() + "/pay")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_ListUpdateDeleteBill(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBillService)
	svc.On("ListBills", mock.Anything).Return([]*sqlconfig.Bill{{ID: id, Name: "Rent", Cadence: sqlconfig.CadenceOnce, Paid: true}}, nil)
	svc.On("GetBill", mock.Anything, id).Return(&sqlconfig.Bill{ID: id, Name: "Rent"}, nil)
	svc.On("UpdateBill", mock.Anything, mock.MatchedBy(func(b *sqlconfig.Bill) bool { return b.ID == id })).Return(nil)
	svc.On("DeleteBill", mock.Anything, id).Return(nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/v1/bills")
	assert.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		Bills []Bill `json:"bills"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Bills, 1)
	assert.True(t, list.Bills[0].Paid)

	assert.Equal(t, http.StatusOK, api.Get("/v1/bill/"+id.String()).Code)
	assert.Equal(t, http.StatusNoContent, api.Put("/v1/bill/"+id.String(), BillBody{
		Name: "Rent", Amount: "1600", NextDueDate: "2025-07-01", Cadence: "monthly",
	}).Code)
	assert.Equal(t, http.StatusNoContent, api.Delete("/v1/bill/"+id.String()).Code)
	svc.AssertExpectations(t)
}
