package budget

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

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, budget *sqlconfig.Budget) (uuid.UUID, error) {
	args := m.Called(ctx, budget)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, budget *sqlconfig.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*service.BudgetStatus, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*service.BudgetStatus)
	return s, args.Error(1)
}

func (m *mockBudgetService) ListBudgets(ctx context.Context) ([]*service.BudgetStatus, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*service.BudgetStatus)
	return s, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockBudgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func overBudget(id, categoryID uuid.UUID) *service.BudgetStatus {
	return &service.BudgetStatus{
		Budget: &sqlconfig.Budget{
			ID:          id,
			CategoryID:  categoryID,
			Period:      sqlconfig.BudgetPeriodMonthly,
			LimitAmount: decimal.NewFromInt(300),
		},
		Spent:       decimal.RequireFromString("320.50"),
		Remaining:   decimal.RequireFromString("-20.50"),
		WindowStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestHTTP_CreateBudget_DefaultsMonthly(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("CreateBudget", mock.Anything, mock.MatchedBy(func(b *sqlconfig.Budget) bool {
		return b.CategoryID == categoryID &&
			b.Period == sqlconfig.BudgetPeriodMonthly &&
			b.LimitAmount.Equal(decimal.NewFromInt(300))
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/budget", BudgetBody{CategoryID: categoryID.String(), Limit: "300"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateBudget_BadLimit(t *testing.T) {
	svc := new(mockBudgetService)

	resp := newTestAPI(t, svc).Post("/v1/budget", BudgetBody{CategoryID: uuid.Must(uuid.NewV4()).String(), Limit: "much"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateBudget")
}

func TestHTTP_CreateBudget_IncomeCategoryRejected(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("CreateBudget", mock.Anything, mock.Anything).Return(uuid.Nil, service.ErrInvalid)

	resp := newTestAPI(t, svc).Post("/v1/budget", BudgetBody{
		CategoryID: uuid.Must(uuid.NewV4()).String(), Period: "weekly", Limit: "50",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_GetBudget_ReportsSpend(t *testing.T) {
	id, categoryID := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("GetBudget", mock.Anything, id).Return(overBudget(id, categoryID), nil)

	resp := newTestAPI(t, svc).Get("/v1/budget/" + id.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, categoryID.String(), body.CategoryID)
	assert.Equal(t, "monthly", body.Period)
	assert.Equal(t, "320.5", body.Spent)
	assert.Equal(t, "-20.5", body.Remaining)
	assert.Equal(t, "2025-06-01", body.WindowStart)
	assert.Equal(t, "2025-06-14", body.WindowEnd)
}

func TestHTTP_BudgetSpent(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("GetBudget", mock.Anything, id).Return(overBudget(id, uuid.Must(uuid.NewV4())), nil)

	resp := newTestAPI(t, svc).Get("/v1/budget/" + id.String() + "/spent")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Spend
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "320.5", body.Spent)
}

func TestHTTP_ListBudgets(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("ListBudgets", mock.Anything).Return([]*service.BudgetStatus{
		overBudget(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/budgets")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Budgets []Budget `json:"budgets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Budgets, 1)
	assert.Equal(t, "300", body.Budgets[0].Limit)
}

func TestHTTP_UpdateAndDeleteBudget(t *testing.T) {
	id, categoryID := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("UpdateBudget", mock.Anything, mock.MatchedBy(func(b *sqlconfig.Budget) bool {
		return b.ID == id && b.Period == sqlconfig.BudgetPeriodYearly
	})).Return(nil)
	svc.On("DeleteBudget", mock.Anything, id).Return(nil)
	api := newTestAPI(t, svc)

	resp := api.Put("/v1/budget/"+id.String(), BudgetBody{CategoryID: categoryID.String(), Period: "yearly", Limit: "1200"})
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Delete("/v1/budget/" + id.String())
	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_DeleteBudget_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("DeleteBudget", mock.Anything, id).Return(service.ErrNotFound)

	resp := newTestAPI(t, svc).Delete("/v1/budget/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
