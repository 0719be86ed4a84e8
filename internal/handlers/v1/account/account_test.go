package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/service"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error) {
	args := m.Called(ctx, cursor)
	accounts, _ := args.Get(0).([]service.Account)
	next, _ := args.Get(1).(*service.AccountCursor)
	return accounts, next, args.Error(2)
}

func (m *mockAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*service.Account)
	return account, args.Error(1)
}

func (m *mockAccountService) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, account service.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, id uuid.UUID) (service.AccountDeletion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.AccountDeletion), args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	NewGetAccountHandler(svc).Register(api)
	NewUpdateAccountHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a service.Account) bool {
		return a.Name == "Checking" && a.Currency == "USD" && a.InitialBalance.Equal(decimal.RequireFromString("1000.50"))
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/account", AccountBody{
		Name:           "Checking",
		Type:           "bank",
		Currency:       "USD",
		InitialBalance: "1000.50",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_DefaultsInitialBalance(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a service.Account) bool {
		return a.InitialBalance.IsZero()
	})).Return(uuid.Must(uuid.NewV4()), nil)

	resp := newTestAPI(t, svc).Post("/v1/account", AccountBody{Name: "Wallet"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_EmptyName(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", AccountBody{Name: ""})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_InvalidBalance(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account", AccountBody{Name: "Checking", InitialBalance: "lots"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_ServiceError(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("database unavailable"))

	resp := newTestAPI(t, svc).Post("/v1/account", AccountBody{Name: "Checking"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_ListAccounts_Pages(t *testing.T) {
	accounts := []service.Account{{
		ID:             uuid.Must(uuid.NewV4()),
		Name:           "Checking",
		InitialBalance: decimal.NewFromInt(1000),
		Balance:        decimal.NewFromInt(1300),
	}}
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, &service.AccountCursor{Position: 20, Limit: 1}).
		Return(accounts, &service.AccountCursor{Position: 21, Limit: 1}, nil)

	resp := newTestAPI(t, svc).Get("/v1/accounts?position=20&limit=1")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, "1300", body.Accounts[0].Balance)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 21, body.NextCursor.Position)
	svc.AssertExpectations(t)
}

func TestHTTP_ListAccounts_NoCursor(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("ListAccounts", mock.Anything, (*service.AccountCursor)(nil)).
		Return(([]service.Account)(nil), (*service.AccountCursor)(nil), nil)

	resp := newTestAPI(t, svc).Get("/v1/accounts")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Accounts)
	assert.Nil(t, body.NextCursor)
}

func TestHTTP_GetAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, id).Return(&service.Account{ID: id, Name: "Checking", Balance: decimal.NewFromInt(5)}, nil)

	resp := newTestAPI(t, svc).Get("/v1/account/" + id.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Checking", body.Name)
	assert.Equal(t, "5", body.Balance)
}

func TestHTTP_GetAccount_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, id).Return(nil, fmt.Errorf("account %s: %w", id, service.ErrNotFound))

	resp := newTestAPI(t, svc).Get("/v1/account/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetAccount_InvalidID(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Get("/v1/account/not-a-uuid")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "GetAccount")
}

func TestHTTP_Balance(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("Balance", mock.Anything, id).Return(decimal.NewFromInt(1300), nil)

	resp := newTestAPI(t, svc).Get("/v1/account/" + id.String() + "/balance")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BalanceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1300", body.Balance)
	assert.Equal(t, id.String(), body.AccountID)
}

func TestHTTP_UpdateAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a service.Account) bool {
		return a.ID == id && a.Name == "Everyday"
	})).Return(nil)

	resp := newTestAPI(t, svc).Put("/v1/account/"+id.String(), AccountBody{Name: "Everyday"})

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_UpdateAccount_ValidationError(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("UpdateAccount", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: account name is required", service.ErrInvalid))

	resp := newTestAPI(t, svc).Put("/v1/account/"+id.String(), AccountBody{Name: " "})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_DeleteAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("DeleteAccount", mock.Anything, id).Return(service.AccountDeletion{RemovedTransactions: 4, UnlinkedGoals: 1}, nil)

	resp := newTestAPI(t, svc).Delete("/v1/account/" + id.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body DeleteAccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, DeleteAccountResponse{RemovedTransactions: 4, UnlinkedGoals: 1}, body)
}
