package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

func newAccountTestService(t *testing.T) (*AccountService, *testTables) {
	t.Helper()
	tables := newTestTables(t)
	return NewAccountService(tables.store, tables.processor), tables
}

func makeStorageAccounts(n int) []*sqlconfig.Account {
	rows := make([]*sqlconfig.Account, n)
	for i := range rows {
		rows[i] = &sqlconfig.Account{
			ID:             newID(),
			Name:           "Checking",
			Type:           "bank",
			Currency:       "USD",
			InitialBalance: dec("100.00"),
		}
	}
	return rows
}

// -- CreateAccount tests --

func TestCreateAccount_Success(t *testing.T) {
	svc, tables := newAccountTestService(t)

	expectedID := newID()
	tables.accounts.On("Insert", mock.Anything, mock.MatchedBy(func(a *sqlconfig.Account) bool {
		return a.Name == "Checking" &&
			a.Type == "bank" &&
			a.Currency == "USD" &&
			a.InitialBalance.Equal(dec("1000.00"))
	})).Return(expectedID, nil)

	id, err := svc.CreateAccount(context.Background(), Account{
		Name:           "Checking",
		Type:           "bank",
		Currency:       "USD",
		InitialBalance: dec("1000.00"),
		Balance:        dec("99999"),
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateAccount_Invalid(t *testing.T) {
	svc, tables := newAccountTestService(t)

	id, err := svc.CreateAccount(context.Background(), Account{Name: " "})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, uuid.Nil, id)
	tables.accounts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateAccount_StorageError(t *testing.T) {
	svc, tables := newAccountTestService(t)

	tables.accounts.On("Insert", mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("insert failed"))

	id, err := svc.CreateAccount(context.Background(), Account{Name: "Checking"})

	assert.Error(t, err)
	assert.Equal(t, "insert failed", err.Error())
	assert.Equal(t, uuid.Nil, id)
}

// -- GetAccount / Balance tests --

func TestGetAccount_Success(t *testing.T) {
	svc, tables := newAccountTestService(t)

	row := makeStorageAccounts(1)[0]
	row.InitialBalance = dec("1000")
	categoryID := newID()

	tables.accounts.On("FindByID", mock.Anything, row.ID).Return(row, nil)
	tables.transactions.On("List", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == row.ID && f.Limit == 0
	})).Return([]*sqlconfig.Transaction{
		{AccountID: row.ID, Type: sqlconfig.TransactionTypeIncome, Amount: dec("500"), CategoryID: uuid.NullUUID{UUID: categoryID, Valid: true}},
		{AccountID: row.ID, Type: sqlconfig.TransactionTypeExpense, Amount: dec("200"), CategoryID: uuid.NullUUID{UUID: categoryID, Valid: true}},
	}, nil)

	account, err := svc.GetAccount(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ID, account.ID)
	assert.Equal(t, row.Name, account.Name)
	assert.True(t, dec("1000").Equal(account.InitialBalance))
	assert.True(t, dec("1300").Equal(account.Balance), "got %s", account.Balance)
}

func TestGetAccount_NotFound(t *testing.T) {
	svc, tables := newAccountTestService(t)

	id := newID()
	tables.accounts.On("FindByID", mock.Anything, id).Return(nil, ErrNotFound)

	account, err := svc.GetAccount(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, account)
}

func TestBalance_StorageError(t *testing.T) {
	svc, tables := newAccountTestService(t)

	row := makeStorageAccounts(1)[0]
	tables.accounts.On("FindByID", mock.Anything, row.ID).Return(row, nil)
	tables.transactions.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	_, err := svc.Balance(context.Background(), row.ID)

	assert.EqualError(t, err, "database unavailable")
}

// -- ListAccounts tests --

func TestListAccounts_NoResults(t *testing.T) {
	svc, tables := newAccountTestService(t)

	tables.accounts.On("List", mock.Anything, mock.Anything).
		Return([]*sqlconfig.Account{}, nil)

	accounts, next, err := svc.ListAccounts(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, accounts)
	assert.Nil(t, next)
}

func TestListAccounts_SinglePage(t *testing.T) {
	svc, tables := newAccountTestService(t)

	rows := makeStorageAccounts(2)
	tables.accounts.On("List", mock.Anything, mock.MatchedBy(func(f *sqlconfig.AccountFilter) bool {
		return f.Limit == defaultAccountLimit && f.Offset == 0
	})).Return(rows, nil)
	tables.transactions.On("List", mock.Anything, mock.Anything).Return([]*sqlconfig.Transaction{}, nil)

	accounts, next, err := svc.ListAccounts(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Nil(t, next)
	assert.Equal(t, rows[0].ID, accounts[0].ID)
	assert.True(t, rows[0].InitialBalance.Equal(accounts[0].Balance))
}

func TestListAccounts_HasNextPage(t *testing.T) {
	svc, tables := newAccountTestService(t)

	rows := makeStorageAccounts(defaultAccountLimit + 1)
	tables.accounts.On("List", mock.Anything, mock.Anything).Return(rows, nil)
	tables.transactions.On("List", mock.Anything, mock.Anything).Return([]*sqlconfig.Transaction{}, nil)

	accounts, next, err := svc.ListAccounts(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, accounts, defaultAccountLimit, "truncated to default account limit")
	require.NotNil(t, next)
	assert.Equal(t, defaultAccountLimit, next.Position)
	assert.Equal(t, defaultAccountLimit, next.Limit)
}

func TestListAccounts_WithCursor(t *testing.T) {
	svc, tables := newAccountTestService(t)

	rows := makeStorageAccounts(3)
	tables.accounts.On("List", mock.Anything, mock.MatchedBy(func(f *sqlconfig.AccountFilter) bool {
		return f.Limit == 2 && f.Offset == 20
	})).Return(rows, nil)
	tables.transactions.On("List", mock.Anything, mock.Anything).Return([]*sqlconfig.Transaction{}, nil)

	accounts, next, err := svc.ListAccounts(context.Background(), &AccountCursor{
		Position: 20,
		Limit:    2,
	})

	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	require.NotNil(t, next)
	assert.Equal(t, 22, next.Position)
	assert.Equal(t, 2, next.Limit)
}

func TestListAccounts_StorageError(t *testing.T) {
	svc, tables := newAccountTestService(t)

	tables.accounts.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	accounts, next, err := svc.ListAccounts(context.Background(), nil)

	assert.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
	assert.Nil(t, accounts)
	assert.Nil(t, next)
}

// -- DeleteAccount / TotalCash tests --

func TestDeleteAccount_ReportsCascade(t *testing.T) {
	svc, tables := newAccountTestService(t)

	id := newID()
	tables.accounts.On("FindByID", mock.Anything, id).Return(&sqlconfig.Account{ID: id}, nil)
	tables.transactions.On("DeleteByAccount", mock.Anything, id).Return(int64(2), nil)
	tables.goals.On("UnlinkAccount", mock.Anything, id).Return(int64(0), nil)
	tables.accounts.On("Delete", mock.Anything, id).Return(nil)

	result, err := svc.DeleteAccount(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, AccountDeletion{RemovedTransactions: 2}, result)
}

func TestTotalCash_Transfers(t *testing.T) {
	svc, tables := newAccountTestService(t)

	checking := &sqlconfig.Account{ID: newID(), InitialBalance: dec("1000")}
	savings := &sqlconfig.Account{ID: newID(), InitialBalance: dec("500")}
	tables.accounts.On("List", mock.Anything, (*sqlconfig.AccountFilter)(nil)).
		Return([]*sqlconfig.Account{checking, savings}, nil)
	tables.transactions.On("List", mock.Anything, (*sqlconfig.TransactionFilter)(nil)).Return([]*sqlconfig.Transaction{
		{AccountID: checking.ID, ToAccountID: uuid.NullUUID{UUID: savings.ID, Valid: true}, Type: sqlconfig.TransactionTypeTransfer, Amount: dec("300")},
		{AccountID: checking.ID, Type: sqlconfig.TransactionTypeExpense, Amount: dec("50")},
	}, nil)

	total, err := svc.TotalCash(context.Background())

	assert.NoError(t, err)
	assert.True(t, dec("1450").Equal(total), "got %s", total)
}
