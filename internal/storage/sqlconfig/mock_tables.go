package sqlconfig

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the table interfaces. Each constructor
// asserts the registered expectations when the test finishes.

func registerMock(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func record[T any](args mock.Arguments) (*T, error) {
	v, _ := args.Get(0).(*T)
	return v, args.Error(1)
}

func records[T any](args mock.Arguments) ([]*T, error) {
	v, _ := args.Get(0).([]*T)
	return v, args.Error(1)
}

func insertedID(args mock.Arguments) (uuid.UUID, error) {
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func affected(args mock.Arguments) (int64, error) {
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type MockIAccountTable struct{ mock.Mock }

func NewMockIAccountTable(t *testing.T) *MockIAccountTable {
	m := &MockIAccountTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockIAccountTable) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return record[Account](m.Called(ctx, id))
}

func (m *MockIAccountTable) Insert(ctx context.Context, account *Account) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, account))
}

func (m *MockIAccountTable) Update(ctx context.Context, account *Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockIAccountTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIAccountTable) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	return records[Account](m.Called(ctx, filter))
}

type MockICategoryTable struct{ mock.Mock }

func NewMockICategoryTable(t *testing.T) *MockICategoryTable {
	m := &MockICategoryTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockICategoryTable) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return record[Category](m.Called(ctx, id))
}

func (m *MockICategoryTable) Insert(ctx context.Context, category *Category) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, category))
}

func (m *MockICategoryTable) Update(ctx context.Context, category *Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockICategoryTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockICategoryTable) List(ctx context.Context) ([]*Category, error) {
	return records[Category](m.Called(ctx))
}

type MockITransactionTable struct{ mock.Mock }

func NewMockITransactionTable(t *testing.T) *MockITransactionTable {
	m := &MockITransactionTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockITransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return record[Transaction](m.Called(ctx, id))
}

func (m *MockITransactionTable) Insert(ctx context.Context, transaction *Transaction) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, transaction))
}

func (m *MockITransactionTable) Update(ctx context.Context, transaction *Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *MockITransactionTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockITransactionTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	return records[Transaction](m.Called(ctx, filter))
}

func (m *MockITransactionTable) ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return affected(m.Called(ctx, categoryID))
}

func (m *MockITransactionTable) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return affected(m.Called(ctx, accountID))
}

type MockIBudgetTable struct{ mock.Mock }

func NewMockIBudgetTable(t *testing.T) *MockIBudgetTable {
	m := &MockIBudgetTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockIBudgetTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return record[Budget](m.Called(ctx, id))
}

func (m *MockIBudgetTable) Insert(ctx context.Context, budget *Budget) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, budget))
}

func (m *MockIBudgetTable) Update(ctx context.Context, budget *Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockIBudgetTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIBudgetTable) List(ctx context.Context) ([]*Budget, error) {
	return records[Budget](m.Called(ctx))
}

func (m *MockIBudgetTable) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return affected(m.Called(ctx, categoryID))
}

type MockIGoalTable struct{ mock.Mock }

func NewMockIGoalTable(t *testing.T) *MockIGoalTable {
	m := &MockIGoalTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockIGoalTable) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return record[Goal](m.Called(ctx, id))
}

func (m *MockIGoalTable) Insert(ctx context.Context, goal *Goal) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, goal))
}

func (m *MockIGoalTable) Update(ctx context.Context, goal *Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockIGoalTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIGoalTable) List(ctx context.Context) ([]*Goal, error) {
	return records[Goal](m.Called(ctx))
}

func (m *MockIGoalTable) UnlinkAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return affected(m.Called(ctx, accountID))
}

type MockIBillTable struct{ mock.Mock }

func NewMockIBillTable(t *testing.T) *MockIBillTable {
	m := &MockIBillTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockIBillTable) FindByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return record[Bill](m.Called(ctx, id))
}

func (m *MockIBillTable) Insert(ctx context.Context, bill *Bill) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, bill))
}

func (m *MockIBillTable) Update(ctx context.Context, bill *Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockIBillTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIBillTable) List(ctx context.Context) ([]*Bill, error) {
	return records[Bill](m.Called(ctx))
}

type MockILoanTable struct{ mock.Mock }

func NewMockILoanTable(t *testing.T) *MockILoanTable {
	m := &MockILoanTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockILoanTable) FindByID(ctx context.Context, id uuid.UUID) (*Loan, error) {
	return record[Loan](m.Called(ctx, id))
}

func (m *MockILoanTable) Insert(ctx context.Context, loan *Loan) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, loan))
}

func (m *MockILoanTable) Update(ctx context.Context, loan *Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockILoanTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockILoanTable) List(ctx context.Context) ([]*Loan, error) {
	return records[Loan](m.Called(ctx))
}

type MockIPlanTable struct{ mock.Mock }

func NewMockIPlanTable(t *testing.T) *MockIPlanTable {
	m := &MockIPlanTable{}
	registerMock(t, &m.Mock)
	return m
}

func (m *MockIPlanTable) FindByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return record[Plan](m.Called(ctx, id))
}

func (m *MockIPlanTable) Insert(ctx context.Context, plan *Plan) (uuid.UUID, error) {
	return insertedID(m.Called(ctx, plan))
}

func (m *MockIPlanTable) Update(ctx context.Context, plan *Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockIPlanTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIPlanTable) List(ctx context.Context) ([]*Plan, error) {
	return records[Plan](m.Called(ctx))
}
