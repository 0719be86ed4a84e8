package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// testTables backs both the read side and the write side of a service with
// the same table mocks.
type testTables struct {
	accounts     *sqlconfig.MockIAccountTable
	categories   *sqlconfig.MockICategoryTable
	transactions *sqlconfig.MockITransactionTable
	budgets      *sqlconfig.MockIBudgetTable
	goals        *sqlconfig.MockIGoalTable
	bills        *sqlconfig.MockIBillTable
	loans        *sqlconfig.MockILoanTable
	plans        *sqlconfig.MockIPlanTable

	store     *storage.Storage
	processor *inlineProcessor
}

// inlineProcessor performs actions synchronously against the mocked writer.
type inlineProcessor struct {
	writer    *storage.Writer
	processed []actions.IAction
	err       error
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	p.processed = append(p.processed, action)
	if p.err != nil {
		return p.err
	}
	return action.Perform(ctx, p.writer)
}

func newTestTables(t *testing.T) *testTables {
	t.Helper()
	tt := &testTables{
		accounts:     sqlconfig.NewMockIAccountTable(t),
		categories:   sqlconfig.NewMockICategoryTable(t),
		transactions: sqlconfig.NewMockITransactionTable(t),
		budgets:      sqlconfig.NewMockIBudgetTable(t),
		goals:        sqlconfig.NewMockIGoalTable(t),
		bills:        sqlconfig.NewMockIBillTable(t),
		loans:        sqlconfig.NewMockILoanTable(t),
		plans:        sqlconfig.NewMockIPlanTable(t),
	}
	tt.store = &storage.Storage{
		Accounts:     tt.accounts,
		Categories:   tt.categories,
		Transactions: tt.transactions,
		Budgets:      tt.budgets,
		Goals:        tt.goals,
		Bills:        tt.bills,
		Loans:        tt.loans,
		Plans:        tt.plans,
	}
	tt.processor = &inlineProcessor{writer: &storage.Writer{
		Accounts:     tt.accounts,
		Categories:   tt.categories,
		Transactions: tt.transactions,
		Budgets:      tt.budgets,
		Goals:        tt.goals,
		Bills:        tt.bills,
		Loans:        tt.loans,
		Plans:        tt.plans,
	}}
	return tt
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}
