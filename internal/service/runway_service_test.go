package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

func TestRunwayEstimate(t *testing.T) {
	svc := NewRunwayService(nil)

	runway := svc.Estimate(RunwaySample{
		Cash:     dec("9000"),
		Expenses: []decimal.Decimal{dec("900"), dec("1100"), dec("1000")},
	})
	assert.True(t, dec("1000").Equal(runway.AvgBurn))
	assert.True(t, dec("9").Equal(runway.Months))
	assert.Equal(t, metrics.StatusSafe, runway.Status)

	runway = svc.Estimate(RunwaySample{
		Cash:        dec("9000"),
		Expenses:    []decimal.Decimal{dec("1000")},
		Incomes:     []decimal.Decimal{dec("1500")},
		IncomeAware: true,
	})
	assert.True(t, runway.Unbounded)
	assert.Equal(t, metrics.StatusSafe, runway.Status)
}

func TestRunwayFromHistory(t *testing.T) {
	tables := newTestTables(t)
	svc := NewRunwayService(tables.store)
	svc.now = fixedClock(day(2025, 4, 10))

	account := &sqlconfig.Account{ID: newID(), InitialBalance: dec("3000")}
	categoryID := uuid.NullUUID{UUID: newID(), Valid: true}
	tables.accounts.On("List", mock.Anything, (*sqlconfig.AccountFilter)(nil)).Return([]*sqlconfig.Account{account}, nil)
	tables.transactions.On("List", mock.Anything, (*sqlconfig.TransactionFilter)(nil)).Return([]*sqlconfig.Transaction{
		{AccountID: account.ID, Type: sqlconfig.TransactionTypeExpense, CategoryID: categoryID, Amount: dec("1500")},
	}, nil)
	tables.transactions.On("List", mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f != nil && f.StartDate.Equal(day(2025, 1, 1)) && f.EndDate.Equal(day(2025, 3, 31))
	})).Return([]*sqlconfig.Transaction{
		{Type: sqlconfig.TransactionTypeExpense, Amount: dec("600"), Date: day(2025, 1, 5)},
		{Type: sqlconfig.TransactionTypeExpense, Amount: dec("300"), Date: day(2025, 3, 9)},
		{Type: sqlconfig.TransactionTypeIncome, Amount: dec("100"), Date: day(2025, 2, 1)},
	}, nil)

	report, err := svc.FromHistory(context.Background(), 0, false)

	require.NoError(t, err)
	assert.True(t, dec("1500").Equal(report.Cash))
	require.Len(t, report.Expenses, 3)
	assert.True(t, dec("600").Equal(report.Expenses[0]))
	assert.True(t, report.Expenses[1].IsZero())
	assert.True(t, dec("300").Equal(report.AvgBurn))
	assert.True(t, dec("5").Equal(report.Months))
	assert.Equal(t, metrics.StatusDanger, report.Status)
	assert.Equal(t, day(2025, 1, 1), report.From)
}
