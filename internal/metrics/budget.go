package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// DateOf truncates t to its calendar date, expressed in UTC the way dates
// are stored.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the inclusive date range a budget period covers at now.
// Weekly is rolling; monthly and yearly are calendar aligned. Unknown
// periods use the monthly window.
func Window(period sqlconfig.BudgetPeriod, now time.Time) (time.Time, time.Time) {
	end := DateOf(now)
	switch period {
	case sqlconfig.BudgetPeriodWeekly:
		return end.AddDate(0, 0, -7), end
	case sqlconfig.BudgetPeriodYearly:
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), end
	default:
		return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), end
	}
}

// Spent sums the expense transactions in the budget's category whose date
// falls inside the window at now. Other transactions are ignored, so the
// caller may pass a superset.
func Spent(budget *sqlconfig.Budget, txs []*sqlconfig.Transaction, now time.Time) decimal.Decimal {
	start, end := Window(budget.Period, now)
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type != sqlconfig.TransactionTypeExpense {
			continue
		}
		if !tx.CategoryID.Valid || tx.CategoryID.UUID != budget.CategoryID {
			continue
		}
		date := DateOf(tx.Date)
		if date.Before(start) || date.After(end) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}
