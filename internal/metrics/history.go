package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// MonthlyTotals sums expense and income amounts for each of the n complete
// calendar months before now, oldest first. Transfers move money between
// accounts and are not counted.
func MonthlyTotals(txs []*sqlconfig.Transaction, n int, now time.Time) (expenses, incomes []decimal.Decimal) {
	if n <= 0 {
		return nil, nil
	}
	start, _ := HistoryRange(n, now)
	expenses = make([]decimal.Decimal, n)
	incomes = make([]decimal.Decimal, n)
	for i := range expenses {
		expenses[i] = decimal.Zero
		incomes[i] = decimal.Zero
	}

	for _, tx := range txs {
		date := DateOf(tx.Date)
		idx := (date.Year()-start.Year())*12 + int(date.Month()-start.Month())
		if idx < 0 || idx >= n {
			continue
		}
		switch tx.Type {
		case sqlconfig.TransactionTypeExpense:
			expenses[idx] = expenses[idx].Add(tx.Amount)
		case sqlconfig.TransactionTypeIncome:
			incomes[idx] = incomes[idx].Add(tx.Amount)
		}
	}
	return expenses, incomes
}

// HistoryRange is the inclusive date range covered by MonthlyTotals.
func HistoryRange(n int, now time.Time) (time.Time, time.Time) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -n, 0), firstOfMonth.AddDate(0, 0, -1)
}
