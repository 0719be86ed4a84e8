package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

var monthsPerYearPercent = decimal.NewFromInt(1200)

// MonthlyInterest is simple, non-compounding interest on the current
// balance: balance × (rate / 100) / 12.
func MonthlyInterest(loan *sqlconfig.Loan) decimal.Decimal {
	return loan.CurrentBalance.Mul(loan.InterestRate).Div(monthsPerYearPercent)
}
