package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

const defaultHistoryMonths = 3

// RunwaySample is a caller-supplied burn sample.
type RunwaySample struct {
	Cash        decimal.Decimal
	Expenses    []decimal.Decimal
	Incomes     []decimal.Decimal
	IncomeAware bool
}

// RunwayReport is a runway derived from stored history, with the sample
// it was computed from.
type RunwayReport struct {
	metrics.Runway
	Expenses []decimal.Decimal
	Incomes  []decimal.Decimal
	From     time.Time
	To       time.Time
}

type RunwayService struct {
	storage *storage.Storage
	now     clock
}

func NewRunwayService(store *storage.Storage) *RunwayService {
	return &RunwayService{storage: store, now: time.Now}
}

// Estimate projects runway from an explicit sample.
func (s *RunwayService) Estimate(sample RunwaySample) metrics.Runway {
	tracker := metrics.NewTracker(sample.Cash, sample.IncomeAware)
	for _, expense := range sample.Expenses {
		tracker.AddExpense(expense)
	}
	for _, income := range sample.Incomes {
		tracker.AddIncome(income)
	}
	runway, _ := tracker.Snapshot()
	return runway
}

// FromHistory projects runway using the sum of all account balances as
// cash and the monthly totals of the last months complete months as the
// sample. months <= 0 uses three months.
func (s *RunwayService) FromHistory(ctx context.Context, months int, incomeAware bool) (*RunwayReport, error) {
	if months <= 0 {
		months = defaultHistoryMonths
	}

	cash, err := totalCash(ctx, s.storage)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from, to := metrics.HistoryRange(months, now)
	txs, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		StartDate: &from,
		EndDate:   &to,
	})
	if err != nil {
		return nil, err
	}

	expenses, incomes := metrics.MonthlyTotals(txs, months, now)
	runway := s.Estimate(RunwaySample{
		Cash:        cash,
		Expenses:    expenses,
		Incomes:     incomes,
		IncomeAware: incomeAware,
	})

	return &RunwayReport{
		Runway:   runway,
		Expenses: expenses,
		Incomes:  incomes,
		From:     from,
		To:       to,
	}, nil
}
