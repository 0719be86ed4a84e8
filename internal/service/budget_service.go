package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// BudgetStatus is a budget with the spend derived for its current window.
type BudgetStatus struct {
	Budget      *sqlconfig.Budget
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	WindowStart time.Time
	WindowEnd   time.Time
}

type BudgetService struct {
	storage  *storage.Storage
	operator Processor
	now      clock
}

func NewBudgetService(store *storage.Storage, op Processor) *BudgetService {
	return &BudgetService{storage: store, operator: op, now: time.Now}
}

func (s *BudgetService) CreateBudget(ctx context.Context, budget *sqlconfig.Budget) (uuid.UUID, error) {
	action := actions.CreateBudget(budget)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, budget *sqlconfig.Budget) error {
	return s.operator.Process(ctx, actions.UpdateBudget(budget))
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, actions.DeleteBudget(id))
}

// GetBudget returns the budget with its spend at the current time.
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*BudgetStatus, error) {
	budget, err := s.storage.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.status(ctx, budget, s.now())
}

// ListBudgets returns every budget with its spend at the current time.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]*BudgetStatus, error) {
	budgets, err := s.storage.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	result := make([]*BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		status, err := s.status(ctx, budget, now)
		if err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, nil
}

func (s *BudgetService) status(ctx context.Context, budget *sqlconfig.Budget, now time.Time) (*BudgetStatus, error) {
	start, end := metrics.Window(budget.Period, now)
	expense := sqlconfig.TransactionTypeExpense
	categoryID := budget.CategoryID
	txs, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		CategoryID: &categoryID,
		Type:       &expense,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, err
	}

	spent := metrics.Spent(budget, txs, now)
	return &BudgetStatus{
		Budget:      budget,
		Spent:       spent,
		Remaining:   budget.LimitAmount.Sub(spent),
		WindowStart: start,
		WindowEnd:   end,
	}, nil
}
