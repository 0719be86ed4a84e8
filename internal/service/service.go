package service

import (
	"context"
	"time"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

var (
	// ErrInvalid is returned when a write is rejected by validation or
	// references a record that does not exist.
	ErrInvalid = actions.ErrInvalid
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = sqlconfig.ErrNotFound
)

// Processor runs a write action. The operator's delegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Category    *CategoryService
	Budget      *BudgetService
	Goal        *GoalService
	Bill        *BillService
	Loan        *LoanService
	Plan        *PlanService
	Runway      *RunwayService
}

// NewService creates a new Service. Reads go to store directly; writes go
// through op.
func NewService(store *storage.Storage, op Processor) *Service {
	return &Service{
		Account:     NewAccountService(store, op),
		Transaction: NewTransactionService(store, op),
		Category:    NewCategoryService(store, op),
		Budget:      NewBudgetService(store, op),
		Goal:        NewGoalService(store, op),
		Bill:        NewBillService(store, op),
		Loan:        NewLoanService(store, op),
		Plan:        NewPlanService(store, op),
		Runway:      NewRunwayService(store),
	}
}

// clock is overridden in tests.
type clock func() time.Time
