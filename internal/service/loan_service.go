package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/metrics"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type LoanService struct {
	storage  *storage.Storage
	operator Processor
}

func NewLoanService(store *storage.Storage, op Processor) *LoanService {
	return &LoanService{storage: store, operator: op}
}

func (s *LoanService) CreateLoan(ctx context.Context, loan *sqlconfig.Loan) (uuid.UUID, error) {
	action := actions.CreateLoan(loan)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *LoanService) UpdateLoan(ctx context.Context, loan *sqlconfig.Loan) error {
	return s.operator.Process(ctx, actions.UpdateLoan(loan))
}

func (s *LoanService) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, actions.DeleteLoan(id))
}

func (s *LoanService) GetLoan(ctx context.Context, id uuid.UUID) (*sqlconfig.Loan, error) {
	return s.storage.Loans.FindByID(ctx, id)
}

func (s *LoanService) ListLoans(ctx context.Context) ([]*sqlconfig.Loan, error) {
	return s.storage.Loans.List(ctx)
}

// MonthlyInterest is the simple interest the loan accrues in one month at
// its current balance.
func (s *LoanService) MonthlyInterest(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	loan, err := s.storage.Loans.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return metrics.MonthlyInterest(loan), nil
}
