package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type GoalService struct {
	storage  *storage.Storage
	operator Processor
}

func NewGoalService(store *storage.Storage, op Processor) *GoalService {
	return &GoalService{storage: store, operator: op}
}

func (s *GoalService) CreateGoal(ctx context.Context, goal *sqlconfig.Goal) (uuid.UUID, error) {
	action := actions.CreateGoal(goal)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, goal *sqlconfig.Goal) error {
	return s.operator.Process(ctx, actions.UpdateGoal(goal))
}

func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, actions.DeleteGoal(id))
}

func (s *GoalService) GetGoal(ctx context.Context, id uuid.UUID) (*sqlconfig.Goal, error) {
	return s.storage.Goals.FindByID(ctx, id)
}

func (s *GoalService) ListGoals(ctx context.Context) ([]*sqlconfig.Goal, error) {
	return s.storage.Goals.List(ctx)
}

// Contribute adds amount to the goal's current amount and returns the
// updated goal. A negative amount withdraws.
func (s *GoalService) Contribute(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*sqlconfig.Goal, error) {
	action := &actions.ContributeGoal{ID: id, Amount: amount}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Goal, nil
}
