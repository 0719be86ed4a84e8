package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type PlanService struct {
	storage  *storage.Storage
	operator Processor
}

func NewPlanService(store *storage.Storage, op Processor) *PlanService {
	return &PlanService{storage: store, operator: op}
}

func (s *PlanService) CreatePlan(ctx context.Context, plan *sqlconfig.Plan) (uuid.UUID, error) {
	action := actions.CreatePlan(plan)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *PlanService) UpdatePlan(ctx context.Context, plan *sqlconfig.Plan) error {
	return s.operator.Process(ctx, actions.UpdatePlan(plan))
}

func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, actions.DeletePlan(id))
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*sqlconfig.Plan, error) {
	return s.storage.Plans.FindByID(ctx, id)
}

func (s *PlanService) ListPlans(ctx context.Context) ([]*sqlconfig.Plan, error) {
	return s.storage.Plans.List(ctx)
}

// AdjustOverdue moves the plan's months-overdue counter by delta.
func (s *PlanService) AdjustOverdue(ctx context.Context, id uuid.UUID, delta int) (*sqlconfig.Plan, error) {
	action := &actions.AdjustOverdue{ID: id, Delta: delta}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Plan, nil
}
