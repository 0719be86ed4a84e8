package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// AdjustOverdue moves a plan's months-overdue counter by Delta.
type AdjustOverdue struct {
	ID    uuid.UUID
	Delta int

	Plan *sqlconfig.Plan
}

func (a *AdjustOverdue) Perform(ctx context.Context, writer *storage.Writer) error {
	plan, err := writer.Plans.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}

	next := plan.MonthsOverdue + a.Delta
	if next < 0 {
		return invalid("months overdue cannot drop below zero")
	}
	plan.MonthsOverdue = next

	if err := writer.Plans.Update(ctx, plan); err != nil {
		return err
	}
	a.Plan = plan
	return nil
}

func (a *AdjustOverdue) Touches() []notify.Kind { return []notify.Kind{notify.KindPlans} }
