package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// ContributeGoal adds Amount to a goal's current amount. A negative amount
// withdraws, but never below zero.
type ContributeGoal struct {
	ID     uuid.UUID
	Amount decimal.Decimal

	Goal *sqlconfig.Goal
}

func (c *ContributeGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.Amount.IsZero() {
		return invalid("contribution must not be zero")
	}

	goal, err := writer.Goals.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}

	next := goal.CurrentAmount.Add(c.Amount)
	if next.IsNegative() {
		return invalid("withdrawal of %s exceeds current amount %s", c.Amount.Neg(), goal.CurrentAmount)
	}
	goal.CurrentAmount = next

	if err := writer.Goals.Update(ctx, goal); err != nil {
		return err
	}
	c.Goal = goal
	return nil
}

func (c *ContributeGoal) Touches() []notify.Kind { return []notify.Kind{notify.KindGoals} }
