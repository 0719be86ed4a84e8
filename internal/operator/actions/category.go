package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// DeleteCategory removes a category and its budgets. Transactions in the
// category are kept with their category cleared.
type DeleteCategory struct {
	ID uuid.UUID

	OrphanedTransactions int64
	RemovedBudgets       int64
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Categories.FindByID(ctx, d.ID); err != nil {
		return err
	}

	orphaned, err := writer.Transactions.ClearCategory(ctx, d.ID)
	if err != nil {
		return err
	}
	removed, err := writer.Budgets.DeleteByCategory(ctx, d.ID)
	if err != nil {
		return err
	}
	if err := writer.Categories.Delete(ctx, d.ID); err != nil {
		return err
	}

	d.OrphanedTransactions = orphaned
	d.RemovedBudgets = removed
	return nil
}

func (d *DeleteCategory) Touches() []notify.Kind {
	return []notify.Kind{notify.KindCategories, notify.KindTransactions, notify.KindBudgets}
}
