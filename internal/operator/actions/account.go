package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// DeleteAccount removes an account together with every transaction on
// either side of it and unlinks goals that pointed at it.
type DeleteAccount struct {
	ID uuid.UUID

	RemovedTransactions int64
	UnlinkedGoals       int64
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Accounts.FindByID(ctx, d.ID); err != nil {
		return err
	}

	removed, err := writer.Transactions.DeleteByAccount(ctx, d.ID)
	if err != nil {
		return err
	}
	unlinked, err := writer.Goals.UnlinkAccount(ctx, d.ID)
	if err != nil {
		return err
	}
	if err := writer.Accounts.Delete(ctx, d.ID); err != nil {
		return err
	}

	d.RemovedTransactions = removed
	d.UnlinkedGoals = unlinked
	return nil
}

func (d *DeleteAccount) Touches() []notify.Kind {
	return []notify.Kind{notify.KindAccounts, notify.KindTransactions, notify.KindGoals, notify.KindBudgets}
}
