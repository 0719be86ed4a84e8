package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Transactions feed account balances and budget spend.
var transactionKinds = []notify.Kind{notify.KindTransactions, notify.KindAccounts, notify.KindBudgets}

type CreateTransaction struct {
	Transaction *sqlconfig.Transaction
	ID          uuid.UUID
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ValidateTransaction(c.Transaction, true); err != nil {
		return err
	}
	if err := checkTransactionReferences(ctx, writer, c.Transaction); err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, c.Transaction)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (c *CreateTransaction) Touches() []notify.Kind { return transactionKinds }

type UpdateTransaction struct {
	Transaction *sqlconfig.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, u.Transaction.ID)
	if err != nil {
		return err
	}

	// A category cleared by a category deletion may stay cleared.
	requireCategory := existing.CategoryID.Valid || existing.Type != u.Transaction.Type
	if err := ValidateTransaction(u.Transaction, requireCategory); err != nil {
		return err
	}
	if err := checkTransactionReferences(ctx, writer, u.Transaction); err != nil {
		return err
	}
	return writer.Transactions.Update(ctx, u.Transaction)
}

func (u *UpdateTransaction) Touches() []notify.Kind { return transactionKinds }

type DeleteTransaction struct {
	ID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, d.ID)
}

func (d *DeleteTransaction) Touches() []notify.Kind { return transactionKinds }

func checkTransactionReferences(ctx context.Context, w *storage.Writer, t *sqlconfig.Transaction) error {
	if _, err := w.Accounts.FindByID(ctx, t.AccountID); err != nil {
		return referenceError("account", t.AccountID, err)
	}
	if t.ToAccountID.Valid {
		if _, err := w.Accounts.FindByID(ctx, t.ToAccountID.UUID); err != nil {
			return referenceError("destination account", t.ToAccountID.UUID, err)
		}
	}
	if t.CategoryID.Valid {
		category, err := w.Categories.FindByID(ctx, t.CategoryID.UUID)
		if err != nil {
			return referenceError("category", t.CategoryID.UUID, err)
		}
		if string(category.Type) != string(t.Type) {
			return invalid("category %q is %s, transaction is %s", category.Name, category.Type, t.Type)
		}
	}
	return nil
}
