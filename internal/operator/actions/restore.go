package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Dataset is every record in the store, grouped by collection.
type Dataset struct {
	Accounts     []*sqlconfig.Account     `json:"accounts"`
	Categories   []*sqlconfig.Category    `json:"categories"`
	Transactions []*sqlconfig.Transaction `json:"transactions"`
	Budgets      []*sqlconfig.Budget      `json:"budgets"`
	Goals        []*sqlconfig.Goal        `json:"goals"`
	Bills        []*sqlconfig.Bill        `json:"bills"`
	Loans        []*sqlconfig.Loan        `json:"loans"`
	Plans        []*sqlconfig.Plan        `json:"plans"`
}

// RestoreCounts reports how many records of each collection were inserted
// or updated.
type RestoreCounts struct {
	Inserted map[notify.Kind]int
	Updated  map[notify.Kind]int
}

// Restore writes a Dataset in one transaction. A full restore clears the
// store first; otherwise records are upserted by id.
type Restore struct {
	Data *Dataset
	Full bool

	Counts RestoreCounts
}

type upsertTable[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	recordTable[T]
}

func (r *Restore) Perform(ctx context.Context, writer *storage.Writer) error {
	if r.Data == nil {
		return invalid("restore has no data")
	}
	r.Counts = RestoreCounts{Inserted: map[notify.Kind]int{}, Updated: map[notify.Kind]int{}}

	if r.Full {
		if err := writer.Clear(ctx); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
	}

	steps := []func() error{
		func() error {
			return upsertAll[sqlconfig.Account](ctx, r, writer, notify.KindAccounts, writer.Accounts, r.Data.Accounts, accounts.validate, nil,
				func(a *sqlconfig.Account) uuid.UUID { return a.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Category](ctx, r, writer, notify.KindCategories, writer.Categories, r.Data.Categories, categories.validate, categories.check,
				func(c *sqlconfig.Category) uuid.UUID { return c.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Transaction](ctx, r, writer, notify.KindTransactions, writer.Transactions, r.Data.Transactions, validateRestoredTransaction, checkTransactionReferences,
				func(t *sqlconfig.Transaction) uuid.UUID { return t.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Budget](ctx, r, writer, notify.KindBudgets, writer.Budgets, r.Data.Budgets, budgets.validate, budgets.check,
				func(b *sqlconfig.Budget) uuid.UUID { return b.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Goal](ctx, r, writer, notify.KindGoals, writer.Goals, r.Data.Goals, goals.validate, goals.check,
				func(g *sqlconfig.Goal) uuid.UUID { return g.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Bill](ctx, r, writer, notify.KindBills, writer.Bills, r.Data.Bills, bills.validate, nil,
				func(b *sqlconfig.Bill) uuid.UUID { return b.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Loan](ctx, r, writer, notify.KindLoans, writer.Loans, r.Data.Loans, loans.validate, nil,
				func(l *sqlconfig.Loan) uuid.UUID { return l.ID })
		},
		func() error {
			return upsertAll[sqlconfig.Plan](ctx, r, writer, notify.KindPlans, writer.Plans, r.Data.Plans, plans.validate, plans.check,
				func(p *sqlconfig.Plan) uuid.UUID { return p.ID })
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"full":     r.Full,
		"inserted": r.Counts.Inserted,
		"updated":  r.Counts.Updated,
	}).Info("Actions.Restore.complete")
	return nil
}

func (r *Restore) Touches() []notify.Kind { return notify.AllKinds }

// validateRestoredTransaction allows a missing category, which a category
// deletion leaves behind.
func validateRestoredTransaction(t *sqlconfig.Transaction) error {
	return ValidateTransaction(t, false)
}

// upsertAll validates and checks every row the same way a single write
// would, then updates rows whose id exists and inserts the rest.
func upsertAll[T any](
	ctx context.Context,
	r *Restore,
	writer *storage.Writer,
	kind notify.Kind,
	table upsertTable[T],
	rows []*T,
	validate func(*T) error,
	check checkFunc[T],
	idOf func(*T) uuid.UUID,
) error {
	for i, row := range rows {
		if row == nil {
			return invalid("restore %s: record %d is empty", kind, i)
		}
		id := idOf(row)
		if validate != nil {
			if err := validate(row); err != nil {
				return fmt.Errorf("restore %s %s: %w", kind, id, err)
			}
		}
		if check != nil {
			if err := check(ctx, writer, row); err != nil {
				return fmt.Errorf("restore %s %s: %w", kind, id, err)
			}
		}
		if !r.Full && !id.IsNil() {
			_, err := table.FindByID(ctx, id)
			switch {
			case err == nil:
				if err := table.Update(ctx, row); err != nil {
					return fmt.Errorf("restore %s %s: %w", kind, id, err)
				}
				r.Counts.Updated[kind]++
				continue
			case !errors.Is(err, sqlconfig.ErrNotFound):
				return fmt.Errorf("restore %s %s: %w", kind, id, err)
			}
		}
		if _, err := table.Insert(ctx, row); err != nil {
			return fmt.Errorf("restore %s %s: %w", kind, id, err)
		}
		r.Counts.Inserted[kind]++
	}
	return nil
}
