package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/bob/dialect/sqlite/um"
)

const transactionsTable = "transactions"

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := findByID[transactionRow](ctx, t.exec, transactionsTable, transactionColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toTransaction()
}

// Insert creates a new transaction and returns its ID.
func (t *TransactionsTable) Insert(ctx context.Context, transaction *Transaction) (uuid.UUID, error) {
	id, err := newID(transaction.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *transaction
	row.ID = id
	vals, err := transactionValues(&row)
	if err != nil {
		return uuid.Nil, err
	}
	if err := insertRow(ctx, t.exec, transactionsTable, transactionColumns, vals); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *TransactionsTable) Update(ctx context.Context, transaction *Transaction) error {
	vals, err := transactionValues(transaction)
	if err != nil {
		return err
	}
	return updateByID(ctx, t.exec, transactionsTable, transactionColumns, vals)
}

func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, transactionsTable, id)
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Or(
				sqlite.Quote("account_id").EQ(sqlite.Arg(*filter.AccountID)),
				sqlite.Quote("to_account_id").EQ(sqlite.Arg(*filter.AccountID)),
			)))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("category_id").EQ(sqlite.Arg(*filter.CategoryID))))
		}
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("type").EQ(sqlite.Arg(string(*filter.Type)))))
		}
		if filter.StartDate != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("date").GTE(sqlite.Arg(formatDate(*filter.StartDate)))))
		}
		if filter.EndDate != nil {
			queryMods = append(queryMods, sm.Where(sqlite.Quote("date").LTE(sqlite.Arg(formatDate(*filter.EndDate)))))
		}
		queryMods = append(queryMods, pageMods(filter.Limit, filter.Offset)...)
	}
	queryMods = append(queryMods,
		sm.OrderBy("date").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := listRows[transactionRow](ctx, t.exec, transactionsTable, transactionColumns, queryMods...)
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		if result[i], err = row.toTransaction(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ClearCategory nulls category_id on every transaction of a category and
// returns how many rows were orphaned.
func (t *TransactionsTable) ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	res, err := bob.Exec(ctx, t.exec, sqlite.Update(
		um.Table(transactionsTable),
		um.SetCol("category_id").ToArg(nil),
		um.Where(sqlite.Quote("category_id").EQ(sqlite.Arg(categoryID))),
	))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByAccount removes every transaction on either side of an account.
func (t *TransactionsTable) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	res, err := bob.Exec(ctx, t.exec, sqlite.Delete(
		dm.From(transactionsTable),
		dm.Where(sqlite.Or(
			sqlite.Quote("account_id").EQ(sqlite.Arg(accountID)),
			sqlite.Quote("to_account_id").EQ(sqlite.Arg(accountID)),
		)),
	))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
