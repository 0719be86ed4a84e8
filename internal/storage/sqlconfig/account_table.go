package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const accountsTable = "accounts"

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ IAccountTable = (*AccountsTable)(nil)

// NewAccountsTable creates an AccountsTable bound to exec, which may be a
// bob.DB or a bob.Tx.
func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := findByID[accountRow](ctx, t.exec, accountsTable, accountColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toAccount(), nil
}

// Insert creates a new account and returns its ID. A nil ID is replaced by
// a generated one.
func (t *AccountsTable) Insert(ctx context.Context, account *Account) (uuid.UUID, error) {
	id, err := newID(account.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *account
	row.ID = id
	if err := insertRow(ctx, t.exec, accountsTable, accountColumns, accountValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update overwrites every field of an existing account.
func (t *AccountsTable) Update(ctx context.Context, account *Account) error {
	return updateByID(ctx, t.exec, accountsTable, accountColumns, accountValues(account))
}

// Delete removes an account by primary key.
func (t *AccountsTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, accountsTable, id)
}

// List returns accounts ordered by name. Nil filter returns all; a limit
// fetches one extra row so callers can detect a further page.
func (t *AccountsTable) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		queryMods = pageMods(filter.Limit, filter.Offset)
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := listRows[accountRow](ctx, t.exec, accountsTable, accountColumns, queryMods...)
	if err != nil {
		return nil, err
	}
	result := make([]*Account, len(rows))
	for i, row := range rows {
		result[i] = row.toAccount()
	}
	return result, nil
}
