package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record. The current balance is never
// stored; it is derived from InitialBalance and the transaction history.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// IAccountTable defines the interface for account storage operations.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, account *Account) (uuid.UUID, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

type accountRow struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Type           string          `db:"type"`
	Currency       string          `db:"currency"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
}

var accountColumns = []string{"id", "name", "type", "currency", "initial_balance"}

func (r accountRow) toAccount() *Account {
	return &Account{
		ID:             r.ID,
		Name:           r.Name,
		Type:           r.Type,
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
	}
}

func accountValues(a *Account) []any {
	return []any{a.ID, a.Name, a.Type, a.Currency, a.InitialBalance}
}
