package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Account represents an account in the service layer. Balance is derived
// from the transaction history on every read and ignored on writes.
type Account struct {
	ID             uuid.UUID
	Name           string
	Type           string
	Currency       string
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountDeletion reports what deleting an account removed alongside it.
type AccountDeletion struct {
	RemovedTransactions int64
	UnlinkedGoals       int64
}

func accountToStorage(a Account) *sqlconfig.Account {
	return &sqlconfig.Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		Currency:       a.Currency,
		InitialBalance: a.InitialBalance,
	}
}

func accountFromStorage(row *sqlconfig.Account, balance decimal.Decimal) Account {
	return Account{
		ID:             row.ID,
		Name:           row.Name,
		Type:           row.Type,
		Currency:       row.Currency,
		InitialBalance: row.InitialBalance,
		Balance:        balance,
	}
}
