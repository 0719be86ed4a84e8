package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction sqlconfig.Transaction

// TransactionFilter narrows a transaction listing. Nil fields match all.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *sqlconfig.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

func (t Transaction) toStorage() *sqlconfig.Transaction {
	row := sqlconfig.Transaction(t)
	return &row
}
