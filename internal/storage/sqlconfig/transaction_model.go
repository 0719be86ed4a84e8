package sqlconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType determines the sign a transaction carries for the
// accounts it references.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction represents a transaction record. Amount is a non-negative
// magnitude; the sign is implied by Type.
type Transaction struct {
	ID          uuid.UUID           `json:"id"`
	AccountID   uuid.UUID           `json:"account_id"`
	ToAccountID uuid.NullUUID       `json:"to_account_id"`
	CategoryID  uuid.NullUUID       `json:"category_id"`
	Type        TransactionType     `json:"type"`
	Amount      decimal.Decimal     `json:"amount"`
	Date        time.Time           `json:"date"`
	Merchant    string              `json:"merchant"`
	Notes       string              `json:"notes"`
	Tags        []string            `json:"tags"`
	TaxAmount   decimal.NullDecimal `json:"tax_amount"`
}

// TransactionFilter specifies filters for listing transactions. AccountID
// matches either side of a transfer. Dates are inclusive.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// ITransactionTable defines the interface for transaction storage operations.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, transaction *Transaction) (uuid.UUID, error)
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	ClearCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type transactionRow struct {
	ID          uuid.UUID           `db:"id"`
	AccountID   uuid.UUID           `db:"account_id"`
	ToAccountID uuid.NullUUID       `db:"to_account_id"`
	CategoryID  uuid.NullUUID       `db:"category_id"`
	Type        string              `db:"type"`
	Amount      decimal.Decimal     `db:"amount"`
	Date        string              `db:"date"`
	Merchant    string              `db:"merchant"`
	Notes       string              `db:"notes"`
	Tags        string              `db:"tags"`
	TaxAmount   decimal.NullDecimal `db:"tax_amount"`
}

var transactionColumns = []string{
	"id", "account_id", "to_account_id", "category_id", "type", "amount",
	"date", "merchant", "notes", "tags", "tax_amount",
}

func (r transactionRow) toTransaction() (*Transaction, error) {
	var tags []string
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return nil, fmt.Errorf("transaction %s: decode tags: %w", r.ID, err)
		}
	}
	return &Transaction{
		ID:          r.ID,
		AccountID:   r.AccountID,
		ToAccountID: r.ToAccountID,
		CategoryID:  r.CategoryID,
		Type:        TransactionType(r.Type),
		Amount:      r.Amount,
		Date:        parseDate(r.Date),
		Merchant:    r.Merchant,
		Notes:       r.Notes,
		Tags:        tags,
		TaxAmount:   r.TaxAmount,
	}, nil
}

func transactionValues(t *Transaction) ([]any, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return []any{
		t.ID, t.AccountID, t.ToAccountID, t.CategoryID, string(t.Type), t.Amount,
		formatDate(t.Date), t.Merchant, t.Notes, string(encodedTags), t.TaxAmount,
	}, nil
}
