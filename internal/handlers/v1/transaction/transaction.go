package transaction

import (
	"time"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string   `json:"id" doc:"Transaction UUID"`
	AccountID   string   `json:"accountID" doc:"Source account UUID"`
	ToAccountID string   `json:"toAccountID,omitempty" doc:"Destination account UUID, transfers only"`
	CategoryID  string   `json:"categoryID,omitempty" doc:"Category UUID, absent for transfers and cleared categories"`
	Type        string   `json:"type" doc:"income, expense or transfer"`
	Amount      string   `json:"amount" doc:"Decimal magnitude; the sign is implied by type"`
	Date        string   `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	Merchant    string   `json:"merchant" doc:"Merchant or payee"`
	Notes       string   `json:"notes" doc:"Free-form notes"`
	Tags        []string `json:"tags" doc:"Tags"`
	TaxAmount   string   `json:"taxAmount,omitempty" doc:"Decimal tax portion, if recorded"`
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	AccountID   string   `json:"accountID" format:"uuid" doc:"Source account UUID"`
	ToAccountID string   `json:"toAccountID,omitempty" format:"uuid" doc:"Destination account UUID, required for transfers"`
	CategoryID  string   `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID, required for income and expense"`
	Type        string   `json:"type" enum:"income,expense,transfer" doc:"Transaction type"`
	Amount      string   `json:"amount" doc:"Non-negative decimal amount"`
	Date        string   `json:"date,omitempty" format:"date" doc:"Transaction date, YYYY-MM-DD, defaults to today"`
	Merchant    string   `json:"merchant,omitempty" doc:"Merchant or payee"`
	Notes       string   `json:"notes,omitempty" doc:"Free-form notes"`
	Tags        []string `json:"tags,omitempty" doc:"Tags"`
	TaxAmount   string   `json:"taxAmount,omitempty" doc:"Decimal tax portion"`
}

// TransactionPath identifies a transaction in the URL.
type TransactionPath struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

func fromService(tx service.Transaction) Transaction {
	tags := tx.Tags
	if tags == nil {
		tags = []string{}
	}
	return Transaction{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		ToAccountID: apiutil.FormatNullID(tx.ToAccountID),
		CategoryID:  apiutil.FormatNullID(tx.CategoryID),
		Type:        string(tx.Type),
		Amount:      tx.Amount.String(),
		Date:        apiutil.FormatDate(tx.Date),
		Merchant:    tx.Merchant,
		Notes:       tx.Notes,
		Tags:        tags,
		TaxAmount:   apiutil.FormatNullDecimal(tx.TaxAmount),
	}
}

// parseTransactionBody converts the body to a service transaction. A
// missing date means today in UTC.
func parseTransactionBody(body TransactionBody, now time.Time) (service.Transaction, error) {
	var (
		tx  service.Transaction
		err error
	)
	if tx.AccountID, err = apiutil.ID("accountID", body.AccountID); err != nil {
		return tx, err
	}
	if tx.ToAccountID, err = apiutil.NullID("toAccountID", body.ToAccountID); err != nil {
		return tx, err
	}
	if tx.CategoryID, err = apiutil.NullID("categoryID", body.CategoryID); err != nil {
		return tx, err
	}
	if tx.Amount, err = apiutil.Decimal("amount", body.Amount); err != nil {
		return tx, err
	}
	if tx.TaxAmount, err = apiutil.NullDecimal("taxAmount", body.TaxAmount); err != nil {
		return tx, err
	}
	if tx.Date, err = apiutil.Date("date", body.Date); err != nil {
		return tx, err
	}
	if tx.Date.IsZero() {
		y, m, d := now.UTC().Date()
		tx.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	tx.Type = sqlconfig.TransactionType(body.Type)
	tx.Merchant = body.Merchant
	tx.Notes = body.Notes
	tx.Tags = body.Tags
	return tx, nil
}
