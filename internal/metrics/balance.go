package metrics

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Balance derives an account's current balance from its initial balance
// and every transaction that references it on either side.
func Balance(account *sqlconfig.Account, txs []*sqlconfig.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, tx := range txs {
		balance = balance.Add(SignedAmount(account.ID, tx))
	}
	return balance
}

// SignedAmount is the effect tx has on the account accountID.
func SignedAmount(accountID uuid.UUID, tx *sqlconfig.Transaction) decimal.Decimal {
	switch tx.Type {
	case sqlconfig.TransactionTypeIncome:
		if tx.AccountID == accountID {
			return tx.Amount
		}
	case sqlconfig.TransactionTypeExpense:
		if tx.AccountID == accountID {
			return tx.Amount.Neg()
		}
	case sqlconfig.TransactionTypeTransfer:
		out := decimal.Zero
		if tx.AccountID == accountID {
			out = out.Sub(tx.Amount)
		}
		if tx.ToAccountID.Valid && tx.ToAccountID.UUID == accountID {
			out = out.Add(tx.Amount)
		}
		return out
	}
	return decimal.Zero
}
