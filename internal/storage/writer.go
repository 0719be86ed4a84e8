package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// clearOrder lists tables children first so deletes never trip a foreign key.
var clearOrder = []string{
	"plans", "transactions", "budgets", "goals", "bills", "loans", "categories", "accounts",
}

// Writer exposes every table bound to one transaction.
type Writer struct {
	tx bob.Tx

	Accounts     sqlconfig.IAccountTable
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable
	Goals        sqlconfig.IGoalTable
	Bills        sqlconfig.IBillTable
	Loans        sqlconfig.ILoanTable
	Plans        sqlconfig.IPlanTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     sqlconfig.NewAccountsTable(tx),
		Categories:   sqlconfig.NewCategoriesTable(tx),
		Transactions: sqlconfig.NewTransactionsTable(tx),
		Budgets:      sqlconfig.NewBudgetsTable(tx),
		Goals:        sqlconfig.NewGoalsTable(tx),
		Bills:        sqlconfig.NewBillsTable(tx),
		Loans:        sqlconfig.NewLoansTable(tx),
		Plans:        sqlconfig.NewPlansTable(tx),
	}
}

// Clear deletes every record of every kind.
func (w *Writer) Clear(ctx context.Context) error {
	for _, table := range clearOrder {
		if err := sqlconfig.DeleteAll(ctx, w.tx, table); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
