package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stephenafamo/bob"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/budget-desk/internal/config"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Storage is the record store. Reads go through the table fields; writes
// go through a Writer obtained from Write.
type Storage struct {
	DB    *sql.DB
	bobDB bob.DB

	Accounts     sqlconfig.IAccountTable
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable
	Goals        sqlconfig.IGoalTable
	Bills        sqlconfig.IBillTable
	Loans        sqlconfig.ILoanTable
	Plans        sqlconfig.IPlanTable
}

// Open creates the database directory if needed, migrates the schema and
// returns a Storage bound to a single connection.
func Open(cfg *config.Config) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if _, _, err := RunMigrations(cfg.DBPath); err != nil {
		return nil, err
	}

	dsn := "file:" + cfg.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewStorage(db), nil
}

// NewStorage wires every table to db.
func NewStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		bobDB:        bobDB,
		Accounts:     sqlconfig.NewAccountsTable(bobDB),
		Categories:   sqlconfig.NewCategoriesTable(bobDB),
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Budgets:      sqlconfig.NewBudgetsTable(bobDB),
		Goals:        sqlconfig.NewGoalsTable(bobDB),
		Bills:        sqlconfig.NewBillsTable(bobDB),
		Loans:        sqlconfig.NewLoansTable(bobDB),
		Plans:        sqlconfig.NewPlansTable(bobDB),
	}
}

// Write begins a transaction and returns a Writer bound to it. The caller
// must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("storage: no database")
	}
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
