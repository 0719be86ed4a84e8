package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/klauspost/compress/zip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-desk/internal/config"
	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

func openStore(t *testing.T) (*storage.Storage, *operator.OperatorDelegator) {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "budget.db")
	store, err := storage.Open(cfg)
	require.NoError(t, err)

	op := operator.NewOperatorDelegator(store, 8, nil)
	op.Start()
	t.Cleanup(func() {
		op.Stop()
		_ = store.Close()
	})
	return store, op
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func id() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// seed stores one record of every kind.
func seed(t *testing.T, op *operator.OperatorDelegator) {
	t.Helper()
	checking := &sqlconfig.Account{ID: id(), Name: "Checking", Type: "bank", Currency: "USD", InitialBalance: decimal.NewFromInt(1000)}
	savings := &sqlconfig.Account{ID: id(), Name: "Savings", Type: "bank", Currency: "USD"}
	food := &sqlconfig.Category{ID: id(), Name: "Food", Type: sqlconfig.CategoryTypeExpense, Color: "#ff0000"}
	lunch := &sqlconfig.Transaction{
		ID:         id(),
		AccountID:  checking.ID,
		CategoryID: uuid.NullUUID{UUID: food.ID, Valid: true},
		Type:       sqlconfig.TransactionTypeExpense,
		Amount:     decimal.RequireFromString("12.75"),
		Date:       day(2025, 3, 4),
		Merchant:   "Deli",
		Tags:       []string{"work"},
		TaxAmount:  decimal.NewNullDecimal(decimal.RequireFromString("1.05")),
	}
	move := &sqlconfig.Transaction{
		ID:          id(),
		AccountID:   checking.ID,
		ToAccountID: uuid.NullUUID{UUID: savings.ID, Valid: true},
		Type:        sqlconfig.TransactionTypeTransfer,
		Amount:      decimal.NewFromInt(200),
		Date:        day(2025, 3, 5),
	}
	goal := &sqlconfig.Goal{
		ID:           id(),
		Name:         "Trip",
		TargetAmount: decimal.NewFromInt(3000),
		TargetDate:   day(2026, 6, 1),
		AccountID:    uuid.NullUUID{UUID: savings.ID, Valid: true},
	}
	loan := &sqlconfig.Loan{
		ID:               id(),
		Name:             "Car",
		Lender:           "Bank",
		Principal:        decimal.NewFromInt(15000),
		CurrentBalance:   decimal.NewFromInt(9000),
		InterestRate:     decimal.RequireFromString("4.5"),
		PaymentAmount:    decimal.NewFromInt(350),
		PaymentFrequency: sqlconfig.CadenceMonthly,
		StartDate:        day(2023, 1, 1),
		EndDate:          day(2027, 1, 1),
	}

	ctx := context.Background()
	for _, action := range []actions.IAction{
		actions.CreateAccount(checking),
		actions.CreateAccount(savings),
		actions.CreateCategory(food),
		&actions.CreateTransaction{Transaction: lunch},
		&actions.CreateTransaction{Transaction: move},
		actions.CreateBudget(&sqlconfig.Budget{ID: id(), CategoryID: food.ID, Period: sqlconfig.BudgetPeriodMonthly, LimitAmount: decimal.NewFromInt(400)}),
		actions.CreateGoal(goal),
		actions.CreateBill(&sqlconfig.Bill{ID: id(), Name: "Rent", Amount: decimal.NewFromInt(1200), NextDueDate: day(2025, 4, 1), Cadence: sqlconfig.CadenceMonthly, AutoPay: true}),
		actions.CreateLoan(loan),
		actions.CreatePlan(&sqlconfig.Plan{ID: id(), ReferenceType: sqlconfig.PlanReferenceLoan, ReferenceID: loan.ID, If: "rates drop", Else: "keep paying", MonthsOverdue: 1}),
	} {
		require.NoError(t, op.Process(ctx, action))
	}
}

func TestBackupRestore_RoundTripIntoEmptyStore(t *testing.T) {
	ctx := context.Background()
	source, sourceOp := openStore(t)
	seed(t, sourceOp)

	var buf bytes.Buffer
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	require.NoError(t, Write(ctx, source, &buf, created))

	doc, err := Read(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
	assert.True(t, created.Equal(doc.CreatedAt))

	target, targetOp := openStore(t)
	counts, err := Restore(ctx, targetOp, doc, true)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Inserted[notify.KindAccounts])
	assert.Equal(t, 2, counts.Inserted[notify.KindTransactions])
	assert.Equal(t, 1, counts.Inserted[notify.KindPlans])

	want, err := Snapshot(ctx, source)
	require.NoError(t, err)
	got, err := Snapshot(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRestore_UpsertsWithoutFull(t *testing.T) {
	ctx := context.Background()
	store, op := openStore(t)
	seed(t, op)

	data, err := Snapshot(ctx, store)
	require.NoError(t, err)
	data.Accounts[0].Name = "Renamed"
	extra := &sqlconfig.Category{ID: id(), Name: "Fun", Type: sqlconfig.CategoryTypeExpense}
	data.Categories = append(data.Categories, extra)

	counts, err := Restore(ctx, op, &Document{Version: Version, Collections: data}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, counts.Updated[notify.KindAccounts])
	assert.Equal(t, 1, counts.Updated[notify.KindCategories])
	assert.Equal(t, 1, counts.Inserted[notify.KindCategories])

	renamed, err := store.Accounts.FindByID(ctx, data.Accounts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)
	_, err = store.Categories.FindByID(ctx, extra.ID)
	assert.NoError(t, err)
}

func TestRestore_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store, op := openStore(t)
	seed(t, op)
	before, err := Snapshot(ctx, store)
	require.NoError(t, err)

	orphan := &sqlconfig.Transaction{
		ID:        id(),
		AccountID: id(),
		Type:      sqlconfig.TransactionTypeIncome,
		Amount:    decimal.NewFromInt(5),
		Date:      day(2025, 1, 1),
	}
	doc := &Document{Version: Version, Collections: &actions.Dataset{Transactions: []*sqlconfig.Transaction{orphan}}}

	_, err = Restore(ctx, op, doc, true)
	require.Error(t, err)

	after, err := Snapshot(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRestore_InvalidRecordLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store, op := openStore(t)
	seed(t, op)
	before, err := Snapshot(ctx, store)
	require.NoError(t, err)

	data, err := Snapshot(ctx, store)
	require.NoError(t, err)
	for _, tx := range data.Transactions {
		if tx.Type == sqlconfig.TransactionTypeTransfer {
			tx.CategoryID = uuid.NullUUID{UUID: data.Categories[0].ID, Valid: true}
		}
	}
	data.Accounts[0].Name = "Renamed"

	for _, full := range []bool{false, true} {
		_, err = Restore(ctx, op, &Document{Version: Version, Collections: data}, full)
		assert.ErrorIs(t, err, actions.ErrInvalid)

		after, err := Snapshot(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	}
}

func archive(t *testing.T, name string, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRead_Rejects(t *testing.T) {
	_, err := Read([]byte("plain text"))
	assert.ErrorIs(t, err, ErrMalformedArchive)

	_, err = Read(archive(t, "other.json", []byte("{}")))
	assert.ErrorIs(t, err, ErrMalformedArchive)

	_, err = Read(archive(t, documentName, []byte("{not json")))
	assert.ErrorIs(t, err, ErrMalformedArchive)

	future, err := json.Marshal(map[string]any{"version": Version + 1})
	require.NoError(t, err)
	_, err = Read(archive(t, documentName, future))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Read(archive(t, documentName, []byte(`{"version":1,"collections":{"accounts":[null]}}`)))
	assert.ErrorIs(t, err, ErrMalformedArchive)
	assert.ErrorContains(t, err, "accounts[0]")
}

func TestRead_EmptyCollections(t *testing.T) {
	doc, err := Read(archive(t, documentName, []byte(`{"version":1,"createdAt":"2025-01-01T00:00:00Z"}`)))
	require.NoError(t, err)
	require.NotNil(t, doc.Collections)
	assert.Empty(t, doc.Collections.Accounts)
}

func TestExportCSV(t *testing.T) {
	store, op := openStore(t)
	seed(t, op)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(context.Background(), store, notify.KindAccounts, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,type,currency,initial_balance", lines[0])
	assert.Contains(t, buf.String(), ",Checking,bank,USD,1000")

	err := ExportCSV(context.Background(), store, notify.Kind("pets"), &buf)
	assert.Error(t, err)
}

func TestExportAll(t *testing.T) {
	store, op := openStore(t)
	seed(t, op)
	dir := filepath.Join(t.TempDir(), "export")

	paths, err := ExportAll(context.Background(), store, dir)
	require.NoError(t, err)
	require.Len(t, paths, len(notify.AllKinds))

	for i, kind := range notify.AllKinds {
		assert.Equal(t, filepath.Join(dir, string(kind)+".csv"), paths[i])
		body, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		assert.GreaterOrEqual(t, len(lines), 2, "%s has a header and a record", kind)
	}
}
