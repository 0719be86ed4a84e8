package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const budgetsTable = "budgets"

var _ IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

func (t *BudgetsTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	row, err := findByID[budgetRow](ctx, t.exec, budgetsTable, budgetColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toBudget(), nil
}

func (t *BudgetsTable) Insert(ctx context.Context, budget *Budget) (uuid.UUID, error) {
	id, err := newID(budget.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *budget
	row.ID = id
	if err := insertRow(ctx, t.exec, budgetsTable, budgetColumns, budgetValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *BudgetsTable) Update(ctx context.Context, budget *Budget) error {
	return updateByID(ctx, t.exec, budgetsTable, budgetColumns, budgetValues(budget))
}

func (t *BudgetsTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, budgetsTable, id)
}

func (t *BudgetsTable) List(ctx context.Context) ([]*Budget, error) {
	rows, err := listRows[budgetRow](ctx, t.exec, budgetsTable, budgetColumns, sm.OrderBy("id").Asc())
	if err != nil {
		return nil, err
	}
	result := make([]*Budget, len(rows))
	for i, row := range rows {
		result[i] = row.toBudget()
	}
	return result, nil
}

// DeleteByCategory removes the budgets that depend on a category.
func (t *BudgetsTable) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	res, err := bob.Exec(ctx, t.exec, sqlite.Delete(
		dm.From(budgetsTable),
		dm.Where(sqlite.Quote("category_id").EQ(sqlite.Arg(categoryID))),
	))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
