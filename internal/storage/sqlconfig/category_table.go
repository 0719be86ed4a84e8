package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const categoriesTable = "categories"

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

var _ ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

func (t *CategoriesTable) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row, err := findByID[categoryRow](ctx, t.exec, categoriesTable, categoryColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toCategory(), nil
}

func (t *CategoriesTable) Insert(ctx context.Context, category *Category) (uuid.UUID, error) {
	id, err := newID(category.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *category
	row.ID = id
	if err := insertRow(ctx, t.exec, categoriesTable, categoryColumns, categoryValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *CategoriesTable) Update(ctx context.Context, category *Category) error {
	return updateByID(ctx, t.exec, categoriesTable, categoryColumns, categoryValues(category))
}

// Delete removes only the category row. Orphaning of transactions and
// removal of budgets is the caller's job, inside the same write.
func (t *CategoriesTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, categoriesTable, id)
}

func (t *CategoriesTable) List(ctx context.Context) ([]*Category, error) {
	rows, err := listRows[categoryRow](ctx, t.exec, categoriesTable, categoryColumns,
		sm.OrderBy("type").Asc(),
		sm.OrderBy("name").Asc(),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = row.toCategory()
	}
	return result, nil
}
