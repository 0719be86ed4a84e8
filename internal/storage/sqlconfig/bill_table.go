package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const billsTable = "bills"

var _ IBillTable = (*BillsTable)(nil)

type BillsTable struct {
	exec bob.Executor
}

func NewBillsTable(exec bob.Executor) *BillsTable {
	return &BillsTable{exec: exec}
}

func (t *BillsTable) FindByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	row, err := findByID[billRow](ctx, t.exec, billsTable, billColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toBill(), nil
}

func (t *BillsTable) Insert(ctx context.Context, bill *Bill) (uuid.UUID, error) {
	id, err := newID(bill.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *bill
	row.ID = id
	if err := insertRow(ctx, t.exec, billsTable, billColumns, billValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *BillsTable) Update(ctx context.Context, bill *Bill) error {
	return updateByID(ctx, t.exec, billsTable, billColumns, billValues(bill))
}

func (t *BillsTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, billsTable, id)
}

// List returns bills soonest-due first.
func (t *BillsTable) List(ctx context.Context) ([]*Bill, error) {
	rows, err := listRows[billRow](ctx, t.exec, billsTable, billColumns,
		sm.OrderBy("next_due_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*Bill, len(rows))
	for i, row := range rows {
		result[i] = row.toBill()
	}
	return result, nil
}
