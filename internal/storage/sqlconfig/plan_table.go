package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const plansTable = "plans"

var _ IPlanTable = (*PlansTable)(nil)

type PlansTable struct {
	exec bob.Executor
}

func NewPlansTable(exec bob.Executor) *PlansTable {
	return &PlansTable{exec: exec}
}

func (t *PlansTable) FindByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	row, err := findByID[planRow](ctx, t.exec, plansTable, planColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toPlan(), nil
}

func (t *PlansTable) Insert(ctx context.Context, plan *Plan) (uuid.UUID, error) {
	id, err := newID(plan.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *plan
	row.ID = id
	if err := insertRow(ctx, t.exec, plansTable, planColumns, planValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *PlansTable) Update(ctx context.Context, plan *Plan) error {
	return updateByID(ctx, t.exec, plansTable, planColumns, planValues(plan))
}

func (t *PlansTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, plansTable, id)
}

func (t *PlansTable) List(ctx context.Context) ([]*Plan, error) {
	rows, err := listRows[planRow](ctx, t.exec, plansTable, planColumns,
		sm.OrderBy("reference_type").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*Plan, len(rows))
	for i, row := range rows {
		result[i] = row.toPlan()
	}
	return result, nil
}
