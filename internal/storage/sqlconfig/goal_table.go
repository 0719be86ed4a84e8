package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/bob/dialect/sqlite/um"
)

const goalsTable = "goals"

var _ IGoalTable = (*GoalsTable)(nil)

type GoalsTable struct {
	exec bob.Executor
}

func NewGoalsTable(exec bob.Executor) *GoalsTable {
	return &GoalsTable{exec: exec}
}

func (t *GoalsTable) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	row, err := findByID[goalRow](ctx, t.exec, goalsTable, goalColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toGoal(), nil
}

func (t *GoalsTable) Insert(ctx context.Context, goal *Goal) (uuid.UUID, error) {
	id, err := newID(goal.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *goal
	row.ID = id
	if err := insertRow(ctx, t.exec, goalsTable, goalColumns, goalValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *GoalsTable) Update(ctx context.Context, goal *Goal) error {
	return updateByID(ctx, t.exec, goalsTable, goalColumns, goalValues(goal))
}

func (t *GoalsTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, goalsTable, id)
}

func (t *GoalsTable) List(ctx context.Context) ([]*Goal, error) {
	rows, err := listRows[goalRow](ctx, t.exec, goalsTable, goalColumns,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*Goal, len(rows))
	for i, row := range rows {
		result[i] = row.toGoal()
	}
	return result, nil
}

// UnlinkAccount clears the linked account of every goal pointing at accountID.
func (t *GoalsTable) UnlinkAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	res, err := bob.Exec(ctx, t.exec, sqlite.Update(
		um.Table(goalsTable),
		um.SetCol("account_id").ToArg(nil),
		um.Where(sqlite.Quote("account_id").EQ(sqlite.Arg(accountID))),
	))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
