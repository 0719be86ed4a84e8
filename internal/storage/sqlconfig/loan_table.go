package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

const loansTable = "loans"

var _ ILoanTable = (*LoansTable)(nil)

type LoansTable struct {
	exec bob.Executor
}

func NewLoansTable(exec bob.Executor) *LoansTable {
	return &LoansTable{exec: exec}
}

func (t *LoansTable) FindByID(ctx context.Context, id uuid.UUID) (*Loan, error) {
	row, err := findByID[loanRow](ctx, t.exec, loansTable, loanColumns, id)
	if err != nil {
		return nil, err
	}
	return row.toLoan(), nil
}

func (t *LoansTable) Insert(ctx context.Context, loan *Loan) (uuid.UUID, error) {
	id, err := newID(loan.ID)
	if err != nil {
		return uuid.Nil, err
	}
	row := *loan
	row.ID = id
	if err := insertRow(ctx, t.exec, loansTable, loanColumns, loanValues(&row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *LoansTable) Update(ctx context.Context, loan *Loan) error {
	return updateByID(ctx, t.exec, loansTable, loanColumns, loanValues(loan))
}

func (t *LoansTable) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, t.exec, loansTable, id)
}

func (t *LoansTable) List(ctx context.Context) ([]*Loan, error) {
	rows, err := listRows[loanRow](ctx, t.exec, loansTable, loanColumns,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*Loan, len(rows))
	for i, row := range rows {
		result[i] = row.toLoan()
	}
	return result, nil
}
