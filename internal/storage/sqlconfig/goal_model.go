package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal. CurrentAmount is stored and only moves
// when a caller updates it or records a contribution.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"` // zero when unset
	AccountID     uuid.NullUUID   `json:"account_id"`
}

type IGoalTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	Insert(ctx context.Context, goal *Goal) (uuid.UUID, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Goal, error)
	UnlinkAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type goalRow struct {
	ID            uuid.UUID       `db:"id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TargetDate    sql.NullString  `db:"target_date"`
	AccountID     uuid.NullUUID   `db:"account_id"`
}

var goalColumns = []string{"id", "name", "target_amount", "current_amount", "target_date", "account_id"}

func (r goalRow) toGoal() *Goal {
	return &Goal{
		ID:            r.ID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		TargetDate:    parseNullDate(r.TargetDate),
		AccountID:     r.AccountID,
	}
}

func goalValues(g *Goal) []any {
	return []any{g.ID, g.Name, g.TargetAmount, g.CurrentAmount, nullDate(g.TargetDate), g.AccountID}
}
