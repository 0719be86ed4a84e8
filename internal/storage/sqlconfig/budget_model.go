package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// BudgetPeriod selects the window over which a budget's spend is summed.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget represents a budget record. Spent is derived per read and not stored.
type Budget struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Period      BudgetPeriod    `json:"period"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

type IBudgetTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	Insert(ctx context.Context, budget *Budget) (uuid.UUID, error)
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Budget, error)
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type budgetRow struct {
	ID          uuid.UUID       `db:"id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	Period      string          `db:"period"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
}

var budgetColumns = []string{"id", "category_id", "period", "limit_amount"}

func (r budgetRow) toBudget() *Budget {
	return &Budget{
		ID:          r.ID,
		CategoryID:  r.CategoryID,
		Period:      BudgetPeriod(r.Period),
		LimitAmount: r.LimitAmount,
	}
}

func budgetValues(b *Budget) []any {
	return []any{b.ID, b.CategoryID, string(b.Period), b.LimitAmount}
}
