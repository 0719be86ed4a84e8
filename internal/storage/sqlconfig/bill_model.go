package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Cadence is how often a bill recurs.
type Cadence string

const (
	CadenceOnce    Cadence = "once"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"
)

// Bill represents a bill record.
type Bill struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	NextDueDate time.Time       `json:"next_due_date"`
	Cadence     Cadence         `json:"cadence"`
	Paid        bool            `json:"paid"`
	AutoPay     bool            `json:"auto_pay"`
}

type IBillTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	Insert(ctx context.Context, bill *Bill) (uuid.UUID, error)
	Update(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Bill, error)
}

type billRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Amount      decimal.Decimal `db:"amount"`
	NextDueDate string          `db:"next_due_date"`
	Cadence     string          `db:"cadence"`
	Paid        bool            `db:"paid"`
	AutoPay     bool            `db:"auto_pay"`
}

var billColumns = []string{"id", "name", "amount", "next_due_date", "cadence", "paid", "auto_pay"}

func (r billRow) toBill() *Bill {
	return &Bill{
		ID:          r.ID,
		Name:        r.Name,
		Amount:      r.Amount,
		NextDueDate: parseDate(r.NextDueDate),
		Cadence:     Cadence(r.Cadence),
		Paid:        r.Paid,
		AutoPay:     r.AutoPay,
	}
}

func billValues(b *Bill) []any {
	return []any{b.ID, b.Name, b.Amount, formatDate(b.NextDueDate), string(b.Cadence), b.Paid, b.AutoPay}
}
