package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Loan represents a loan record. InterestRate is an annual percentage.
type Loan struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Lender           string          `json:"lender"`
	Principal        decimal.Decimal `json:"principal"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PaymentFrequency Cadence         `json:"payment_frequency"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
}

type ILoanTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	Insert(ctx context.Context, loan *Loan) (uuid.UUID, error)
	Update(ctx context.Context, loan *Loan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Loan, error)
}

type loanRow struct {
	ID               uuid.UUID       `db:"id"`
	Name             string          `db:"name"`
	Lender           string          `db:"lender"`
	Principal        decimal.Decimal `db:"principal"`
	CurrentBalance   decimal.Decimal `db:"current_balance"`
	InterestRate     decimal.Decimal `db:"interest_rate"`
	PaymentAmount    decimal.Decimal `db:"payment_amount"`
	PaymentFrequency string          `db:"payment_frequency"`
	StartDate        sql.NullString  `db:"start_date"`
	EndDate          sql.NullString  `db:"end_date"`
}

var loanColumns = []string{
	"id", "name", "lender", "principal", "current_balance", "interest_rate",
	"payment_amount", "payment_frequency", "start_date", "end_date",
}

func (r loanRow) toLoan() *Loan {
	return &Loan{
		ID:               r.ID,
		Name:             r.Name,
		Lender:           r.Lender,
		Principal:        r.Principal,
		CurrentBalance:   r.CurrentBalance,
		InterestRate:     r.InterestRate,
		PaymentAmount:    r.PaymentAmount,
		PaymentFrequency: Cadence(r.PaymentFrequency),
		StartDate:        parseNullDate(r.StartDate),
		EndDate:          parseNullDate(r.EndDate),
	}
}

func loanValues(l *Loan) []any {
	return []any{
		l.ID, l.Name, l.Lender, l.Principal, l.CurrentBalance, l.InterestRate,
		l.PaymentAmount, string(l.PaymentFrequency), nullDate(l.StartDate), nullDate(l.EndDate),
	}
}
