package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("%s name is required", kind)
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}

func ValidateAccount(a *sqlconfig.Account) error {
	return requireName("account", a.Name)
}

func ValidateCategory(c *sqlconfig.Category) error {
	if err := requireName("category", c.Name); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return invalid("category type %q must be income or expense", c.Type)
	}
	return nil
}

// ValidateTransaction checks the shape rules: a transfer has a distinct
// destination and no category; income and expense have no destination.
// requireCategory is false when updating a transaction whose category was
// cleared by a category deletion.
func ValidateTransaction(t *sqlconfig.Transaction, requireCategory bool) error {
	if !t.Type.Valid() {
		return invalid("transaction type %q must be income, expense or transfer", t.Type)
	}
	if err := requireNonNegative("amount", t.Amount); err != nil {
		return err
	}
	if t.TaxAmount.Valid {
		if err := requireNonNegative("tax amount", t.TaxAmount.Decimal); err != nil {
			return err
		}
	}
	if t.Date.IsZero() {
		return invalid("transaction date is required")
	}
	if t.Type == sqlconfig.TransactionTypeTransfer {
		if !t.ToAccountID.Valid {
			return invalid("transfer requires a destination account")
		}
		if t.ToAccountID.UUID == t.AccountID {
			return invalid("transfer destination must differ from source")
		}
		if t.CategoryID.Valid {
			return invalid("transfer must not have a category")
		}
		return nil
	}
	if t.ToAccountID.Valid {
		return invalid("%s must not have a destination account", t.Type)
	}
	if requireCategory && !t.CategoryID.Valid {
		return invalid("%s requires a category", t.Type)
	}
	return nil
}

func ValidateBudget(b *sqlconfig.Budget) error {
	return requireNonNegative("limit", b.LimitAmount)
}

func ValidateGoal(g *sqlconfig.Goal) error {
	if err := requireName("goal", g.Name); err != nil {
		return err
	}
	return requireNonNegative("target amount", g.TargetAmount)
}

func ValidateBill(b *sqlconfig.Bill) error {
	if err := requireName("bill", b.Name); err != nil {
		return err
	}
	if err := requireNonNegative("amount", b.Amount); err != nil {
		return err
	}
	if b.NextDueDate.IsZero() {
		return invalid("bill next due date is required")
	}
	if !validCadence(b.Cadence) {
		return invalid("bill cadence %q must be once, weekly, monthly or yearly", b.Cadence)
	}
	return nil
}

func ValidateLoan(l *sqlconfig.Loan) error {
	if err := requireName("loan", l.Name); err != nil {
		return err
	}
	for field, v := range map[string]decimal.Decimal{
		"principal":       l.Principal,
		"current balance": l.CurrentBalance,
		"interest rate":   l.InterestRate,
		"payment amount":  l.PaymentAmount,
	} {
		if err := requireNonNegative(field, v); err != nil {
			return err
		}
	}
	if !l.StartDate.IsZero() && !l.EndDate.IsZero() && l.EndDate.Before(l.StartDate) {
		return invalid("loan end date precedes start date")
	}
	return nil
}

func ValidatePlan(p *sqlconfig.Plan) error {
	if !p.ReferenceType.Valid() {
		return invalid("plan reference type %q must be transaction, loan or goal", p.ReferenceType)
	}
	if p.ReferenceID.IsNil() {
		return invalid("plan reference id is required")
	}
	if p.MonthsOverdue < 0 {
		return invalid("months overdue must not be negative")
	}
	return nil
}

func validCadence(c sqlconfig.Cadence) bool {
	switch c {
	case sqlconfig.CadenceOnce, sqlconfig.CadenceWeekly, sqlconfig.CadenceMonthly, sqlconfig.CadenceYearly:
		return true
	}
	return false
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, sqlconfig.ErrNotFound)
}
