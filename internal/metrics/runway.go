package metrics

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusSafe     Status = "safe"
	StatusWarning  Status = "warning"
	StatusDanger   Status = "danger"
	StatusCritical Status = "critical"
)

var (
	safeMonths    = decimal.NewFromInt(9)
	warningMonths = decimal.NewFromInt(6)
	dangerMonths  = decimal.NewFromInt(3)
)

// Runway is a burn-rate projection. Months is meaningful only when
// Unbounded is false.
type Runway struct {
	Cash      decimal.Decimal
	AvgBurn   decimal.Decimal
	AvgIncome decimal.Decimal
	NetBurn   decimal.Decimal
	Months    decimal.Decimal
	Unbounded bool
	Status    Status
}

// Band classifies a runway length.
func Band(months decimal.Decimal, unbounded bool) Status {
	switch {
	case unbounded, months.GreaterThanOrEqual(safeMonths):
		return StatusSafe
	case months.GreaterThanOrEqual(warningMonths):
		return StatusWarning
	case months.GreaterThanOrEqual(dangerMonths):
		return StatusDanger
	default:
		return StatusCritical
	}
}

// Mean of sample; zero for an empty sample.
func Mean(sample []decimal.Decimal) decimal.Decimal {
	if len(sample) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, sample...).Div(decimal.NewFromInt(int64(len(sample))))
}

// Estimate projects how many months cash lasts at the mean of expenses.
func Estimate(cash decimal.Decimal, expenses []decimal.Decimal) Runway {
	burn := Mean(expenses)
	r := Runway{Cash: cash, AvgBurn: burn, AvgIncome: decimal.Zero, NetBurn: burn}
	r.project()
	return r
}

// EstimateWithIncome offsets burn by mean income. A non-positive net burn
// never exhausts cash.
func EstimateWithIncome(cash decimal.Decimal, expenses, incomes []decimal.Decimal) Runway {
	burn := Mean(expenses)
	income := Mean(incomes)
	r := Runway{Cash: cash, AvgBurn: burn, AvgIncome: income, NetBurn: burn.Sub(income)}
	r.project()
	return r
}

func (r *Runway) project() {
	if r.NetBurn.IsPositive() {
		r.Months = r.Cash.Div(r.NetBurn)
	} else {
		r.Unbounded = true
		r.Months = decimal.Zero
	}
	r.Status = Band(r.Months, r.Unbounded)
}

// Tracker holds a mutable sample and keeps a projection consistent with it.
// Every mutation recomputes the projection under the same lock, so a
// Snapshot never mixes burn from one sample with runway from another.
type Tracker struct {
	mu          sync.RWMutex
	cash        decimal.Decimal
	expenses    []decimal.Decimal
	incomes     []decimal.Decimal
	incomeAware bool
	generation  uint64
	current     Runway
}

func NewTracker(cash decimal.Decimal, incomeAware bool) *Tracker {
	t := &Tracker{cash: cash, incomeAware: incomeAware}
	t.recompute()
	return t
}

// AddExpense appends a monthly expense total and returns the new projection.
func (t *Tracker) AddExpense(amount decimal.Decimal) (Runway, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expenses = append(t.expenses, amount)
	t.recompute()
	return t.current, t.generation
}

// AddIncome appends a monthly income total and returns the new projection.
func (t *Tracker) AddIncome(amount decimal.Decimal) (Runway, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.incomes = append(t.incomes, amount)
	t.recompute()
	return t.current, t.generation
}

// RemoveExpense drops the expense entry at index i.
func (t *Tracker) RemoveExpense(i int) (Runway, uint64, error) {
	return t.remove(&t.expenses, "expense", i)
}

// RemoveIncome drops the income entry at index i.
func (t *Tracker) RemoveIncome(i int) (Runway, uint64, error) {
	return t.remove(&t.incomes, "income", i)
}

func (t *Tracker) remove(entries *[]decimal.Decimal, name string, i int) (Runway, uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(*entries) {
		return t.current, t.generation, fmt.Errorf("%s index %d out of range [0,%d)", name, i, len(*entries))
	}
	*entries = append((*entries)[:i], (*entries)[i+1:]...)
	t.recompute()
	return t.current, t.generation, nil
}

// SetCash replaces the cash position.
func (t *Tracker) SetCash(cash decimal.Decimal) (Runway, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cash = cash
	t.recompute()
	return t.current, t.generation
}

// Snapshot returns the projection and the sample generation it came from.
func (t *Tracker) Snapshot() (Runway, uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.generation
}

func (t *Tracker) recompute() {
	t.generation++
	if t.incomeAware {
		t.current = EstimateWithIncome(t.cash, t.expenses, t.incomes)
		return
	}
	t.current = Estimate(t.cash, t.expenses)
}
