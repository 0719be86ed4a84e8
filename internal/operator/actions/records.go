package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type recordTable[T any] interface {
	Insert(ctx context.Context, record *T) (uuid.UUID, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// checkFunc validates a record against the rest of the store inside the
// write transaction.
type checkFunc[T any] func(ctx context.Context, w *storage.Writer, record *T) error

// entity binds a record type to its table, its validation and the
// collections a write to it invalidates.
type entity[T any] struct {
	table    func(w *storage.Writer) recordTable[T]
	validate func(record *T) error
	check    checkFunc[T]
	kinds    []notify.Kind
}

// Insert creates Record and stores the assigned id in ID.
type Insert[T any] struct {
	Record *T
	ID     uuid.UUID
	entity entity[T]
}

func (a *Insert[T]) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.entity.validate != nil {
		if err := a.entity.validate(a.Record); err != nil {
			return err
		}
	}
	if a.entity.check != nil {
		if err := a.entity.check(ctx, writer, a.Record); err != nil {
			return err
		}
	}
	id, err := a.entity.table(writer).Insert(ctx, a.Record)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (a *Insert[T]) Touches() []notify.Kind { return a.entity.kinds }

// Update overwrites every field of an existing record.
type Update[T any] struct {
	Record *T
	entity entity[T]
}

func (a *Update[T]) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.entity.validate != nil {
		if err := a.entity.validate(a.Record); err != nil {
			return err
		}
	}
	if a.entity.check != nil {
		if err := a.entity.check(ctx, writer, a.Record); err != nil {
			return err
		}
	}
	return a.entity.table(writer).Update(ctx, a.Record)
}

func (a *Update[T]) Touches() []notify.Kind { return a.entity.kinds }

// Delete removes one record by id.
type Delete[T any] struct {
	ID     uuid.UUID
	entity entity[T]
}

func (a *Delete[T]) Perform(ctx context.Context, writer *storage.Writer) error {
	return a.entity.table(writer).Delete(ctx, a.ID)
}

func (a *Delete[T]) Touches() []notify.Kind { return a.entity.kinds }

var (
	accounts = entity[sqlconfig.Account]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Account] { return w.Accounts },
		validate: ValidateAccount,
		kinds:    []notify.Kind{notify.KindAccounts},
	}
	categories = entity[sqlconfig.Category]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Category] { return w.Categories },
		validate: ValidateCategory,
		check:    checkCategoryType,
		kinds:    []notify.Kind{notify.KindCategories},
	}
	budgets = entity[sqlconfig.Budget]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Budget] { return w.Budgets },
		validate: ValidateBudget,
		check:    checkBudgetCategory,
		kinds:    []notify.Kind{notify.KindBudgets},
	}
	goals = entity[sqlconfig.Goal]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Goal] { return w.Goals },
		validate: ValidateGoal,
		check:    checkGoalAccount,
		kinds:    []notify.Kind{notify.KindGoals},
	}
	bills = entity[sqlconfig.Bill]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Bill] { return w.Bills },
		validate: ValidateBill,
		kinds:    []notify.Kind{notify.KindBills},
	}
	loans = entity[sqlconfig.Loan]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Loan] { return w.Loans },
		validate: ValidateLoan,
		kinds:    []notify.Kind{notify.KindLoans},
	}
	plans = entity[sqlconfig.Plan]{
		table:    func(w *storage.Writer) recordTable[sqlconfig.Plan] { return w.Plans },
		validate: ValidatePlan,
		check:    checkPlanReference,
		kinds:    []notify.Kind{notify.KindPlans},
	}
)

func CreateAccount(a *sqlconfig.Account) *Insert[sqlconfig.Account] {
	return &Insert[sqlconfig.Account]{Record: a, entity: accounts}
}

func UpdateAccount(a *sqlconfig.Account) *Update[sqlconfig.Account] {
	return &Update[sqlconfig.Account]{Record: a, entity: accounts}
}

func CreateCategory(c *sqlconfig.Category) *Insert[sqlconfig.Category] {
	return &Insert[sqlconfig.Category]{Record: c, entity: categories}
}

func UpdateCategory(c *sqlconfig.Category) *Update[sqlconfig.Category] {
	return &Update[sqlconfig.Category]{Record: c, entity: categories}
}

func CreateBudget(b *sqlconfig.Budget) *Insert[sqlconfig.Budget] {
	return &Insert[sqlconfig.Budget]{Record: b, entity: budgets}
}

func UpdateBudget(b *sqlconfig.Budget) *Update[sqlconfig.Budget] {
	return &Update[sqlconfig.Budget]{Record: b, entity: budgets}
}

func DeleteBudget(id uuid.UUID) *Delete[sqlconfig.Budget] {
	return &Delete[sqlconfig.Budget]{ID: id, entity: budgets}
}

func CreateGoal(g *sqlconfig.Goal) *Insert[sqlconfig.Goal] {
	return &Insert[sqlconfig.Goal]{Record: g, entity: goals}
}

func UpdateGoal(g *sqlconfig.Goal) *Update[sqlconfig.Goal] {
	return &Update[sqlconfig.Goal]{Record: g, entity: goals}
}

func DeleteGoal(id uuid.UUID) *Delete[sqlconfig.Goal] {
	return &Delete[sqlconfig.Goal]{ID: id, entity: goals}
}

func CreateBill(b *sqlconfig.Bill) *Insert[sqlconfig.Bill] {
	return &Insert[sqlconfig.Bill]{Record: b, entity: bills}
}

func UpdateBill(b *sqlconfig.Bill) *Update[sqlconfig.Bill] {
	return &Update[sqlconfig.Bill]{Record: b, entity: bills}
}

func DeleteBill(id uuid.UUID) *Delete[sqlconfig.Bill] {
	return &Delete[sqlconfig.Bill]{ID: id, entity: bills}
}

func CreateLoan(l *sqlconfig.Loan) *Insert[sqlconfig.Loan] {
	return &Insert[sqlconfig.Loan]{Record: l, entity: loans}
}

func UpdateLoan(l *sqlconfig.Loan) *Update[sqlconfig.Loan] {
	return &Update[sqlconfig.Loan]{Record: l, entity: loans}
}

func DeleteLoan(id uuid.UUID) *Delete[sqlconfig.Loan] {
	return &Delete[sqlconfig.Loan]{ID: id, entity: loans}
}

func CreatePlan(p *sqlconfig.Plan) *Insert[sqlconfig.Plan] {
	return &Insert[sqlconfig.Plan]{Record: p, entity: plans}
}

func UpdatePlan(p *sqlconfig.Plan) *Update[sqlconfig.Plan] {
	return &Update[sqlconfig.Plan]{Record: p, entity: plans}
}

func DeletePlan(id uuid.UUID) *Delete[sqlconfig.Plan] {
	return &Delete[sqlconfig.Plan]{ID: id, entity: plans}
}

func checkBudgetCategory(ctx context.Context, w *storage.Writer, b *sqlconfig.Budget) error {
	if _, err := w.Categories.FindByID(ctx, b.CategoryID); err != nil {
		return referenceError("category", b.CategoryID, err)
	}
	return nil
}

// checkCategoryType keeps a category's type fixed while transactions
// reference it, since they must match it.
func checkCategoryType(ctx context.Context, w *storage.Writer, c *sqlconfig.Category) error {
	if c.ID.IsNil() {
		return nil
	}
	existing, err := w.Categories.FindByID(ctx, c.ID)
	if errorsIsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load category %s: %w", c.ID, err)
	}
	if existing.Type == c.Type {
		return nil
	}
	referencing, err := w.Transactions.List(ctx, &sqlconfig.TransactionFilter{CategoryID: &c.ID, Limit: 1})
	if err != nil {
		return fmt.Errorf("list transactions in category %s: %w", c.ID, err)
	}
	if len(referencing) > 0 {
		return invalid("category %q has %s transactions; its type cannot change", existing.Name, existing.Type)
	}
	return nil
}

func checkGoalAccount(ctx context.Context, w *storage.Writer, g *sqlconfig.Goal) error {
	if !g.AccountID.Valid {
		return nil
	}
	if _, err := w.Accounts.FindByID(ctx, g.AccountID.UUID); err != nil {
		return referenceError("account", g.AccountID.UUID, err)
	}
	return nil
}

func checkPlanReference(ctx context.Context, w *storage.Writer, p *sqlconfig.Plan) error {
	var err error
	switch p.ReferenceType {
	case sqlconfig.PlanReferenceTransaction:
		_, err = w.Transactions.FindByID(ctx, p.ReferenceID)
	case sqlconfig.PlanReferenceLoan:
		_, err = w.Loans.FindByID(ctx, p.ReferenceID)
	case sqlconfig.PlanReferenceGoal:
		_, err = w.Goals.FindByID(ctx, p.ReferenceID)
	}
	if err != nil {
		return referenceError(string(p.ReferenceType), p.ReferenceID, err)
	}
	return nil
}

// referenceError turns a missing referenced record into a validation
// failure; other storage errors pass through.
func referenceError(kind string, id uuid.UUID, err error) error {
	if errorsIsNotFound(err) {
		return invalid("%s %s does not exist", kind, id)
	}
	return fmt.Errorf("load %s %s: %w", kind, id, err)
}
