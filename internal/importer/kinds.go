package importer

import (
	"context"
	"strconv"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

var accountCodec = &codec[sqlconfig.Account]{
	headers: []string{"id", "name", "type", "currency", "initial_balance"},
	idOf:    func(a *sqlconfig.Account) *uuid.UUID { return &a.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Account, error) {
		return s.Accounts.List(ctx, nil)
	},
	format: func(a *sqlconfig.Account, _ *refs) []string {
		return []string{a.ID.String(), a.Name, a.Type, a.Currency, a.InitialBalance.String()}
	},
	assign: func(row Row, a *sqlconfig.Account, _ *refs, p *problems) {
		c := cells{row, p}
		c.str("name", &a.Name)
		c.str("type", &a.Type)
		c.str("currency", &a.Currency)
		c.decimal("initial_balance", &a.InitialBalance)
	},
	validate: func(_, a *sqlconfig.Account) error { return actions.ValidateAccount(a) },
	create:   func(a *sqlconfig.Account) actions.IAction { return actions.CreateAccount(a) },
	update:   func(a *sqlconfig.Account) actions.IAction { return actions.UpdateAccount(a) },
}

var categoryCodec = &codec[sqlconfig.Category]{
	headers: []string{"id", "name", "type", "color"},
	idOf:    func(c *sqlconfig.Category) *uuid.UUID { return &c.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Category, error) {
		return s.Categories.List(ctx)
	},
	format: func(c *sqlconfig.Category, _ *refs) []string {
		return []string{c.ID.String(), c.Name, string(c.Type), c.Color}
	},
	assign: func(row Row, cat *sqlconfig.Category, _ *refs, p *problems) {
		c := cells{row, p}
		c.str("name", &cat.Name)
		var typ string
		c.lower("type", &typ)
		if typ != "" {
			cat.Type = sqlconfig.CategoryType(typ)
		}
		c.str("color", &cat.Color)
	},
	validate: func(_, c *sqlconfig.Category) error { return actions.ValidateCategory(c) },
	create:   func(c *sqlconfig.Category) actions.IAction { return actions.CreateCategory(c) },
	update:   func(c *sqlconfig.Category) actions.IAction { return actions.UpdateCategory(c) },
}

var transactionCodec = &codec[sqlconfig.Transaction]{
	headers: []string{"id", "date", "merchant", "amount", "type", "category", "account", "to_account", "notes"},
	idOf:    func(t *sqlconfig.Transaction) *uuid.UUID { return &t.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Transaction, error) {
		return s.Transactions.List(ctx, nil)
	},
	format: func(t *sqlconfig.Transaction, r *refs) []string {
		return []string{
			t.ID.String(),
			formatDate(t.Date),
			t.Merchant,
			t.Amount.String(),
			string(t.Type),
			r.categoryName(t.CategoryID),
			r.accountName(t.AccountID),
			r.nullAccountName(t.ToAccountID),
			t.Notes,
		}
	},
	assign:   assignTransaction,
	validate: validateTransaction,
	create: func(t *sqlconfig.Transaction) actions.IAction {
		return &actions.CreateTransaction{Transaction: t}
	},
	update: func(t *sqlconfig.Transaction) actions.IAction {
		return &actions.UpdateTransaction{Transaction: t}
	},
}

// assignTransaction resolves account and category names. A blank type
// on a new row is inferred from the amount's sign, and the amount is
// stored as a magnitude.
func assignTransaction(row Row, t *sqlconfig.Transaction, r *refs, p *problems) {
	c := cells{row, p}
	c.date("date", &t.Date)
	c.str("merchant", &t.Merchant)
	c.str("notes", &t.Notes)

	var typ string
	c.lower("type", &typ)
	if typ != "" {
		t.Type = sqlconfig.TransactionType(typ)
	}
	if v, ok := row.Value("amount"); ok {
		amount, err := parseDecimal(v)
		switch {
		case err != nil:
			p.add("amount %q is not a number", v)
		case t.Type == "":
			t.Type = sqlconfig.TransactionTypeIncome
			if amount.IsNegative() {
				t.Type = sqlconfig.TransactionTypeExpense
			}
			t.Amount = amount.Abs()
		default:
			t.Amount = amount
		}
	}

	if name, ok := row.Value("account"); ok {
		id, err := r.account(name)
		if err != nil {
			p.add("%s", err.Error())
		} else {
			t.AccountID = id
		}
	} else if t.AccountID.IsNil() {
		p.add("%s", row.missing("account"))
	}

	if name, ok := row.Value("to_account"); ok {
		id, err := r.account(name)
		if err != nil {
			p.add("destination %s", err.Error())
		} else {
			t.ToAccountID = uuid.NullUUID{UUID: id, Valid: true}
		}
	} else if typ != "" && t.Type != sqlconfig.TransactionTypeTransfer {
		t.ToAccountID = uuid.NullUUID{}
	}

	if name, ok := row.Value("category"); ok {
		if t.Type == sqlconfig.TransactionTypeTransfer {
			p.add("transfer must not have a category")
		} else {
			id, err := r.category(name, sqlconfig.CategoryType(t.Type))
			if err != nil {
				p.add("%s", err.Error())
			} else {
				t.CategoryID = uuid.NullUUID{UUID: id, Valid: true}
			}
		}
	} else if t.Type == sqlconfig.TransactionTypeTransfer {
		t.CategoryID = uuid.NullUUID{}
	}
}

func validateTransaction(existing, t *sqlconfig.Transaction) error {
	requireCategory := existing == nil || existing.CategoryID.Valid || existing.Type != t.Type
	return actions.ValidateTransaction(t, requireCategory)
}

var budgetCodec = &codec[sqlconfig.Budget]{
	headers: []string{"id", "category", "period", "limit"},
	idOf:    func(b *sqlconfig.Budget) *uuid.UUID { return &b.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Budget, error) {
		return s.Budgets.List(ctx)
	},
	format: func(b *sqlconfig.Budget, r *refs) []string {
		return []string{
			b.ID.String(),
			r.categoryName(uuid.NullUUID{UUID: b.CategoryID, Valid: true}),
			string(b.Period),
			b.LimitAmount.String(),
		}
	},
	assign: func(row Row, b *sqlconfig.Budget, r *refs, p *problems) {
		c := cells{row, p}
		if name, ok := row.Value("category"); ok {
			id, err := r.category(name, "")
			if err != nil {
				p.add("%s", err.Error())
			} else {
				b.CategoryID = id
			}
		} else if b.CategoryID.IsNil() {
			p.add("%s", row.missing("category"))
		}
		var period string
		c.lower("period", &period)
		if period != "" {
			b.Period = sqlconfig.BudgetPeriod(period)
		}
		if b.Period == "" {
			b.Period = sqlconfig.BudgetPeriodMonthly
		}
		c.decimal("limit", &b.LimitAmount)
	},
	validate: func(_, b *sqlconfig.Budget) error { return actions.ValidateBudget(b) },
	create:   func(b *sqlconfig.Budget) actions.IAction { return actions.CreateBudget(b) },
	update:   func(b *sqlconfig.Budget) actions.IAction { return actions.UpdateBudget(b) },
}

var goalCodec = &codec[sqlconfig.Goal]{
	headers: []string{"id", "name", "target_amount", "current_amount", "target_date", "account"},
	idOf:    func(g *sqlconfig.Goal) *uuid.UUID { return &g.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Goal, error) {
		return s.Goals.List(ctx)
	},
	format: func(g *sqlconfig.Goal, r *refs) []string {
		return []string{
			g.ID.String(),
			g.Name,
			g.TargetAmount.String(),
			g.CurrentAmount.String(),
			formatDate(g.TargetDate),
			r.nullAccountName(g.AccountID),
		}
	},
	assign: func(row Row, g *sqlconfig.Goal, r *refs, p *problems) {
		c := cells{row, p}
		c.str("name", &g.Name)
		c.decimal("target_amount", &g.TargetAmount)
		c.decimal("current_amount", &g.CurrentAmount)
		c.date("target_date", &g.TargetDate)
		if name, ok := row.Value("account"); ok {
			id, err := r.account(name)
			if err != nil {
				p.add("%s", err.Error())
			} else {
				g.AccountID = uuid.NullUUID{UUID: id, Valid: true}
			}
		}
	},
	validate: func(_, g *sqlconfig.Goal) error { return actions.ValidateGoal(g) },
	create:   func(g *sqlconfig.Goal) actions.IAction { return actions.CreateGoal(g) },
	update:   func(g *sqlconfig.Goal) actions.IAction { return actions.UpdateGoal(g) },
}

var billCodec = &codec[sqlconfig.Bill]{
	headers: []string{"id", "name", "amount", "next_due_date", "cadence", "paid", "auto_pay"},
	idOf:    func(b *sqlconfig.Bill) *uuid.UUID { return &b.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Bill, error) {
		return s.Bills.List(ctx)
	},
	format: func(b *sqlconfig.Bill, _ *refs) []string {
		return []string{
			b.ID.String(),
			b.Name,
			b.Amount.String(),
			formatDate(b.NextDueDate),
			string(b.Cadence),
			strconv.FormatBool(b.Paid),
			strconv.FormatBool(b.AutoPay),
		}
	},
	assign: func(row Row, b *sqlconfig.Bill, _ *refs, p *problems) {
		c := cells{row, p}
		c.str("name", &b.Name)
		c.decimal("amount", &b.Amount)
		c.date("next_due_date", &b.NextDueDate)
		var cadence string
		c.lower("cadence", &cadence)
		if cadence != "" {
			b.Cadence = sqlconfig.Cadence(cadence)
		}
		if b.Cadence == "" {
			b.Cadence = sqlconfig.CadenceMonthly
		}
		c.boolean("paid", &b.Paid)
		c.boolean("auto_pay", &b.AutoPay)
	},
	validate: func(_, b *sqlconfig.Bill) error { return actions.ValidateBill(b) },
	create:   func(b *sqlconfig.Bill) actions.IAction { return actions.CreateBill(b) },
	update:   func(b *sqlconfig.Bill) actions.IAction { return actions.UpdateBill(b) },
}

var loanCodec = &codec[sqlconfig.Loan]{
	headers: []string{
		"id", "name", "lender", "principal", "current_balance", "interest_rate",
		"payment_amount", "payment_frequency", "start_date", "end_date",
	},
	idOf: func(l *sqlconfig.Loan) *uuid.UUID { return &l.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Loan, error) {
		return s.Loans.List(ctx)
	},
	format: func(l *sqlconfig.Loan, _ *refs) []string {
		return []string{
			l.ID.String(),
			l.Name,
			l.Lender,
			l.Principal.String(),
			l.CurrentBalance.String(),
			l.InterestRate.String(),
			l.PaymentAmount.String(),
			string(l.PaymentFrequency),
			formatDate(l.StartDate),
			formatDate(l.EndDate),
		}
	},
	assign: func(row Row, l *sqlconfig.Loan, _ *refs, p *problems) {
		c := cells{row, p}
		c.str("name", &l.Name)
		c.str("lender", &l.Lender)
		c.decimal("principal", &l.Principal)
		c.decimal("current_balance", &l.CurrentBalance)
		c.decimal("interest_rate", &l.InterestRate)
		c.decimal("payment_amount", &l.PaymentAmount)
		var frequency string
		c.lower("payment_frequency", &frequency)
		if frequency != "" {
			l.PaymentFrequency = sqlconfig.Cadence(frequency)
		}
		c.date("start_date", &l.StartDate)
		c.date("end_date", &l.EndDate)
	},
	validate: func(_, l *sqlconfig.Loan) error { return actions.ValidateLoan(l) },
	create:   func(l *sqlconfig.Loan) actions.IAction { return actions.CreateLoan(l) },
	update:   func(l *sqlconfig.Loan) actions.IAction { return actions.UpdateLoan(l) },
}

var planCodec = &codec[sqlconfig.Plan]{
	headers: []string{"id", "reference_type", "reference_id", "if", "else", "what_if", "outcome", "months_overdue"},
	idOf:    func(pl *sqlconfig.Plan) *uuid.UUID { return &pl.ID },
	list: func(ctx context.Context, s *storage.Storage) ([]*sqlconfig.Plan, error) {
		return s.Plans.List(ctx)
	},
	format: func(pl *sqlconfig.Plan, _ *refs) []string {
		return []string{
			pl.ID.String(),
			string(pl.ReferenceType),
			pl.ReferenceID.String(),
			pl.If,
			pl.Else,
			pl.WhatIf,
			pl.Outcome,
			strconv.Itoa(pl.MonthsOverdue),
		}
	},
	assign: func(row Row, pl *sqlconfig.Plan, r *refs, p *problems) {
		c := cells{row, p}
		var refType string
		c.lower("reference_type", &refType)
		if refType != "" {
			pl.ReferenceType = sqlconfig.PlanReference(refType)
		}
		c.id("reference_id", &pl.ReferenceID)
		c.str("if", &pl.If)
		c.str("else", &pl.Else)
		c.str("what_if", &pl.WhatIf)
		c.str("outcome", &pl.Outcome)
		c.integer("months_overdue", &pl.MonthsOverdue)

		if pl.ReferenceType.Valid() && !pl.ReferenceID.IsNil() {
			if err := r.planTarget(pl.ReferenceType, pl.ReferenceID); err != nil {
				p.add("plan target %s", err.Error())
			}
		}
	},
	validate: func(_, pl *sqlconfig.Plan) error { return actions.ValidatePlan(pl) },
	create:   func(pl *sqlconfig.Plan) actions.IAction { return actions.CreatePlan(pl) },
	update:   func(pl *sqlconfig.Plan) actions.IAction { return actions.UpdatePlan(pl) },
}
