package importer

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// codec maps one record type to and from file rows.
type codec[T any] struct {
	headers []string
	idOf    func(*T) *uuid.UUID
	list    func(ctx context.Context, s *storage.Storage) ([]*T, error)
	// format renders a record in header order.
	format func(rec *T, r *refs) []string
	// assign copies the row's non-blank fields onto rec.
	assign func(row Row, rec *T, r *refs, p *problems)
	// validate checks the merged record; existing is nil for new rows.
	validate func(existing, merged *T) error
	create   func(*T) actions.IAction
	update   func(*T) actions.IAction
}

// kindCodec is a codec with its record type erased.
type kindCodec interface {
	header() []string
	reconcile(ctx context.Context, s *storage.Storage, r *refs, rows []Row) ([]RowResult, error)
	records(ctx context.Context, s *storage.Storage, r *refs) ([][]string, error)
}

func (c *codec[T]) header() []string { return c.headers }

func (c *codec[T]) records(ctx context.Context, s *storage.Storage, r *refs) ([][]string, error) {
	recs, err := c.list(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(recs))
	for i, rec := range recs {
		out[i] = c.format(rec, r)
	}
	return out, nil
}

func (c *codec[T]) reconcile(ctx context.Context, s *storage.Storage, r *refs, rows []Row) ([]RowResult, error) {
	existing, err := c.list(ctx, s)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*T, len(existing))
	for _, rec := range existing {
		byID[*c.idOf(rec)] = rec
	}

	seen := make(map[uuid.UUID]int, len(rows))
	results := make([]RowResult, len(rows))
	for i, row := range rows {
		results[i] = c.classify(row, byID, seen, r)
	}
	return results, nil
}

func (c *codec[T]) classify(row Row, byID map[uuid.UUID]*T, seen map[uuid.UUID]int, r *refs) RowResult {
	var p problems
	result := RowResult{Line: row.Line}

	rawID, state := row.Field("id")
	result.ID = rawID
	id := uuid.Nil
	switch state {
	case FieldNoHeader, FieldEmpty:
		p.add("%s", row.missing("id"))
	default:
		parsed, err := uuid.FromString(rawID)
		if err != nil {
			p.add("id %q is not a valid UUID", rawID)
			break
		}
		if line, dup := seen[parsed]; dup {
			p.add("id repeats line %d", line)
		}
		seen[parsed] = row.Line
		id = parsed
	}

	var existing *T
	if !id.IsNil() {
		existing = byID[id]
	}
	var merged T
	if existing != nil {
		merged = *existing
	}
	*c.idOf(&merged) = id

	c.assign(row, &merged, r, &p)
	if len(p) == 0 {
		if err := c.validate(existing, &merged); err != nil {
			p.add("%s", err.Error())
		}
	}

	switch {
	case len(p) > 0:
		result.Action = ActionError
		result.Errors = p
	case existing != nil:
		result.Action = ActionUpdate
		result.Changes = c.changes(row, existing, &merged, r)
		result.action = c.update(&merged)
	default:
		result.Action = ActionAdd
		result.action = c.create(&merged)
	}
	return result
}

// changes lists the fields the row sets to a new value.
func (c *codec[T]) changes(row Row, before, after *T, r *refs) []Change {
	was, now := c.format(before, r), c.format(after, r)
	var changes []Change
	for i, name := range c.headers {
		if name == "id" {
			continue
		}
		if _, ok := row.Value(name); !ok {
			continue
		}
		if was[i] != now[i] {
			changes = append(changes, Change{Field: name, Before: was[i], After: now[i]})
		}
	}
	return changes
}

var codecs = map[notify.Kind]kindCodec{
	notify.KindAccounts:     accountCodec,
	notify.KindCategories:   categoryCodec,
	notify.KindTransactions: transactionCodec,
	notify.KindBudgets:      budgetCodec,
	notify.KindGoals:        goalCodec,
	notify.KindBills:        billCodec,
	notify.KindLoans:        loanCodec,
	notify.KindPlans:        planCodec,
}

// Header returns the column names used to import and export kind.
func Header(kind notify.Kind) ([]string, bool) {
	c, ok := codecs[kind]
	if !ok {
		return nil, false
	}
	return c.header(), true
}

// Records renders every stored record of kind as rows in Header order.
func Records(ctx context.Context, store *storage.Storage, kind notify.Kind) ([][]string, error) {
	c, ok := codecs[kind]
	if !ok {
		return nil, unknownKind(kind)
	}
	r, err := loadRefs(ctx, store)
	if err != nil {
		return nil, err
	}
	return c.records(ctx, store, r)
}
