package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// refs resolves the names an import file uses for accounts and categories,
// and the reverse for export. Names compare case-insensitively.
type refs struct {
	ctx   context.Context
	store *storage.Storage

	accountsByName   map[string][]*sqlconfig.Account
	accountNames     map[uuid.UUID]string
	categoriesByName map[string][]*sqlconfig.Category
	categoryNames    map[uuid.UUID]string
}

func loadRefs(ctx context.Context, store *storage.Storage) (*refs, error) {
	accounts, err := store.Accounts.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	categories, err := store.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	r := &refs{
		ctx:              ctx,
		store:            store,
		accountsByName:   make(map[string][]*sqlconfig.Account, len(accounts)),
		accountNames:     make(map[uuid.UUID]string, len(accounts)),
		categoriesByName: make(map[string][]*sqlconfig.Category, len(categories)),
		categoryNames:    make(map[uuid.UUID]string, len(categories)),
	}
	for _, a := range accounts {
		key := nameKey(a.Name)
		r.accountsByName[key] = append(r.accountsByName[key], a)
		r.accountNames[a.ID] = a.Name
	}
	for _, c := range categories {
		key := nameKey(c.Name)
		r.categoriesByName[key] = append(r.categoriesByName[key], c)
		r.categoryNames[c.ID] = c.Name
	}
	return r, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *refs) account(name string) (uuid.UUID, error) {
	matches := r.accountsByName[nameKey(name)]
	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("account %q does not exist", name)
	case 1:
		return matches[0].ID, nil
	default:
		return uuid.Nil, fmt.Errorf("account name %q is ambiguous", name)
	}
}

// category resolves a category name of the wanted type. An empty type
// accepts either, preferring expense when both exist.
func (r *refs) category(name string, want sqlconfig.CategoryType) (uuid.UUID, error) {
	matches := r.categoriesByName[nameKey(name)]
	if len(matches) == 0 {
		return uuid.Nil, fmt.Errorf("category %q does not exist", name)
	}
	if want == "" {
		for _, c := range matches {
			if c.Type == sqlconfig.CategoryTypeExpense {
				return c.ID, nil
			}
		}
		return matches[0].ID, nil
	}
	for _, c := range matches {
		if c.Type == want {
			return c.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("category %q is not an %s category", name, want)
}

func (r *refs) accountName(id uuid.UUID) string {
	return r.accountNames[id]
}

func (r *refs) nullAccountName(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return r.accountNames[id.UUID]
}

func (r *refs) categoryName(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return r.categoryNames[id.UUID]
}

// planTarget reports whether the record a plan points at exists.
func (r *refs) planTarget(kind sqlconfig.PlanReference, id uuid.UUID) error {
	var err error
	switch kind {
	case sqlconfig.PlanReferenceTransaction:
		_, err = r.store.Transactions.FindByID(r.ctx, id)
	case sqlconfig.PlanReferenceLoan:
		_, err = r.store.Loans.FindByID(r.ctx, id)
	case sqlconfig.PlanReferenceGoal:
		_, err = r.store.Goals.FindByID(r.ctx, id)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	return nil
}
