package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// CategoryType is the side of the ledger a category belongs to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether c is a known category type.
func (c CategoryType) Valid() bool {
	return c == CategoryTypeIncome || c == CategoryTypeExpense
}

// Category represents a category record.
type Category struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Color string       `json:"color"`
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Insert(ctx context.Context, category *Category) (uuid.UUID, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Category, error)
}

type categoryRow struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Type  string    `db:"type"`
	Color string    `db:"color"`
}

var categoryColumns = []string{"id", "name", "type", "color"}

func (r categoryRow) toCategory() *Category {
	return &Category{
		ID:    r.ID,
		Name:  r.Name,
		Type:  CategoryType(r.Type),
		Color: r.Color,
	}
}

func categoryValues(c *Category) []any {
	return []any{c.ID, c.Name, string(c.Type), c.Color}
}
