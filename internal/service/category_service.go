package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// CategoryDeletion reports the effects of deleting a category.
type CategoryDeletion struct {
	OrphanedTransactions int64
	RemovedBudgets       int64
}

type CategoryService struct {
	storage  *storage.Storage
	operator Processor
}

func NewCategoryService(store *storage.Storage, op Processor) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *sqlconfig.Category) (uuid.UUID, error) {
	action := actions.CreateCategory(category)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *sqlconfig.Category) error {
	return s.operator.Process(ctx, actions.UpdateCategory(category))
}

// DeleteCategory removes the category and its budgets. Its transactions
// stay, with no category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) (CategoryDeletion, error) {
	action := &actions.DeleteCategory{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return CategoryDeletion{}, err
	}
	return CategoryDeletion{
		OrphanedTransactions: action.OrphanedTransactions,
		RemovedBudgets:       action.RemovedBudgets,
	}, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*sqlconfig.Category, error) {
	return s.storage.Categories.FindByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*sqlconfig.Category, error) {
	return s.storage.Categories.List(ctx)
}
