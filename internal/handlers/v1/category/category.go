package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Category is the API model for a category.
type Category struct {
	ID    string `json:"id" doc:"Category UUID"`
	Name  string `json:"name" doc:"Category name"`
	Type  string `json:"type" doc:"income or expense"`
	Color string `json:"color" doc:"Display color"`
}

// CategoryBody is the request body for creating or updating a category.
type CategoryBody struct {
	Name  string `json:"name" minLength:"1" doc:"Category name"`
	Type  string `json:"type" enum:"income,expense" doc:"Which side of the ledger the category belongs to"`
	Color string `json:"color,omitempty" doc:"Display color"`
}

type CategoryPath struct {
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

type CreateCategoryInput struct {
	Body CategoryBody
}

type CreateCategoryOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created category UUID"`
	}
}

type UpdateCategoryInput struct {
	CategoryPath
	Body CategoryBody
}

type GetCategoryOutput struct {
	Body Category
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

// DeleteCategoryOutput reports the cascade of a category deletion.
type DeleteCategoryOutput struct {
	Body struct {
		ClearedTransactions int64 `json:"clearedTransactions" doc:"Transactions whose category was cleared"`
		RemovedBudgets      int64 `json:"removedBudgets" doc:"Budgets on the category that were deleted"`
	}
}

type categoryService interface {
	CreateCategory(ctx context.Context, category *sqlconfig.Category) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, category *sqlconfig.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (service.CategoryDeletion, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*sqlconfig.Category, error)
	ListCategories(ctx context.Context) ([]*sqlconfig.Category, error)
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Categories"}
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create a category",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get a category",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "update-category",
		Method:        http.MethodPut,
		Path:          "/v1/category/{id}",
		Summary:       "Update a category",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{id}",
		Summary:     "Delete a category",
		Description: "Clears the category from its transactions and deletes its budgets.",
		Tags:        tags,
	}, h.delete)
}

func fromStorage(c *sqlconfig.Category) Category {
	return Category{ID: c.ID.String(), Name: c.Name, Type: string(c.Type), Color: c.Color}
}

func toStorage(body CategoryBody) *sqlconfig.Category {
	return &sqlconfig.Category{Name: body.Name, Type: sqlconfig.CategoryType(body.Type), Color: body.Color}
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	stopTimer := apiutil.Timing(ctx, "createCategoryMs")
	id, err := h.CategoryService.CreateCategory(ctx, toStorage(input.Body))
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to create category")
	}
	apiutil.Note(ctx, "categoryID", id.String())

	out := &CreateCategoryOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list categories")
	}
	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = fromStorage(c)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *CategoryPath) (*GetCategoryOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	c, err := h.CategoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to get category")
	}
	return &GetCategoryOutput{Body: fromStorage(c)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateCategoryInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	c := toStorage(input.Body)
	c.ID = id
	if err := h.CategoryService.UpdateCategory(ctx, c); err != nil {
		return nil, apiutil.Error(err, "failed to update category")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *CategoryPath) (*DeleteCategoryOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	stopTimer := apiutil.Timing(ctx, "deleteCategoryMs")
	deleted, err := h.CategoryService.DeleteCategory(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to delete category")
	}
	out := &DeleteCategoryOutput{}
	out.Body.ClearedTransactions = deleted.OrphanedTransactions
	out.Body.RemovedBudgets = deleted.RemovedBudgets
	return out, nil
}
