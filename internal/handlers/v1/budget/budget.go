package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Budget is the API model for a budget with its spend in the current window.
type Budget struct {
	ID         string `json:"id" doc:"Budget UUID"`
	CategoryID string `json:"categoryID" doc:"Category UUID"`
	Period     string `json:"period" doc:"weekly, monthly or yearly"`
	Limit      string `json:"limit" doc:"Decimal spending limit"`
	Spend
}

// Spend is the derived spend of a budget for the window containing now.
type Spend struct {
	Spent       string `json:"spent" doc:"Decimal expense total in the window"`
	Remaining   string `json:"remaining" doc:"Limit minus spent; negative when over budget"`
	WindowStart string `json:"windowStart" doc:"First day of the window, YYYY-MM-DD"`
	WindowEnd   string `json:"windowEnd" doc:"Last day of the window, YYYY-MM-DD"`
}

// BudgetBody is the request body for creating or updating a budget.
type BudgetBody struct {
	CategoryID string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Period     string `json:"period,omitempty" enum:"weekly,monthly,yearly" doc:"Window length, defaults to monthly"`
	Limit      string `json:"limit" doc:"Non-negative decimal limit"`
}

type BudgetPath struct {
	ID string `path:"id" format:"uuid" doc:"Budget UUID"`
}

type CreateBudgetInput struct {
	Body BudgetBody
}

type CreateBudgetOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created budget UUID"`
	}
}

type UpdateBudgetInput struct {
	BudgetPath
	Body BudgetBody
}

type GetBudgetOutput struct {
	Body Budget
}

type SpendOutput struct {
	Body Spend
}

type ListBudgetsOutput struct {
	Body struct {
		Budgets []Budget `json:"budgets"`
	}
}

type budgetService interface {
	CreateBudget(ctx context.Context, budget *sqlconfig.Budget) (uuid.UUID, error)
	UpdateBudget(ctx context.Context, budget *sqlconfig.Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	GetBudget(ctx context.Context, id uuid.UUID) (*service.BudgetStatus, error)
	ListBudgets(ctx context.Context) ([]*service.BudgetStatus, error)
}

// Handler serves /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Budgets"}
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create a budget",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets with current spend",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Get a budget with current spend",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-spent",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}/spent",
		Summary:     "Get a budget's spend",
		Description: "Sums expense transactions in the budget's category within the window for its period that contains today.",
		Tags:        tags,
	}, h.spent)
	huma.Register(api, huma.Operation{
		OperationID:   "update-budget",
		Method:        http.MethodPut,
		Path:          "/v1/budget/{id}",
		Summary:       "Update a budget",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          "/v1/budget/{id}",
		Summary:       "Delete a budget",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func fromStatus(s *service.BudgetStatus) Budget {
	return Budget{
		ID:         s.Budget.ID.String(),
		CategoryID: s.Budget.CategoryID.String(),
		Period:     string(s.Budget.Period),
		Limit:      s.Budget.LimitAmount.String(),
		Spend:      spendOf(s),
	}
}

func spendOf(s *service.BudgetStatus) Spend {
	return Spend{
		Spent:       s.Spent.String(),
		Remaining:   s.Remaining.String(),
		WindowStart: apiutil.FormatDate(s.WindowStart),
		WindowEnd:   apiutil.FormatDate(s.WindowEnd),
	}
}

func parseBody(body BudgetBody) (*sqlconfig.Budget, error) {
	categoryID, err := apiutil.ID("categoryID", body.CategoryID)
	if err != nil {
		return nil, err
	}
	limit, err := apiutil.Decimal("limit", body.Limit)
	if err != nil {
		return nil, err
	}
	period := sqlconfig.BudgetPeriod(body.Period)
	if period == "" {
		period = sqlconfig.BudgetPeriodMonthly
	}
	return &sqlconfig.Budget{CategoryID: categoryID, Period: period, LimitAmount: limit}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	budget, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	id, err := h.BudgetService.CreateBudget(ctx, budget)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create budget")
	}
	apiutil.Note(ctx, "budgetID", id.String())

	out := &CreateBudgetOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	stopTimer := apiutil.Timing(ctx, "listBudgetsMs")
	statuses, err := h.BudgetService.ListBudgets(ctx)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to list budgets")
	}
	out := &ListBudgetsOutput{}
	out.Body.Budgets = make([]Budget, len(statuses))
	for i, s := range statuses {
		out.Body.Budgets[i] = fromStatus(s)
	}
	return out, nil
}

func (h *Handler) status(ctx context.Context, input *BudgetPath) (*service.BudgetStatus, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	stopTimer := apiutil.Timing(ctx, "budgetSpentMs")
	status, err := h.BudgetService.GetBudget(ctx, id)
	stopTimer()
	if err != nil {
		return nil, apiutil.Error(err, "failed to get budget")
	}
	return status, nil
}

func (h *Handler) get(ctx context.Context, input *BudgetPath) (*GetBudgetOutput, error) {
	status, err := h.status(ctx, input)
	if err != nil {
		return nil, err
	}
	return &GetBudgetOutput{Body: fromStatus(status)}, nil
}

func (h *Handler) spent(ctx context.Context, input *BudgetPath) (*SpendOutput, error) {
	status, err := h.status(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SpendOutput{Body: spendOf(status)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateBudgetInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	budget, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	budget.ID = id
	if err := h.BudgetService.UpdateBudget(ctx, budget); err != nil {
		return nil, apiutil.Error(err, "failed to update budget")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *BudgetPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.BudgetService.DeleteBudget(ctx, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete budget")
	}
	return nil, nil
}
