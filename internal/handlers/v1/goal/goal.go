package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Goal is the API model for a savings goal.
type Goal struct {
	ID            string `json:"id" doc:"Goal UUID"`
	Name          string `json:"name" doc:"Goal name"`
	TargetAmount  string `json:"targetAmount" doc:"Decimal amount to reach"`
	CurrentAmount string `json:"currentAmount" doc:"Decimal amount saved so far"`
	TargetDate    string `json:"targetDate,omitempty" doc:"Target date, YYYY-MM-DD"`
	AccountID     string `json:"accountID,omitempty" doc:"Linked account UUID"`
}

// GoalBody is the request body for creating or updating a goal.
type GoalBody struct {
	Name          string `json:"name" minLength:"1" doc:"Goal name"`
	TargetAmount  string `json:"targetAmount" doc:"Non-negative decimal amount to reach"`
	CurrentAmount string `json:"currentAmount,omitempty" doc:"Decimal amount saved so far, defaults to 0"`
	TargetDate    string `json:"targetDate,omitempty" format:"date" doc:"Target date, YYYY-MM-DD"`
	AccountID     string `json:"accountID,omitempty" format:"uuid" doc:"Linked account UUID"`
}

type GoalPath struct {
	ID string `path:"id" format:"uuid" doc:"Goal UUID"`
}

type CreateGoalInput struct {
	Body GoalBody
}

type CreateGoalOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created goal UUID"`
	}
}

type UpdateGoalInput struct {
	GoalPath
	Body GoalBody
}

type ContributeInput struct {
	GoalPath
	Body struct {
		Amount string `json:"amount" doc:"Decimal amount to add; negative withdraws"`
	}
}

type GoalOutput struct {
	Body Goal
}

type ListGoalsOutput struct {
	Body struct {
		Goals []Goal `json:"goals"`
	}
}

type goalService interface {
	CreateGoal(ctx context.Context, goal *sqlconfig.Goal) (uuid.UUID, error)
	UpdateGoal(ctx context.Context, goal *sqlconfig.Goal) error
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	GetGoal(ctx context.Context, id uuid.UUID) (*sqlconfig.Goal, error)
	ListGoals(ctx context.Context) ([]*sqlconfig.Goal, error)
	Contribute(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*sqlconfig.Goal, error)
}

// Handler serves /v1/goal.
type Handler struct {
	GoalService goalService
}

func NewHandler(svc goalService) *Handler {
	return &Handler{GoalService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Goals"}
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal",
		Summary:     "Create a goal",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        "/v1/goals",
		Summary:     "List goals",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-goal",
		Method:      http.MethodGet,
		Path:        "/v1/goal/{id}",
		Summary:     "Get a goal",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "update-goal",
		Method:        http.MethodPut,
		Path:          "/v1/goal/{id}",
		Summary:       "Update a goal",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-goal",
		Method:        http.MethodDelete,
		Path:          "/v1/goal/{id}",
		Summary:       "Delete a goal",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "contribute-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/contribute",
		Summary:     "Contribute to a goal",
		Description: "Adds to the goal's current amount. The amount saved may not go below zero.",
		Tags:        tags,
	}, h.contribute)
}

func fromStorage(g *sqlconfig.Goal) Goal {
	return Goal{
		ID:            g.ID.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		TargetDate:    apiutil.FormatDate(g.TargetDate),
		AccountID:     apiutil.FormatNullID(g.AccountID),
	}
}

func parseBody(body GoalBody) (*sqlconfig.Goal, error) {
	g := &sqlconfig.Goal{Name: body.Name}
	var err error
	if g.TargetAmount, err = apiutil.Decimal("targetAmount", body.TargetAmount); err != nil {
		return nil, err
	}
	if g.CurrentAmount, err = apiutil.OptionalDecimal("currentAmount", body.CurrentAmount); err != nil {
		return nil, err
	}
	if g.TargetDate, err = apiutil.Date("targetDate", body.TargetDate); err != nil {
		return nil, err
	}
	if g.AccountID, err = apiutil.NullID("accountID", body.AccountID); err != nil {
		return nil, err
	}
	return g, nil
}

func (h *Handler) create(ctx context.Context, input *CreateGoalInput) (*CreateGoalOutput, error) {
	g, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	id, err := h.GoalService.CreateGoal(ctx, g)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create goal")
	}
	apiutil.Note(ctx, "goalID", id.String())

	out := &CreateGoalOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListGoalsOutput, error) {
	goals, err := h.GoalService.ListGoals(ctx)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list goals")
	}
	out := &ListGoalsOutput{}
	out.Body.Goals = make([]Goal, len(goals))
	for i, g := range goals {
		out.Body.Goals[i] = fromStorage(g)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *GoalPath) (*GoalOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	g, err := h.GoalService.GetGoal(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to get goal")
	}
	return &GoalOutput{Body: fromStorage(g)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateGoalInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	g, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	g.ID = id
	if err := h.GoalService.UpdateGoal(ctx, g); err != nil {
		return nil, apiutil.Error(err, "failed to update goal")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *GoalPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.GoalService.DeleteGoal(ctx, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete goal")
	}
	return nil, nil
}

func (h *Handler) contribute(ctx context.Context, input *ContributeInput) (*GoalOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	amount, err := apiutil.Decimal("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	g, err := h.GoalService.Contribute(ctx, id, amount)
	if err != nil {
		return nil, apiutil.Error(err, "failed to contribute to goal")
	}
	apiutil.Note(ctx, "contribution", amount.String())
	return &GoalOutput{Body: fromStorage(g)}, nil
}
