package plan

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/handlers/v1/apiutil"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// Plan is a contingency note attached to a transaction, loan or goal.
type Plan struct {
	ID            string `json:"id"`
	ReferenceID   string `json:"referenceID"`
	ReferenceType string `json:"referenceType"`
	If            string `json:"if"`
	Else          string `json:"else"`
	WhatIf        string `json:"whatIf"`
	Outcome       string `json:"outcome"`
	MonthsOverdue int    `json:"monthsOverdue"`
}

type PlanBody struct {
	ReferenceID   string `json:"referenceID" format:"uuid" doc:"UUID of the referenced record"`
	ReferenceType string `json:"referenceType" enum:"transaction,loan,goal"`
	If            string `json:"if,omitempty"`
	Else          string `json:"else,omitempty"`
	WhatIf        string `json:"whatIf,omitempty"`
	Outcome       string `json:"outcome,omitempty"`
	MonthsOverdue int    `json:"monthsOverdue,omitempty" minimum:"0"`
}

type PlanPath struct {
	ID string `path:"id" format:"uuid" doc:"Plan UUID"`
}

type CreatePlanInput struct {
	Body PlanBody
}

type CreatePlanOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created plan UUID"`
	}
}

type UpdatePlanInput struct {
	PlanPath
	Body PlanBody
}

type OverdueInput struct {
	PlanPath
	Body struct {
		Delta int `json:"delta" doc:"Months to add; negative reduces, never below zero"`
	}
}

type PlanOutput struct {
	Body Plan
}

type ListPlansOutput struct {
	Body struct {
		Plans []Plan `json:"plans"`
	}
}

type planService interface {
	CreatePlan(ctx context.Context, plan *sqlconfig.Plan) (uuid.UUID, error)
	UpdatePlan(ctx context.Context, plan *sqlconfig.Plan) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
	GetPlan(ctx context.Context, id uuid.UUID) (*sqlconfig.Plan, error)
	ListPlans(ctx context.Context) ([]*sqlconfig.Plan, error)
	AdjustOverdue(ctx context.Context, id uuid.UUID, delta int) (*sqlconfig.Plan, error)
}

type Handler struct {
	PlanService planService
}

func NewHandler(svc planService) *Handler {
	return &Handler{PlanService: svc}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Plans"}
	huma.Register(api, huma.Operation{
		OperationID: "create-plan",
		Method:      http.MethodPost,
		Path:        "/v1/plan",
		Summary:     "Create a plan",
		Tags:        tags,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-plans",
		Method:      http.MethodGet,
		Path:        "/v1/plans",
		Summary:     "List plans",
		Tags:        tags,
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-plan",
		Method:      http.MethodGet,
		Path:        "/v1/plan/{id}",
		Summary:     "Get a plan",
		Tags:        tags,
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID:   "update-plan",
		Method:        http.MethodPut,
		Path:          "/v1/plan/{id}",
		Summary:       "Update a plan",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-plan",
		Method:        http.MethodDelete,
		Path:          "/v1/plan/{id}",
		Summary:       "Delete a plan",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "adjust-plan-overdue",
		Method:      http.MethodPost,
		Path:        "/v1/plan/{id}/overdue",
		Summary:     "Adjust months overdue",
		Tags:        tags,
	}, h.overdue)
}

func fromStorage(p *sqlconfig.Plan) Plan {
	return Plan{
		ID:            p.ID.String(),
		ReferenceID:   p.ReferenceID.String(),
		ReferenceType: string(p.ReferenceType),
		If:            p.If,
		Else:          p.Else,
		WhatIf:        p.WhatIf,
		Outcome:       p.Outcome,
		MonthsOverdue: p.MonthsOverdue,
	}
}

func parseBody(body PlanBody) (*sqlconfig.Plan, error) {
	ref, err := apiutil.ID("referenceID", body.ReferenceID)
	if err != nil {
		return nil, err
	}
	return &sqlconfig.Plan{
		ReferenceID:   ref,
		ReferenceType: sqlconfig.PlanReference(body.ReferenceType),
		If:            body.If,
		Else:          body.Else,
		WhatIf:        body.WhatIf,
		Outcome:       body.Outcome,
		MonthsOverdue: body.MonthsOverdue,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreatePlanInput) (*CreatePlanOutput, error) {
	p, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	id, err := h.PlanService.CreatePlan(ctx, p)
	if err != nil {
		return nil, apiutil.Error(err, "failed to create plan")
	}
	apiutil.Note(ctx, "planID", id.String())

	out := &CreatePlanOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListPlansOutput, error) {
	plans, err := h.PlanService.ListPlans(ctx)
	if err != nil {
		return nil, apiutil.Error(err, "failed to list plans")
	}
	out := &ListPlansOutput{}
	out.Body.Plans = make([]Plan, len(plans))
	for i, p := range plans {
		out.Body.Plans[i] = fromStorage(p)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *PlanPath) (*PlanOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	p, err := h.PlanService.GetPlan(ctx, id)
	if err != nil {
		return nil, apiutil.Error(err, "failed to get plan")
	}
	return &PlanOutput{Body: fromStorage(p)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdatePlanInput) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	p, err := parseBody(input.Body)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := h.PlanService.UpdatePlan(ctx, p); err != nil {
		return nil, apiutil.Error(err, "failed to update plan")
	}
	return nil, nil
}

func (h *Handler) delete(ctx context.Context, input *PlanPath) (*struct{}, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.PlanService.DeletePlan(ctx, id); err != nil {
		return nil, apiutil.Error(err, "failed to delete plan")
	}
	return nil, nil
}

func (h *Handler) overdue(ctx context.Context, input *OverdueInput) (*PlanOutput, error) {
	id, err := apiutil.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	p, err := h.PlanService.AdjustOverdue(ctx, id, input.Body.Delta)
	if err != nil {
		return nil, apiutil.Error(err, "failed to adjust plan")
	}
	return &PlanOutput{Body: fromStorage(p)}, nil
}
