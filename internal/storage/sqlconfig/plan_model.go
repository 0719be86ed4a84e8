package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// PlanReference names the kind of record a plan scenario is attached to.
type PlanReference string

const (
	PlanReferenceTransaction PlanReference = "transaction"
	PlanReferenceLoan        PlanReference = "loan"
	PlanReferenceGoal        PlanReference = "goal"
)

// Valid reports whether p is a known reference kind.
func (p PlanReference) Valid() bool {
	switch p {
	case PlanReferenceTransaction, PlanReferenceLoan, PlanReferenceGoal:
		return true
	}
	return false
}

// Plan represents a what-if scenario attached to another record.
// MonthsOverdue is a manually maintained counter.
type Plan struct {
	ID            uuid.UUID     `json:"id"`
	ReferenceID   uuid.UUID     `json:"reference_id"`
	ReferenceType PlanReference `json:"reference_type"`
	If            string        `json:"if"`
	Else          string        `json:"else"`
	WhatIf        string        `json:"what_if"`
	Outcome       string        `json:"outcome"`
	MonthsOverdue int           `json:"months_overdue"`
}

type IPlanTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	Insert(ctx context.Context, plan *Plan) (uuid.UUID, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Plan, error)
}

type planRow struct {
	ID            uuid.UUID `db:"id"`
	ReferenceID   uuid.UUID `db:"reference_id"`
	ReferenceType string    `db:"reference_type"`
	If            string    `db:"if_text"`
	Else          string    `db:"else_text"`
	WhatIf        string    `db:"what_if"`
	Outcome       string    `db:"outcome"`
	MonthsOverdue int       `db:"months_overdue"`
}

var planColumns = []string{
	"id", "reference_id", "reference_type", "if_text", "else_text", "what_if", "outcome", "months_overdue",
}

func (r planRow) toPlan() *Plan {
	return &Plan{
		ID:            r.ID,
		ReferenceID:   r.ReferenceID,
		ReferenceType: PlanReference(r.ReferenceType),
		If:            r.If,
		Else:          r.Else,
		WhatIf:        r.WhatIf,
		Outcome:       r.Outcome,
		MonthsOverdue: r.MonthsOverdue,
	}
}

func planValues(p *Plan) []any {
	return []any{p.ID, p.ReferenceID, string(p.ReferenceType), p.If, p.Else, p.WhatIf, p.Outcome, p.MonthsOverdue}
}
