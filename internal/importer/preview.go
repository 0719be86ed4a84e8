package importer

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
)

// Action is what applying a row would do.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionError  Action = "error"
)

// Change is one field an update row modifies.
type Change struct {
	Field  string
	Before string
	After  string
}

// RowResult is the classification of one data row.
type RowResult struct {
	Line    int
	ID      string
	Action  Action
	Changes []Change
	Errors  []string

	action actions.IAction
}

// Counts tallies rows by classification.
type Counts struct {
	Add    int
	Update int
	Error  int
}

// Preview is a classified import waiting to be applied.
type Preview struct {
	ID        uuid.UUID
	Kind      notify.Kind
	Filename  string
	CreatedAt time.Time
	Rows      []RowResult
	Counts    Counts
}

func newPreview(kind notify.Kind, filename string, rows []RowResult, now time.Time) *Preview {
	p := &Preview{
		ID:        uuid.Must(uuid.NewV4()),
		Kind:      kind,
		Filename:  filename,
		CreatedAt: now,
		Rows:      rows,
	}
	for _, row := range rows {
		switch row.Action {
		case ActionAdd:
			p.Counts.Add++
		case ActionUpdate:
			p.Counts.Update++
		case ActionError:
			p.Counts.Error++
		}
	}
	return p
}

// RowFailure is a row that failed while applying.
type RowFailure struct {
	Line    int
	ID      string
	Message string
}

// ApplyResult reports an apply. Proceeded is false when the preview had
// error rows and nothing was written.
type ApplyResult struct {
	Proceeded bool
	Added     int
	Updated   int
	Failed    int
	Failures  []RowFailure
}
