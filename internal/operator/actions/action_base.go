package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// ErrInvalid marks a write rejected because the record or one of its
// references is not acceptable.
var ErrInvalid = errors.New("invalid record")

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
	// Touches lists the collections whose derived views the action can change.
	Touches() []notify.Kind
}
