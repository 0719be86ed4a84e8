package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// Operator is the worker that processes items from the queue. Each action
// runs in its own transaction.
type Operator struct {
	storage   *storage.Storage
	queue     chan ActionItem
	publisher Publisher
}

func NewOperator(s *storage.Storage, queue chan ActionItem, publisher Publisher) *Operator {
	return &Operator{
		storage:   s,
		queue:     queue,
		publisher: publisher,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	// A started write runs to completion even if the caller goes away.
	ctx := context.WithoutCancel(item.ctx)
	writer, err := o.storage.Write(ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}

	if o.publisher == nil {
		return
	}
	inv, err := o.publisher.Publish(ctx, item.action.Touches())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"sequence": inv.Sequence,
			"kinds":    inv.Kinds,
		}).Warn("Operator.publish.error")
	}
}

// Publisher receives the collections an action touched after it commits.
type Publisher interface {
	Publish(ctx context.Context, kinds []notify.Kind) (notify.Invalidation, error)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
