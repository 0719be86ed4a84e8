package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
)

// ErrStopped is returned by Process after Stop.
var ErrStopped = errors.New("operator stopped")

// OperatorDelegator owns the write queue and the single Operator draining
// it. Every write in the process goes through Process, so writes are
// serialized.
type OperatorDelegator struct {
	storage   *storage.Storage
	queue     chan ActionItem
	publisher Publisher
	wg        sync.WaitGroup
	mu        sync.RWMutex
	stopped   bool
	stopOnce  sync.Once
}

func NewOperatorDelegator(s *storage.Storage, queueSize int, publisher Publisher) *OperatorDelegator {
	if queueSize < 1 {
		queueSize = 1
	}
	return &OperatorDelegator{
		storage:   s,
		queue:     make(chan ActionItem, queueSize),
		publisher: publisher,
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.storage, d.queue, d.publisher)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

// Stop drains queued actions and waits for the worker to exit.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Process enqueues action and waits for its result. Once the action is
// queued the result reflects what the worker did, even if ctx ends first:
// a queued action whose ctx is already done is skipped and reports ctx.Err().
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.mu.RLock()
	if d.stopped {
		d.mu.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
	case <-ctx.Done():
		d.mu.RUnlock()
		return ctx.Err()
	}
	d.mu.RUnlock()

	resp := <-respCh
	return resp.err
}
