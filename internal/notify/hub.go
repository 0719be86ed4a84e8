package notify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Kind names a record collection whose derived views may be stale.
type Kind string

const (
	KindAccounts     Kind = "accounts"
	KindCategories   Kind = "categories"
	KindTransactions Kind = "transactions"
	KindBudgets      Kind = "budgets"
	KindGoals        Kind = "goals"
	KindBills        Kind = "bills"
	KindLoans        Kind = "loans"
	KindPlans        Kind = "plans"
)

// AllKinds lists every collection in dependency order.
var AllKinds = []Kind{
	KindAccounts, KindCategories, KindTransactions, KindBudgets,
	KindGoals, KindBills, KindLoans, KindPlans,
}

// Invalidation is emitted after every successful write.
type Invalidation struct {
	Sequence uint64    `json:"sequence"`
	Kinds    []Kind    `json:"kinds"`
	At       time.Time `json:"at"`
}

// SubscriberFunc receives invalidations. A returned error is reported to
// the publisher but never undoes the write.
type SubscriberFunc func(ctx context.Context, inv Invalidation) error

// Hub fans invalidations out to every subscriber concurrently.
type Hub struct {
	mu       sync.RWMutex
	subs     map[int]SubscriberFunc
	nextID   int
	sequence uint64
	now      func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]SubscriberFunc),
		now:  time.Now,
	}
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hub) Subscribe(fn SubscriberFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish stamps an invalidation for kinds and delivers it to every
// subscriber, returning the first subscriber error.
func (h *Hub) Publish(ctx context.Context, kinds []Kind) (Invalidation, error) {
	h.mu.Lock()
	h.sequence++
	inv := Invalidation{Sequence: h.sequence, Kinds: kinds, At: h.now().UTC()}
	subs := make([]SubscriberFunc, 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range subs {
		g.Go(func() error {
			return fn(gctx, inv)
		})
	}
	return inv, g.Wait()
}

// Sequence returns the number of invalidations published so far.
func (h *Hub) Sequence() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sequence
}

// Channel subscribes a buffered channel. Invalidations are dropped for a
// reader that falls behind by more than size. The channel is closed by the
// returned cancel function.
func (h *Hub) Channel(size int) (<-chan Invalidation, func()) {
	ch := make(chan Invalidation, size)
	var once sync.Once
	var closed bool
	var chMu sync.Mutex

	unsubscribe := h.Subscribe(func(_ context.Context, inv Invalidation) error {
		chMu.Lock()
		defer chMu.Unlock()
		if closed {
			return nil
		}
		select {
		case ch <- inv:
		default:
		}
		return nil
	})

	return ch, func() {
		once.Do(func() {
			unsubscribe()
			chMu.Lock()
			closed = true
			close(ch)
			chMu.Unlock()
		})
	}
}
