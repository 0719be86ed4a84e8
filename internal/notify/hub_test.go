package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEverySubscriber(t *testing.T) {
	hub := NewHub()
	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		hub.Subscribe(func(_ context.Context, inv Invalidation) error {
			assert.Equal(t, []Kind{KindTransactions}, inv.Kinds)
			calls.Add(1)
			return nil
		})
	}

	inv, err := hub.Publish(context.Background(), []Kind{KindTransactions})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, uint64(1), inv.Sequence)
	assert.Equal(t, uint64(1), hub.Sequence())
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	var calls atomic.Int32
	unsubscribe := hub.Subscribe(func(context.Context, Invalidation) error {
		calls.Add(1)
		return nil
	})
	unsubscribe()

	_, err := hub.Publish(context.Background(), []Kind{KindAccounts})

	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestHub_SubscriberErrorIsReported(t *testing.T) {
	hub := NewHub()
	hub.Subscribe(func(context.Context, Invalidation) error { return errors.New("broker down") })
	hub.Subscribe(func(context.Context, Invalidation) error { return nil })

	inv, err := hub.Publish(context.Background(), []Kind{KindBills})

	assert.EqualError(t, err, "broker down")
	assert.Equal(t, uint64(1), inv.Sequence, "the write is still counted")
}

func TestHub_Channel(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Channel(1)

	_, err := hub.Publish(context.Background(), []Kind{KindGoals})
	require.NoError(t, err)
	_, err = hub.Publish(context.Background(), []Kind{KindPlans})
	require.NoError(t, err)

	select {
	case inv := <-ch:
		assert.Equal(t, []Kind{KindGoals}, inv.Kinds, "second publish dropped for a full buffer")
	case <-time.After(time.Second):
		t.Fatal("no invalidation delivered")
	}

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	_, err = hub.Publish(context.Background(), []Kind{KindLoans})
	assert.NoError(t, err)
}

func TestEncodeInvalidation(t *testing.T) {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	msg, err := encodeInvalidation(Invalidation{Sequence: 7, Kinds: []Kind{KindAccounts, KindGoals}, At: at})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "7", msg.MessageId)
	assert.Equal(t, at, msg.Timestamp)

	var decoded Invalidation
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, []Kind{KindAccounts, KindGoals}, decoded.Kinds)
	assert.Equal(t, uint64(7), decoded.Sequence)
}
