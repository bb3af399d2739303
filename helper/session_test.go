package helper

import (
	"context"
	"sync"
	"testing"
	"time"

	"festival_manager/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(rdb, SessionTTL), mr
}

func sampleCheckoutSession() model.CheckoutSession {
	return model.CheckoutSession{
		PaymentIntentId: "pi_session_test",
		UserId:          3,
		Items: []model.PricedLineItem{
			{TicketType: model.TicketTypeFullPass, Quantity: 1, UnitPrice: 110.00, DisplayName: "Full Festival Pass", LineTotal: 110.00},
		},
		TotalAmount: 110.00,
		CreatedAt:   time.Now(),
	}
}

func TestSessionStorePutTakeOnce(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleCheckoutSession()))

	got, err := store.TakeOnce(ctx, "pi_session_test")
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.UserId)
	assert.Equal(t, 110.00, got.TotalAmount)

	// Consumed: a second take must fail.
	_, err = store.TakeOnce(ctx, "pi_session_test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStorePeekDoesNotConsume(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleCheckoutSession()))

	// Peek any number of times; the session stays available.
	for i := 0; i < 3; i++ {
		got, err := store.Peek(ctx, "pi_session_test")
		require.NoError(t, err)
		assert.EqualValues(t, 3, got.UserId)
	}

	_, err := store.TakeOnce(ctx, "pi_session_test")
	assert.NoError(t, err)
}

func TestSessionStoreUnknownIntent(t *testing.T) {
	store, _ := newTestSessionStore(t)

	_, err := store.TakeOnce(context.Background(), "pi_never_created")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleCheckoutSession()))

	mr.FastForward(SessionTTL + time.Minute)

	_, err := store.TakeOnce(ctx, "pi_session_test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreConcurrentTakeOnce(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleCheckoutSession()))

	const goroutines = 16
	var wg sync.WaitGroup
	winners := make(chan *model.CheckoutSession, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s, err := store.TakeOnce(ctx, "pi_session_test"); err == nil {
				winners <- s
			}
		}()
	}
	wg.Wait()
	close(winners)

	count := 0
	for range winners {
		count++
	}
	assert.Equal(t, 1, count, "exactly one confirm may consume the session")
}
