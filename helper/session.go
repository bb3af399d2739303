package helper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"festival_manager/config"
	"festival_manager/model"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("checkout session not found or expired")

// SessionTTL bounds how long an open payment intent stays confirmable.
const SessionTTL = 30 * time.Minute

const sessionKeyPrefix = "payment_validation_"

// SessionStore keeps checkout sessions in Redis, keyed by payment intent id.
// TakeOnce is a single GETDEL so concurrent confirms contend on one key and
// at most one caller receives the session.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Sessions is the process-wide store, set up in main (tests swap it for one
// backed by miniredis).
var Sessions *SessionStore

func InitSessionStore() {
	rdb := redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})
	Sessions = NewSessionStore(rdb, SessionTTL)
}

func (s *SessionStore) Put(ctx context.Context, session model.CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode checkout session: %w", err)
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+session.PaymentIntentId, payload, s.ttl).Err()
}

// Peek reads the session without consuming it, so callers can run checks
// that must not destroy the session when they fail (ownership).
func (s *SessionStore) Peek(ctx context.Context, paymentIntentId string) (*model.CheckoutSession, error) {
	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+paymentIntentId).Result()
	return s.decode(payload, err)
}

// TakeOnce atomically retrieves and deletes the session. A second call for
// the same intent id returns ErrSessionNotFound, as does a session older
// than the TTL that somehow survived expiry.
func (s *SessionStore) TakeOnce(ctx context.Context, paymentIntentId string) (*model.CheckoutSession, error) {
	payload, err := s.rdb.GetDel(ctx, sessionKeyPrefix+paymentIntentId).Result()
	return s.decode(payload, err)
}

func (s *SessionStore) decode(payload string, err error) (*model.CheckoutSession, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.CheckoutSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	if time.Since(session.CreatedAt) > s.ttl {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}
