package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hkfashion/storefront-backend/pkg/config"
	"github.com/hkfashion/storefront-backend/pkg/redis"
)

// Store persists carts keyed by visitor session ID.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type sessionKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSessionKey(sessionID string) string
}

type redisStore struct {
	kv  sessionKV
	ttl time.Duration
}

// NewRedisStore builds a cart store backed by Redis with the session TTL.
func NewRedisStore(kv sessionKV, cfg config.SessionConfig) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &redisStore{kv: kv, ttl: ttl}, nil
}

// Load fetches the cart for the session. A missing key or an unreadable
// payload both yield a fresh empty cart rather than an error, so a stale
// session never blocks the shopper.
func (s *redisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading cart session: %w", err)
	}

	c := New()
	if unmarshalErr := json.Unmarshal([]byte(raw), &c); unmarshalErr != nil {
		return New(), nil
	}
	return c, nil
}

// Save writes the cart back and refreshes the session TTL. An empty cart is
// stored as-is so a deliberate clear survives a page reload.
func (s *redisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartSessionKey(sessionID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("saving cart session: %w", err)
	}
	return nil
}

// Delete removes the cart key entirely.
func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartSessionKey(sessionID)); err != nil {
		return fmt.Errorf("deleting cart session: %w", err)
	}
	return nil
}
