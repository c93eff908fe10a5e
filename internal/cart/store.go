package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/southsteak/ordering-backend/pkg/errors"
	"github.com/southsteak/ordering-backend/pkg/redis"
)

// Store persists session carts. Load returns an empty cart for a session
// that has none; carts expire server-side after the configured TTL.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type cartCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore keeps carts as JSON blobs under the cart key namespace.
type RedisStore struct {
	cache cartCache
	ttl   time.Duration
}

// NewRedisStore builds a Redis-backed cart store with the given TTL.
func NewRedisStore(cache *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.cache.Get(ctx, s.cache.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return NewCart(sessionID), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart")
	}
	cart.SessionID = sessionID
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.cache.Set(ctx, s.cache.CartKey(cart.SessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, s.cache.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}

// MemoryStore is an in-process cart store for tests and single-node dev runs.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]*Cart{}}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cart, ok := s.carts[sessionID]; ok {
		clone := cloneCart(cart)
		return &clone, nil
	}
	return NewCart(sessionID), nil
}

func (s *MemoryStore) Save(ctx context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart.UpdatedAt = time.Now().UTC()
	clone := cloneCart(cart)
	s.carts[cart.SessionID] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func cloneCart(src *Cart) Cart {
	clone := *src
	clone.Lines = make([]Line, len(src.Lines))
	copy(clone.Lines, src.Lines)
	return clone
}
