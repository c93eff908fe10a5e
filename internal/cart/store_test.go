package cart

import (
	"context"
	"testing"
	"time"

	"github.com/southsteak/ordering-backend/pkg/redis"
)

type stubCache struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.data[key] = string(value.([]byte))
	s.ttls[key] = ttl
	return nil
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := s.data[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return val, nil
}

func (s *stubCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *stubCache) CartKey(sessionID string) string {
	return "ss:cart:" + sessionID
}

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	store := &RedisStore{cache: cache, ttl: time.Hour}
	ctx := context.Background()

	// missing session loads as an empty cart
	cart, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(cart.Lines) != 0 || cart.SessionID != "sess-1" {
		t.Fatalf("unexpected empty cart: %+v", cart)
	}

	cart.Add(Line{Key: "k1", UnitPrice: dec("380.00"), Quantity: 2})
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("save: %v", err)
	}
	if cache.ttls[cache.CartKey("sess-1")] != time.Hour {
		t.Fatal("save did not apply the configured TTL")
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Lines) != 1 || loaded.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected loaded cart: %+v", loaded)
	}
	if !loaded.Lines[0].UnitPrice.Equal(dec("380.00")) {
		t.Fatalf("price lost in round trip: %s", loaded.Lines[0].UnitPrice)
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(again.Lines) != 0 {
		t.Fatal("expected empty cart after delete")
	}
}
