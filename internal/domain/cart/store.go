// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cart is the session-scoped mapping of string-encoded product id to
// quantity. Quantities are always >= 1 while a key exists.
type Cart map[string]int

// Store persists a session's cart. Implementations are keyed by session id;
// Get on an unknown session returns an empty cart, never an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisStore stores carts as JSON blobs in Redis with a TTL refreshed on
// every save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get retrieves the cart for a session
func (s *RedisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	data, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

// Save persists the full cart map back for a session
func (s *RedisStore) Save(ctx context.Context, sessionID string, cart Cart) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err()
}

// Clear removes the session's cart entirely
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

// MemoryStore is an in-process cart store for tests and single-node
// development.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]Cart),
	}
}

// Get retrieves the cart for a session
func (s *MemoryStore) Get(_ context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		return Cart{}, nil
	}

	// Copy so callers never mutate the stored map in place.
	cart := make(Cart, len(stored))
	for id, qty := range stored {
		cart[id] = qty
	}
	return cart, nil
}

// Save persists the full cart map back for a session
func (s *MemoryStore) Save(_ context.Context, sessionID string, cart Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(Cart, len(cart))
	for id, qty := range cart {
		stored[id] = qty
	}
	s.carts[sessionID] = stored
	return nil
}

// Clear removes the session's cart entirely
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
