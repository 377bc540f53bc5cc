// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryStore keeps pending registrations in process.
// Entries are evicted lazily once their TTL passes.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry

	Now func() time.Time
}

type memoryEntry struct {
	pending Pending
	evictAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		Now:   time.Now,
	}
}

func (m *MemoryStore) Put(ctx context.Context, p Pending, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	for token, e := range m.items {
		if now.After(e.evictAt) {
			delete(m.items, token)
		}
	}

	m.items[p.Token] = memoryEntry{pending: p, evictAt: now.Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[token]
	if !ok {
		return Pending{}, ErrNoPendingRegistration
	}
	if m.Now().After(e.evictAt) {
		delete(m.items, token)
		return Pending{}, ErrNoPendingRegistration
	}
	return e.pending, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, token)
	return nil
}

// RedisStore keeps pending registrations in redis as JSON with a key TTL,
// so they are shared between server instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "votesecure:pending:"}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Put(ctx context.Context, p Pending, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode pending registration: %w", err)
	}
	if err := r.client.Set(ctx, r.key(p.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (Pending, error) {
	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Pending{}, ErrNoPendingRegistration
	}
	if err != nil {
		return Pending{}, fmt.Errorf("redis get: %w", err)
	}

	var p Pending
	if err := json.Unmarshal(data, &p); err != nil {
		return Pending{}, fmt.Errorf("failed to decode pending registration: %w", err)
	}
	return p, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
