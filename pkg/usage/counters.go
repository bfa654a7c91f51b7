package usage

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// CounterStore holds the current amount a user consumes of each quota,
// as reported by the services that own the counted resources.
type CounterStore interface {
	Set(ctx context.Context, userID uuid.UUID, path entitlement.Path, n int64) error
	Get(ctx context.Context, userID uuid.UUID, path entitlement.Path) (int64, error)
}

// Counter adapts store to an entitlement counter for path.
func Counter(store CounterStore, path entitlement.Path) entitlement.CounterFunc {
	return func(ctx context.Context, userID uuid.UUID) (int64, error) {
		return store.Get(ctx, userID, path)
	}
}

// RegisterCounters registers a store-backed counter for every quota path
// in the catalog's highest tier.
func RegisterCounters(reg entitlement.CounterRegistry, store CounterStore, catalog *entitlement.Catalog) {
	plans := catalog.Plans()
	if len(plans) == 0 {
		return
	}
	for path := range catalog.Quotas(plans[len(plans)-1]) {
		reg.Register(path, Counter(store, path))
	}
}

// MemoryCounters is an in-process CounterStore.
type MemoryCounters struct {
	mu     sync.RWMutex
	counts map[uuid.UUID]map[entitlement.Path]int64
}

func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{counts: make(map[uuid.UUID]map[entitlement.Path]int64)}
}

func (m *MemoryCounters) Set(_ context.Context, userID uuid.UUID, path entitlement.Path, n int64) error {
	if n < 0 {
		return ErrNegativeCounter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts[userID] == nil {
		m.counts[userID] = make(map[entitlement.Path]int64)
	}
	m.counts[userID][path] = n
	return nil
}

func (m *MemoryCounters) Get(_ context.Context, userID uuid.UUID, path entitlement.Path) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[userID][path], nil
}

// RedisCounters keeps counters in one hash per user, "usage:counters:<user>".
type RedisCounters struct {
	client redis.Cmdable
}

func NewRedisCounters(client redis.Cmdable) *RedisCounters {
	return &RedisCounters{client: client}
}

func (r *RedisCounters) key(userID uuid.UUID) string {
	return "usage:counters:" + userID.String()
}

func (r *RedisCounters) Set(ctx context.Context, userID uuid.UUID, path entitlement.Path, n int64) error {
	if n < 0 {
		return ErrNegativeCounter
	}
	if err := r.client.HSet(ctx, r.key(userID), path.String(), n).Err(); err != nil {
		return errors.Join(ErrCounterStore, err)
	}
	return nil
}

func (r *RedisCounters) Get(ctx context.Context, userID uuid.UUID, path entitlement.Path) (int64, error) {
	raw, err := r.client.HGet(ctx, r.key(userID), path.String()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrCounterStore, err)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrCounterStore, err)
	}
	return n, nil
}
