package currency

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Preference is a remembered currency. Manual marks a choice the visitor made
// themselves; otherwise the currency was derived from their location.
type Preference struct {
	Currency string
	Country  string
	Manual   bool
}

// PreferenceStore remembers a visitor's currency between requests.
type PreferenceStore interface {
	Load(ctx context.Context, key string) (Preference, bool, error)
	Save(ctx context.Context, key string, pref Preference) error
}

// MemoryStore is an in-process PreferenceStore.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]Preference
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]Preference)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (Preference, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, ok := s.prefs[key]
	return pref, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, pref Preference) error {
	s.mu.Lock()
	s.prefs[key] = pref
	s.mu.Unlock()
	return nil
}

// DefaultPreferenceTTL is how long RedisStore keeps a preference.
const DefaultPreferenceTTL = 365 * 24 * time.Hour

// RedisStore keeps preferences in Redis hashes under "currency:pref:<key>".
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore returns a RedisStore. A non-positive ttl uses DefaultPreferenceTTL.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultPreferenceTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) redisKey(key string) string {
	return "currency:pref:" + key
}

func (s *RedisStore) Load(ctx context.Context, key string) (Preference, bool, error) {
	values, err := s.client.HGetAll(ctx, s.redisKey(key)).Result()
	if err != nil {
		return Preference{}, false, errors.Join(ErrPreferenceStore, err)
	}
	code, ok := values["currency"]
	if !ok {
		return Preference{}, false, nil
	}
	return Preference{
		Currency: code,
		Country:  values["country"],
		Manual:   values["manual"] == "1",
	}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, pref Preference) error {
	k := s.redisKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		manual := "0"
		if pref.Manual {
			manual = "1"
		}
		pipe.HSet(ctx, k, "currency", pref.Currency, "country", pref.Country, "manual", manual)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return errors.Join(ErrPreferenceStore, err)
	}
	return nil
}
