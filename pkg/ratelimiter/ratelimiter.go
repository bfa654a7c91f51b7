package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Limit      int           // bucket capacity
	Remaining  int           // whole tokens left after this request
	RetryAfter time.Duration // zero when allowed
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return r.RetryAfter <= 0
}

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
	AllowN(ctx context.Context, key string, n int) (Result, error)
}

// Bucket keeps an in-memory token bucket per key. Buckets of keys that stay
// idle for Config.IdleTTL are dropped, as are the least recently used ones
// beyond Config.MaxKeys.
type Bucket struct {
	cfg     Config
	now     func() time.Time
	mu      sync.Mutex
	buckets *lru.LRU[string, *rate.Limiter]
}

// Option configures a Bucket.
type Option func(*Bucket)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBucket validates cfg and returns a Bucket.
func NewBucket(cfg Config, opts ...Option) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	b := &Bucket{
		cfg:     cfg,
		now:     time.Now,
		buckets: lru.NewLRU[string, *rate.Limiter](cfg.MaxKeys, nil, cfg.IdleTTL),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens from the bucket of key if they are all available.
// Denied requests consume nothing.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.cfg.Burst {
		return Result{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidTokenCount, n, b.cfg.Burst)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := b.now()
	lim := b.limiter(key)

	reservation := lim.ReserveN(now, n)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Result{
			Limit:      b.cfg.Burst,
			Remaining:  max(0, int(lim.TokensAt(now))),
			RetryAfter: delay,
		}, nil
	}
	return Result{
		Limit:     b.cfg.Burst,
		Remaining: max(0, int(lim.TokensAt(now))),
	}, nil
}

// Reset forgets the bucket of key.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets.Remove(key)
}

func (b *Bucket) limiter(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	lim, ok := b.buckets.Get(key)
	if !ok {
		lim = rate.NewLimiter(rate.Limit(b.cfg.Rate), b.cfg.Burst)
	}
	// Re-adding refreshes the idle deadline.
	b.buckets.Add(key, lim)
	return lim
}
