package ratelimiter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, c *clock) *ratelimiter.Bucket {
	t.Helper()
	b, err := ratelimiter.NewBucket(ratelimiter.Config{
		Rate:    1,
		Burst:   3,
		MaxKeys: 100,
		IdleTTL: time.Hour,
	}, ratelimiter.WithClock(c.Now))
	require.NoError(t, err)
	return b
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero rate", ratelimiter.Config{Burst: 1, MaxKeys: 1, IdleTTL: time.Minute}},
		{"zero burst", ratelimiter.Config{Rate: 1, MaxKeys: 1, IdleTTL: time.Minute}},
		{"zero keys", ratelimiter.Config{Rate: 1, Burst: 1, IdleTTL: time.Minute}},
		{"zero ttl", ratelimiter.Config{Rate: 1, Burst: 1, MaxKeys: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("burst then refill", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c)

		for i := range 3 {
			res, err := b.Allow(ctx, "user:1")
			require.NoError(t, err)
			assert.True(t, res.Allowed(), "request %d", i)
			assert.Equal(t, 2-i, res.Remaining)
		}

		res, err := b.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, time.Second, res.RetryAfter)

		c.Advance(time.Second)
		res, err = b.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c)

		_, err := b.AllowN(ctx, "user:1", 3)
		require.NoError(t, err)

		res, err := b.Allow(ctx, "user:2")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("reset restores the burst", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		b := newBucket(t, c)

		_, err := b.AllowN(ctx, "user:1", 3)
		require.NoError(t, err)
		b.Reset("user:1")

		res, err := b.AllowN(ctx, "user:1", 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("invalid token count", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, &clock{now: time.Now()})

		_, err := b.AllowN(ctx, "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
		_, err = b.AllowN(ctx, "k", 4)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		b := newBucket(t, &clock{now: time.Now()})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := b.Allow(cctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func (failingLimiter) AllowN(context.Context, string, int) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	byHeader := func(r *http.Request) string { return r.Header.Get("X-Key") }

	t.Run("limits per key", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		h := ratelimiter.Middleware(newBucket(t, c), byHeader, nil)(ok)

		var last *httptest.ResponseRecorder
		for range 4 {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set("X-Key", "a")
			last = httptest.NewRecorder()
			h.ServeHTTP(last, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Equal(t, "3", last.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", last.Header().Get("Retry-After"))

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
		assert.Equal(t, "rate_limited", body.Error.Code)
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1_700_000_000, 0)}
		h := ratelimiter.Middleware(newBucket(t, c), byHeader, nil)(ok)

		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
	})

	t.Run("limiter failure lets requests through", func(t *testing.T) {
		t.Parallel()
		h := ratelimiter.Middleware(failingLimiter{}, byHeader, nil)(ok)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Key", "a")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	fixed := func(s string) ratelimiter.KeyFunc {
		return func(*http.Request) string { return s }
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "user:42", ratelimiter.Composite(fixed("user"), fixed(""), fixed("42"))(req))
	assert.Empty(t, ratelimiter.Composite(fixed(""))(req))

	long := ratelimiter.Composite(fixed(strings.Repeat("x", 80)))(req)
	assert.NotEmpty(t, long)
	assert.LessOrEqual(t, len(long), 13)
}
