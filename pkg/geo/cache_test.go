package geo_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/geo"
)

type countingLocator struct {
	calls   atomic.Int32
	country string
	err     error
}

func (l *countingLocator) Locate(context.Context, string) (string, error) {
	l.calls.Add(1)
	return l.country, l.err
}

func TestCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("repeated lookups hit the cache", func(t *testing.T) {
		t.Parallel()
		next := &countingLocator{country: "GH"}
		c := geo.NewCache(next, 10, time.Hour)

		for range 3 {
			country, err := c.Locate(ctx, "41.66.200.1")
			require.NoError(t, err)
			assert.Equal(t, "GH", country)
		}
		assert.Equal(t, int32(1), next.calls.Load())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		t.Parallel()
		next := &countingLocator{err: errors.New("rate limited")}
		c := geo.NewCache(next, 10, time.Hour)

		_, err := c.Locate(ctx, "1.1.1.1")
		require.Error(t, err)
		_, err = c.Locate(ctx, "1.1.1.1")
		require.Error(t, err)
		assert.Equal(t, int32(2), next.calls.Load())
		assert.Zero(t, c.Len())
	})

	t.Run("least recently used address is evicted", func(t *testing.T) {
		t.Parallel()
		next := &countingLocator{country: "US"}
		c := geo.NewCache(next, 2, time.Hour)

		for _, ip := range []string{"8.8.8.8", "8.8.4.4", "9.9.9.9"} {
			_, err := c.Locate(ctx, ip)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, c.Len())

		_, err := c.Locate(ctx, "8.8.8.8")
		require.NoError(t, err)
		assert.Equal(t, int32(4), next.calls.Load())
	})

	t.Run("request locator uses the client ip", func(t *testing.T) {
		t.Parallel()
		next := &countingLocator{country: "KE"}
		c := geo.NewCache(next, 10, time.Hour)

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "41.90.1.1:5555"
		country, err := c.RequestLocator(r)(ctx)
		require.NoError(t, err)
		assert.Equal(t, "KE", country)
	})
}
