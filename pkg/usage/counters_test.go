package usage_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/usage"
)

func TestCounterStores(t *testing.T) {
	t.Parallel()

	stores := map[string]func(t *testing.T) usage.CounterStore{
		"memory": func(t *testing.T) usage.CounterStore { return usage.NewMemoryCounters() },
		"redis": func(t *testing.T) usage.CounterStore {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return usage.NewRedisCounters(client)
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := newStore(t)
			user := uuid.New()

			n, err := store.Get(ctx, user, entitlement.PathSurveys)
			require.NoError(t, err)
			assert.Zero(t, n)

			require.NoError(t, store.Set(ctx, user, entitlement.PathSurveys, 4))
			n, err = store.Get(ctx, user, entitlement.PathSurveys)
			require.NoError(t, err)
			assert.Equal(t, int64(4), n)

			other, err := store.Get(ctx, uuid.New(), entitlement.PathSurveys)
			require.NoError(t, err)
			assert.Zero(t, other)

			assert.ErrorIs(t, store.Set(ctx, user, entitlement.PathSurveys, -1), usage.ErrNegativeCounter)
		})
	}
}

func TestRedisCountersFailure(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := usage.NewRedisCounters(client)
	user := uuid.New()

	mr.HSet("usage:counters:"+user.String(), "surveys", "many")
	_, err := store.Get(context.Background(), user, entitlement.PathSurveys)
	assert.ErrorIs(t, err, usage.ErrCounterStore)
}

func TestRegisterCounters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryCounters()
	reg := entitlement.NewRegistry()
	usage.RegisterCounters(reg, store, entitlement.Default())

	for _, path := range []entitlement.Path{entitlement.PathSurveys, entitlement.PathResponses, entitlement.PathStorage, entitlement.PathEvents} {
		assert.Contains(t, reg, path)
	}

	svc, err := entitlement.NewService(ctx, entitlement.DefaultSource(), reg, nil)
	require.NoError(t, err)

	user := uuid.New()
	freeCtx := entitlement.SetPlanToContext(ctx, entitlement.Free)
	require.NoError(t, store.Set(ctx, user, entitlement.PathSurveys, 4))
	assert.NoError(t, svc.CanCreate(freeCtx, user, entitlement.PathSurveys))

	require.NoError(t, store.Set(ctx, user, entitlement.PathSurveys, 5))
	assert.ErrorIs(t, svc.CanCreate(freeCtx, user, entitlement.PathSurveys), entitlement.ErrLimitExceeded)
}
