package usage_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/usage"
)

func TestBestEffortTrack(t *testing.T) {
	t.Parallel()

	t.Run("writes feature usage event", func(t *testing.T) {
		t.Parallel()

		sink := usage.NewMemorySink()
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		tracker := usage.NewTracker(sink, usage.WithClock(func() time.Time { return at }))
		userID := uuid.New()

		d := tracker.BestEffortTrack(context.Background(), userID, "analytics.advanced", map[string]any{"source": "dashboard"})
		require.True(t, d.Wait())
		require.NoError(t, d.Err())

		events := sink.Events()
		require.Len(t, events, 1)
		assert.Equal(t, userID, events[0].UserID)
		assert.Equal(t, "feature", events[0].EntityType)
		assert.Equal(t, "analytics.advanced", events[0].EntityID)
		assert.Equal(t, "usage", events[0].EventType)
		assert.Equal(t, "dashboard", events[0].Metadata["source"])
		assert.Equal(t, at, events[0].CreatedAt)
	})

	t.Run("sink failure is logged and dropped", func(t *testing.T) {
		t.Parallel()

		errSink := errors.New("insert failed")
		sink := usage.NewMemorySink()
		sink.FailWith(errSink)

		buf := &bytes.Buffer{}
		log := slog.New(slog.NewJSONHandler(buf, nil))
		tracker := usage.NewTracker(sink, usage.WithLogger(log))

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "exports.excel", nil)
		assert.False(t, d.Wait())
		assert.ErrorIs(t, d.Err(), errSink)
		assert.Empty(t, sink.Events())
		assert.Contains(t, buf.String(), "feature usage event dropped")
		assert.Contains(t, buf.String(), "exports.excel")
	})

	t.Run("sink panic is recovered and dropped", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := slog.New(slog.NewJSONHandler(buf, nil))
		tracker := usage.NewTracker(usage.SinkFunc(func(context.Context, usage.Event) error {
			panic("sink exploded")
		}), usage.WithLogger(log))

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "integrations.api", nil)
		assert.False(t, d.Wait())
		assert.ErrorIs(t, d.Err(), usage.ErrFailedToInsert)
		assert.ErrorContains(t, d.Err(), "sink exploded")
		assert.Contains(t, buf.String(), "feature usage event dropped")

		ok := tracker.BestEffortTrack(context.Background(), uuid.New(), "integrations.api", nil)
		assert.False(t, ok.Wait())
		require.NoError(t, tracker.Close(context.Background()))
	})

	t.Run("caller cancellation does not abort write", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		var got []usage.Event
		var mu sync.Mutex
		sink := usage.SinkFunc(func(ctx context.Context, e usage.Event) error {
			<-release
			if err := ctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
			return nil
		})
		tracker := usage.NewTracker(sink)

		ctx, cancel := context.WithCancel(context.Background())
		d := tracker.BestEffortTrack(ctx, uuid.New(), "qrCodes", nil)
		cancel()
		close(release)

		require.True(t, d.Wait())
		mu.Lock()
		assert.Len(t, got, 1)
		mu.Unlock()
	})

	t.Run("write is bounded by timeout", func(t *testing.T) {
		t.Parallel()

		sink := usage.SinkFunc(func(ctx context.Context, _ usage.Event) error {
			<-ctx.Done()
			return ctx.Err()
		})
		tracker := usage.NewTracker(sink, usage.WithTimeout(20*time.Millisecond))

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "qrCodes", nil)
		select {
		case <-d.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("delivery did not time out")
		}
		assert.ErrorIs(t, d.Err(), usage.ErrDeliveryTimeout)
	})

	t.Run("empty feature is rejected", func(t *testing.T) {
		t.Parallel()

		sink := usage.NewMemorySink()
		tracker := usage.NewTracker(sink)

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "", nil)
		assert.False(t, d.Wait())
		assert.ErrorIs(t, d.Err(), usage.ErrInvalidEvent)
		assert.Empty(t, sink.Events())
	})

	t.Run("metadata is copied", func(t *testing.T) {
		t.Parallel()

		sink := usage.NewMemorySink()
		tracker := usage.NewTracker(sink)
		meta := map[string]any{"k": "v"}

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "qrCodes", meta)
		meta["k"] = "changed"
		require.True(t, d.Wait())
		assert.Equal(t, "v", sink.Events()[0].Metadata["k"])
	})

	t.Run("nil sink panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { usage.NewTracker(nil) })
	})
}

func TestTrackerClose(t *testing.T) {
	t.Parallel()

	t.Run("waits for in-flight deliveries", func(t *testing.T) {
		t.Parallel()

		sink := usage.NewMemorySink()
		slow := usage.SinkFunc(func(ctx context.Context, e usage.Event) error {
			time.Sleep(20 * time.Millisecond)
			return sink.Insert(ctx, e)
		})
		tracker := usage.NewTracker(slow)

		for range 5 {
			tracker.BestEffortTrack(context.Background(), uuid.New(), "qrCodes", nil)
		}
		require.NoError(t, tracker.Close(context.Background()))
		assert.Len(t, sink.Events(), 5)
	})

	t.Run("rejects events after close", func(t *testing.T) {
		t.Parallel()

		sink := usage.NewMemorySink()
		tracker := usage.NewTracker(sink)
		require.NoError(t, tracker.Close(context.Background()))

		d := tracker.BestEffortTrack(context.Background(), uuid.New(), "qrCodes", nil)
		assert.False(t, d.Wait())
		assert.ErrorIs(t, d.Err(), usage.ErrTrackerClosed)
	})

	t.Run("context bounds the wait", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		defer close(block)
		tracker := usage.NewTracker(usage.SinkFunc(func(context.Context, usage.Event) error {
			<-block
			return nil
		}))
		tracker.BestEffortTrack(context.Background(), uuid.New(), "qrCodes", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, tracker.Close(ctx), context.DeadlineExceeded)
	})
}
