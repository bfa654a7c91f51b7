package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/surveyguy/surveykit/pkg/logger"
)

// DefaultTimeout bounds a single sink write.
const DefaultTimeout = 10 * time.Second

// Tracker records feature usage with a best-effort policy: each event is
// written at most once, never retried, and failures are logged and dropped.
// Writes are detached from the caller's cancellation.
type Tracker struct {
	sink    Sink
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used to report dropped events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithTimeout bounds each sink write. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker returns a Tracker writing to sink. Panics if sink is nil.
func NewTracker(sink Sink, opts ...Option) *Tracker {
	if sink == nil {
		panic(ErrNilSink)
	}
	t := &Tracker{
		sink:    sink,
		log:     slog.Default(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(logger.Component("usage"))
	return t
}

// BestEffortTrack records that userID used feature. It returns immediately;
// the returned Delivery reports whether the sink accepted the event.
// Cancelling ctx after the call does not abort the write.
func (t *Tracker) BestEffortTrack(ctx context.Context, userID uuid.UUID, feature string, metadata map[string]any) *Delivery {
	event := NewFeatureUsage(userID, feature, metadata, t.now())
	d := newDelivery()

	if err := event.Validate(); err != nil {
		t.drop(ctx, event, err)
		d.complete(err)
		return d
	}

	t.mu.RLock()
	if t.closed {
		t.mu.RUnlock()
		t.drop(ctx, event, ErrTrackerClosed)
		d.complete(ErrTrackerClosed)
		return d
	}
	t.wg.Add(1)
	t.mu.RUnlock()

	writeCtx := context.WithoutCancel(ctx)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(writeCtx, t.timeout)
		defer cancel()

		err := t.insert(ctx, event)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = errors.Join(ErrDeliveryTimeout, err)
			}
			t.drop(ctx, event, err)
		}
		d.complete(err)
	}()

	return d
}

// insert turns a sink panic into an error so it cannot take the process down.
func (t *Tracker) insert(ctx context.Context, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrFailedToInsert, fmt.Errorf("sink panic: %v", r))
		}
	}()
	return t.sink.Insert(ctx, event)
}

func (t *Tracker) drop(ctx context.Context, event Event, err error) {
	t.log.WarnContext(ctx, "feature usage event dropped",
		logger.UserID(event.UserID),
		logger.Feature(event.EntityID),
		logger.Error(err),
	)
}

// Close stops accepting events and waits for in-flight writes.
// The context bounds the wait; events still in flight when it expires may be lost.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delivery is the outcome of a single BestEffortTrack call.
type Delivery struct {
	done chan struct{}
	err  error
}

func newDelivery() *Delivery {
	return &Delivery{done: make(chan struct{})}
}

func (d *Delivery) complete(err error) {
	d.err = err
	close(d.done)
}

// Done is closed once the sink has answered or the write was abandoned.
func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the delivery completes and reports whether the sink accepted the event.
func (d *Delivery) Wait() bool {
	<-d.done
	return d.err == nil
}

// Err blocks until the delivery completes and returns the failure, if any.
func (d *Delivery) Err() error {
	<-d.done
	return d.err
}
