package usage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream RedisStreamSink appends to.
const DefaultStream = "analytics:usage"

// RedisStreamSink appends events to a Redis stream for downstream consumers.
type RedisStreamSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// RedisStreamOption configures a RedisStreamSink.
type RedisStreamOption func(*RedisStreamSink)

// WithStream overrides the stream key.
func WithStream(name string) RedisStreamOption {
	return func(s *RedisStreamSink) {
		if name != "" {
			s.stream = name
		}
	}
}

// WithMaxLen caps the stream length approximately. Zero means no cap.
func WithMaxLen(n int64) RedisStreamOption {
	return func(s *RedisStreamSink) {
		s.maxLen = n
	}
}

// NewRedisStreamSink returns a sink appending to a stream through client.
func NewRedisStreamSink(client redis.Cmdable, opts ...RedisStreamOption) *RedisStreamSink {
	s := &RedisStreamSink{client: client, stream: DefaultStream}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStreamSink) Insert(ctx context.Context, event Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"user_id":     event.UserID.String(),
			"entity_type": event.EntityType,
			"entity_id":   event.EntityID,
			"event_type":  event.EventType,
			"metadata":    string(metadata),
			"created_at":  event.CreatedAt.Format(time.RFC3339Nano),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}
	return nil
}
