package usage

import (
	"context"
	"log/slog"

	"github.com/surveyguy/surveykit/pkg/logger"
)

// LogSink writes events to a structured logger instead of a store.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink returns a LogSink. A nil logger means slog.Default().
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Insert(ctx context.Context, event Event) error {
	s.log.InfoContext(ctx, "feature usage",
		logger.UserID(event.UserID),
		logger.Feature(event.EntityID),
		slog.String("event_type", event.EventType),
		slog.Any("metadata", event.Metadata),
	)
	return nil
}
