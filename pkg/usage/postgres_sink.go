package usage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertEventQuery = `INSERT INTO analytics (user_id, entity_type, entity_id, event_type, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// PostgresSink inserts events into the analytics table.
type PostgresSink struct {
	db execer
}

// NewPostgresSink returns a sink writing through db.
func NewPostgresSink(db execer) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Insert(ctx context.Context, event Event) error {
	metadata := event.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	if _, err := s.db.Exec(ctx, insertEventQuery,
		event.UserID,
		event.EntityType,
		event.EntityID,
		event.EventType,
		metadata,
		event.CreatedAt,
	); err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}
	return nil
}
