package usage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// inserter is satisfied by *mongo.Collection.
type inserter interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

// eventDocument stores the user id as a string rather than a binary array.
type eventDocument struct {
	UserID     string         `bson:"user_id"`
	EntityType string         `bson:"entity_type"`
	EntityID   string         `bson:"entity_id"`
	EventType  string         `bson:"event_type"`
	Metadata   map[string]any `bson:"metadata,omitempty"`
	CreatedAt  time.Time      `bson:"created_at"`
}

// MongoSink stores each event as a document.
type MongoSink struct {
	coll inserter
}

// NewMongoSink returns a sink writing to coll.
func NewMongoSink(coll inserter) *MongoSink {
	return &MongoSink{coll: coll}
}

func (s *MongoSink) Insert(ctx context.Context, event Event) error {
	doc := eventDocument{
		UserID:     event.UserID.String(),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		EventType:  event.EventType,
		Metadata:   event.Metadata,
		CreatedAt:  event.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}
	return nil
}
