package usage

import (
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Event kinds written for feature usage.
const (
	EntityTypeFeature = "feature"
	EventTypeUsage    = "usage"
)

// Event is one analytics record. Column names match the analytics table.
type Event struct {
	UserID     uuid.UUID      `json:"user_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EventType  string         `json:"event_type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewFeatureUsage builds the event recorded when a user touches a feature.
func NewFeatureUsage(userID uuid.UUID, feature string, metadata map[string]any, at time.Time) Event {
	return Event{
		UserID:     userID,
		EntityType: EntityTypeFeature,
		EntityID:   feature,
		EventType:  EventTypeUsage,
		Metadata:   maps.Clone(metadata),
		CreatedAt:  at.UTC(),
	}
}

// Validate checks the fields every sink relies on.
func (e Event) Validate() error {
	if e.EntityID == "" {
		return errors.Join(ErrInvalidEvent, errors.New("entity id is required"))
	}
	if e.EntityType == "" || e.EventType == "" {
		return errors.Join(ErrInvalidEvent, errors.New("entity and event type are required"))
	}
	return nil
}
