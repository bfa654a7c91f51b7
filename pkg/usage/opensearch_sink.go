package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// searchDocument is the indexed form of an Event.
type searchDocument struct {
	UserID     string         `json:"user_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EventType  string         `json:"event_type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// OpenSearchSink indexes one document per event.
type OpenSearchSink struct {
	client opensearchapi.Transport
	index  string
}

// NewOpenSearchSink returns a sink writing to index through client,
// usually an *opensearch.Client.
func NewOpenSearchSink(client opensearchapi.Transport, index string) *OpenSearchSink {
	return &OpenSearchSink{client: client, index: index}
}

func (s *OpenSearchSink) Insert(ctx context.Context, event Event) error {
	body, err := json.Marshal(searchDocument{
		UserID:     event.UserID.String(),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		EventType:  event.EventType,
		Metadata:   event.Metadata,
		CreatedAt:  event.CreatedAt,
	})
	if err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}

	res, err := opensearchapi.IndexRequest{
		Index: s.index,
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrFailedToInsert, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Join(ErrFailedToInsert, fmt.Errorf("opensearch index %s: status %d", s.index, res.StatusCode))
	}
	return nil
}
