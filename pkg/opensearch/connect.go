package opensearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// Connect creates a client and checks that the cluster answers.
func Connect(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNoAddresses
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if err := Healthcheck(client)(ctx); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return client, nil
}

const usageMapping = `{
  "mappings": {
    "properties": {
      "user_id":     {"type": "keyword"},
      "entity_type": {"type": "keyword"},
      "entity_id":   {"type": "keyword"},
      "event_type":  {"type": "keyword"},
      "metadata":    {"type": "object", "enabled": false},
      "created_at":  {"type": "date"}
    }
  }
}`

// UsageIndex returns the index usage events are written to, creating it
// with the event mapping when it does not exist yet.
func UsageIndex(ctx context.Context, client opensearchapi.Transport, cfg Config) (string, error) {
	name := cfg.UsageIndex

	exists, err := opensearchapi.IndicesExistsRequest{Index: []string{name}}.Do(ctx, client)
	if err != nil {
		return "", errors.Join(ErrFailedToCreateIndex, err)
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return name, nil
	}

	res, err := opensearchapi.IndicesCreateRequest{
		Index: name,
		Body:  strings.NewReader(usageMapping),
	}.Do(ctx, client)
	if err != nil {
		return "", errors.Join(ErrFailedToCreateIndex, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		// Another instance created it first
		if strings.Contains(string(body), "resource_already_exists_exception") {
			return name, nil
		}
		return "", errors.Join(ErrFailedToCreateIndex, fmt.Errorf("status %d: %s", res.StatusCode, body))
	}
	return name, nil
}
