package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/logger"
)

// Check is a named readiness probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// DefaultProbeTimeout bounds each probe of HealthHandler.
const DefaultProbeTimeout = 2 * time.Second

// HealthHandler reports "ok" with 200 when every probe passes and "degraded"
// with 503 otherwise. Without checks it is a liveness probe.
func HealthHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		results := make(map[string]string, len(checks))

		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), DefaultProbeTimeout)
			err := c.Probe(ctx)
			cancel()

			if err != nil {
				log.WarnContext(r.Context(), "readiness check failed", slog.String("check", c.Name), logger.Error(err))
				results[c.Name] = "down"
				status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			results[c.Name] = "ok"
		}

		_ = handler.JSON(map[string]any{
			"status": status,
			"checks": results,
		}, handler.WithJSONStatus(code)).Render(w, r)
	}
}
