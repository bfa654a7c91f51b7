package gate

import (
	"errors"
	"net/http"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// RequireFeature only lets requests through when the plan stored in the
// request context (see entitlement.SetPlanToContext) has the flag at path.
// Requests without a plan are treated as free.
//
// Denied requests go to the fallback handler when one is set. Otherwise JSON
// clients get 402 with an upgrade_required error, DataStar clients an SSE
// redirect, and everyone else a 303 to the upgrade URL.
func RequireFeature(path entitlement.Path, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			plan, _ := entitlement.PlanFromContext(r.Context())
			plan = entitlement.ResolvePlan(plan.String())

			if o.catalog.HasFeature(plan, path) {
				next.ServeHTTP(w, r)
				return
			}

			if o.onDenied != nil {
				o.onDenied(r, plan, path)
			}
			if o.fallbackHandler != nil {
				o.fallbackHandler.ServeHTTP(w, r)
				return
			}

			_ = Denied(plan, path, o.upgradeURL).Render(w, r)
		})
	}
}

// Denied returns the response for a request that plan may not make.
func Denied(plan entitlement.Plan, path entitlement.Path, upgradeURL string) handler.Response {
	if upgradeURL == "" {
		upgradeURL = DefaultUpgradeURL
	}
	return deniedResponse{
		suggestion: entitlement.UpgradeSuggestion(plan, path),
		upgradeURL: upgradeURL,
	}
}

type deniedResponse struct {
	suggestion entitlement.Suggestion
	upgradeURL string
}

func (d deniedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	switch {
	case handler.IsDataStar(r):
		return handler.Redirect(d.upgradeURL).Render(w, r)
	case handler.WantsJSON(r):
		return handler.JSONError(
			errors.Join(handler.ErrUpgradeRequired, errors.New(d.suggestion.Message)),
			handler.WithJSONMeta(map[string]any{
				"required_plan": d.suggestion.RequiredPlan,
				"upgrade_url":   d.upgradeURL,
			}),
		).Render(w, r)
	default:
		return handler.Redirect(d.upgradeURL).Render(w, r)
	}
}
