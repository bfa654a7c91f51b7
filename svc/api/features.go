package api

import (
	"cmp"
	"errors"
	"net/http"
	"slices"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/logger"
)

type featureRequest struct {
	Path entitlement.Path `path:"path"`
}

type trackUsageRequest struct {
	Path     entitlement.Path `path:"path" json:"-"`
	Metadata map[string]any   `json:"metadata"`
}

type reportUsageRequest struct {
	Path    entitlement.Path `path:"path" json:"-"`
	Current int64            `json:"current"`
}

type quotaUsage struct {
	Path       entitlement.Path  `json:"path"`
	Current    int64             `json:"current"`
	Quota      entitlement.Quota `json:"quota"`
	Percentage int               `json:"percentage"`
	CanCreate  bool              `json:"can_create"`
}

type featureStatus struct {
	Path         entitlement.Path `json:"path"`
	Plan         entitlement.Plan `json:"plan"`
	Kind         string           `json:"kind"`
	Enabled      bool             `json:"enabled"`
	RequiredPlan entitlement.Plan `json:"required_plan,omitempty"`
	Usage        *quotaUsage      `json:"usage,omitempty"`
}

type upgradeResponse struct {
	CurrentPlan  entitlement.Plan `json:"current_plan"`
	RequiredPlan entitlement.Plan `json:"required_plan"`
	Message      string           `json:"message"`
	ButtonLabel  string           `json:"button_label"`
	UpgradeURL   string           `json:"upgrade_url"`
}

// known reports whether any plan of the catalog defines path.
func (a *API) known(path entitlement.Path) (entitlement.Node, bool) {
	plans := a.catalog.Plans()
	for _, plan := range slices.Backward(plans) {
		if node, ok := a.catalog.Lookup(plan, path); ok {
			return node, true
		}
	}
	return entitlement.Node{}, false
}

// kindUnknown marks paths no plan defines. They report as disabled, the same
// answer HasFeature gives.
const kindUnknown = "unknown"

func (a *API) feature(ctx handler.Context, req featureRequest) handler.Response {
	p := ProfileFromContext(ctx)
	node, ok := a.known(req.Path)
	if !ok {
		return handler.JSON(featureStatus{Path: req.Path, Plan: p.Plan, Kind: kindUnknown})
	}

	status := featureStatus{
		Path: req.Path,
		Plan: p.Plan,
		Kind: node.Kind().String(),
	}
	if required, ok := a.catalog.RequiredPlan(req.Path); ok {
		status.RequiredPlan = required
	}

	switch node.Kind() {
	case entitlement.KindFlag:
		status.Enabled = a.svc.HasFeature(ctx, p.UserID, req.Path)
	case entitlement.KindQuota:
		u, err := a.quotaUsage(ctx, p, req.Path)
		switch {
		case err == nil:
			status.Enabled = u.Quota.Unlimited() || u.Quota.Limit() > 0
			status.Usage = &u
		case errors.Is(err, entitlement.ErrQuotaNotFound):
		default:
			return errorResponse(err)
		}
	}
	return handler.JSON(status)
}

func (a *API) quotaUsage(ctx handler.Context, p Profile, path entitlement.Path) (quotaUsage, error) {
	current, q, err := a.svc.GetUsage(ctx, p.UserID, path)
	if err != nil {
		return quotaUsage{}, err
	}
	return quotaUsage{
		Path:       path,
		Current:    current,
		Quota:      q,
		Percentage: q.Percentage(current),
		CanCreate:  q.Allows(current),
	}, nil
}

func (a *API) upgrade(ctx handler.Context, req featureRequest) handler.Response {
	p := ProfileFromContext(ctx)
	s := a.svc.Suggest(ctx, p.UserID, req.Path)
	return handler.JSON(upgradeResponse{
		CurrentPlan:  p.Plan,
		RequiredPlan: s.RequiredPlan,
		Message:      s.Message,
		ButtonLabel:  s.ButtonLabel(),
		UpgradeURL:   a.cfg.UpgradeURL,
	})
}

// trackUsage records that the caller used a feature. Delivery is best effort:
// the response does not wait for the sink.
func (a *API) trackUsage(ctx handler.Context, req trackUsageRequest) handler.Response {
	p := ProfileFromContext(ctx)
	if !p.Authenticated {
		return errorResponse(ErrAuthRequired)
	}
	a.tracker.BestEffortTrack(ctx, p.UserID, req.Path.String(), req.Metadata)
	return handler.JSON(map[string]any{"accepted": true}, handler.WithJSONStatus(http.StatusAccepted))
}

func (a *API) allUsage(ctx handler.Context, _ struct{}) handler.Response {
	p := ProfileFromContext(ctx)
	all, err := a.svc.AllUsage(ctx, p.UserID)
	if err != nil {
		return errorResponse(err)
	}

	result := make([]quotaUsage, 0, len(all))
	for path, info := range all {
		result = append(result, quotaUsage{
			Path:       path,
			Current:    info.Current,
			Quota:      info.Quota,
			Percentage: info.Quota.Percentage(info.Current),
			CanCreate:  info.Quota.Allows(info.Current),
		})
	}
	slices.SortFunc(result, func(x, y quotaUsage) int {
		return cmp.Compare(x.Path, y.Path)
	})
	return handler.JSON(result, handler.WithJSONMeta(map[string]any{"plan": p.Plan}))
}

// reportUsage stores the caller's current consumption of a quota, as counted
// by the service that owns the resource.
func (a *API) reportUsage(ctx handler.Context, req reportUsageRequest) handler.Response {
	p := ProfileFromContext(ctx)
	if !p.Authenticated {
		return errorResponse(ErrAuthRequired)
	}
	if req.Current < 0 {
		return errorResponse(ErrNegativeUsage)
	}
	node, ok := a.known(req.Path)
	if !ok || node.Kind() != entitlement.KindQuota {
		return errorResponse(entitlement.ErrQuotaNotFound)
	}

	if err := a.counters.Set(ctx, p.UserID, req.Path, req.Current); err != nil {
		a.log.ErrorContext(ctx, "failed to store usage counter", logger.Feature(req.Path.String()), logger.Error(err))
		return errorResponse(err)
	}

	u, err := a.quotaUsage(ctx, p, req.Path)
	if err != nil {
		return errorResponse(err)
	}
	return handler.JSON(u)
}
