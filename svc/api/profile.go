package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/logger"
)

// Header names read by HeaderProfile.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserPlan = "X-User-Plan"
)

// Profile is the caller as seen by the API.
type Profile struct {
	UserID        uuid.UUID
	Plan          entitlement.Plan
	Authenticated bool
}

// ProfileFunc extracts the caller's profile from a request.
type ProfileFunc func(r *http.Request) (Profile, error)

// HeaderProfile trusts the identity headers set by the gateway in front of
// the API. Requests without a user id are anonymous and on the free plan.
func HeaderProfile(r *http.Request) (Profile, error) {
	p := Profile{Plan: entitlement.ResolvePlan(r.Header.Get(HeaderUserPlan))}

	raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if raw == "" {
		return p, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return Profile{}, errors.Join(ErrInvalidProfile, fmt.Errorf("user id %q", raw))
	}
	p.UserID = id
	p.Authenticated = true
	return p, nil
}

type profileCtxKey struct{}

// WithProfile stores p in ctx along with its plan.
func WithProfile(ctx context.Context, p Profile) context.Context {
	ctx = context.WithValue(ctx, profileCtxKey{}, p)
	return entitlement.SetPlanToContext(ctx, p.Plan)
}

// ProfileFromContext returns the profile stored by the profile middleware.
// Without one the caller is an anonymous free user.
func ProfileFromContext(ctx context.Context) Profile {
	if p, ok := ctx.Value(profileCtxKey{}).(Profile); ok {
		return p
	}
	return Profile{Plan: entitlement.Free}
}

// UserIDLogExtractor adds the authenticated user id to log records.
func UserIDLogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := ctx.Value(profileCtxKey{}).(Profile)
		if !ok || !p.Authenticated {
			return slog.Attr{}, false
		}
		return logger.UserID(p.UserID), true
	}
}

// PlanLogExtractor adds the caller's plan to log records.
func PlanLogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := ctx.Value(profileCtxKey{}).(Profile)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.Plan(p.Plan.String()), true
	}
}
