package entitlement

import (
	"context"

	"github.com/google/uuid"
)

type planCtxKey struct{}

// SetPlanToContext stores the user's plan in the context for downstream access.
func SetPlanToContext(ctx context.Context, plan Plan) context.Context {
	return context.WithValue(ctx, planCtxKey{}, plan)
}

// PlanFromContext retrieves the plan from the context, if present.
func PlanFromContext(ctx context.Context) (Plan, bool) {
	plan, ok := ctx.Value(planCtxKey{}).(Plan)
	return plan, ok
}

// ContextPlanResolver is the default PlanResolver. It reads the plan from the
// context and falls back to Free when none is set or the value is unknown.
func ContextPlanResolver(ctx context.Context, _ uuid.UUID) (Plan, error) {
	plan, ok := PlanFromContext(ctx)
	if !ok {
		return Free, nil
	}
	return ResolvePlan(string(plan)), nil
}
