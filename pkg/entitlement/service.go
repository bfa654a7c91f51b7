package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service answers entitlement questions for a user whose plan is resolved per call.
type Service interface {
	// Plan returns the resolved plan of the user.
	Plan(ctx context.Context, userID uuid.UUID) (Plan, error)

	// HasFeature tells whether the flag at path is enabled for the user's plan.
	HasFeature(ctx context.Context, userID uuid.UUID, path Path) bool

	// Limit returns the quota at path for the user's plan.
	Limit(ctx context.Context, userID uuid.UUID, path Path) (Quota, error)

	// CanUse reports whether one more unit fits given the caller-supplied usage.
	CanUse(ctx context.Context, userID uuid.UUID, path Path, current int64) bool

	// CanCreate checks the registered counter against the quota at path.
	CanCreate(ctx context.Context, userID uuid.UUID, path Path) error

	// GetUsage returns the current usage and quota at path.
	GetUsage(ctx context.Context, userID uuid.UUID, path Path) (int64, Quota, error)

	// UsagePercentage returns usage as percentage (0-100, or -1 for unlimited).
	UsagePercentage(ctx context.Context, userID uuid.UUID, path Path) int

	// AllUsage returns the usage of every quota in the user's plan.
	AllUsage(ctx context.Context, userID uuid.UUID) (map[Path]UsageInfo, error)

	// CanDowngrade checks if the user's current usage fits the target plan.
	CanDowngrade(ctx context.Context, userID uuid.UUID, target Plan) error

	// Suggest returns the upgrade suggestion for a denied path.
	Suggest(ctx context.Context, userID uuid.UUID, path Path) Suggestion

	// Catalog returns the catalog backing the service.
	Catalog() *Catalog
}

// UsageInfo pairs the current usage of a quota with the quota itself.
type UsageInfo struct {
	Current int64 `json:"current"`
	Quota   Quota `json:"quota"`
}

// PlanResolver resolves the plan of a user.
type PlanResolver func(ctx context.Context, userID uuid.UUID) (Plan, error)

type service struct {
	catalog  *Catalog
	counters CounterRegistry
	resolver PlanResolver
}

// NewService loads a catalog from src and returns a Service over it.
// A nil counters registry is replaced with an empty one and a nil resolver
// with ContextPlanResolver.
func NewService(ctx context.Context, src Source, counters CounterRegistry, resolver PlanResolver) (Service, error) {
	catalog, err := LoadCatalog(ctx, src)
	if err != nil {
		return nil, err
	}
	if counters == nil {
		counters = NewRegistry()
	}
	if resolver == nil {
		resolver = ContextPlanResolver
	}
	return &service{
		catalog:  catalog,
		counters: counters,
		resolver: resolver,
	}, nil
}

func (s *service) Catalog() *Catalog {
	return s.catalog
}

func (s *service) Plan(ctx context.Context, userID uuid.UUID) (Plan, error) {
	plan, err := s.resolver(ctx, userID)
	if err != nil {
		return "", err
	}
	if _, ok := s.catalog.Tree(plan); !ok {
		return "", ErrUnknownPlan
	}
	return plan, nil
}

func (s *service) HasFeature(ctx context.Context, userID uuid.UUID, path Path) bool {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return false
	}
	return s.catalog.HasFeature(plan, path)
}

func (s *service) Limit(ctx context.Context, userID uuid.UUID, path Path) (Quota, error) {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return Quota{}, err
	}
	q, ok := s.catalog.QuotaFor(plan, path)
	if !ok {
		return Quota{}, ErrQuotaNotFound
	}
	return q, nil
}

func (s *service) CanUse(ctx context.Context, userID uuid.UUID, path Path, current int64) bool {
	q, err := s.Limit(ctx, userID, path)
	if err != nil {
		return false
	}
	return q.Allows(current)
}

func (s *service) CanCreate(ctx context.Context, userID uuid.UUID, path Path) error {
	q, err := s.Limit(ctx, userID, path)
	if err != nil {
		return err
	}
	if q.Unlimited() {
		return nil
	}

	current, err := s.count(ctx, userID, path)
	if err != nil {
		return err
	}
	if !q.Allows(current) {
		return ErrLimitExceeded
	}
	return nil
}

func (s *service) GetUsage(ctx context.Context, userID uuid.UUID, path Path) (int64, Quota, error) {
	q, err := s.Limit(ctx, userID, path)
	if err != nil {
		return 0, Quota{}, err
	}
	current, err := s.count(ctx, userID, path)
	if err != nil {
		return 0, Quota{}, err
	}
	return current, q, nil
}

func (s *service) UsagePercentage(ctx context.Context, userID uuid.UUID, path Path) int {
	used, q, err := s.GetUsage(ctx, userID, path)
	if err != nil {
		return 0
	}
	return q.Percentage(used)
}

func (s *service) AllUsage(ctx context.Context, userID uuid.UUID) (map[Path]UsageInfo, error) {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return nil, err
	}

	quotas := s.catalog.Quotas(plan)
	result := make(map[Path]UsageInfo, len(quotas))
	for path, q := range quotas {
		info := UsageInfo{Quota: q}
		// Counter errors leave usage at 0
		if counter, ok := s.counters[path]; ok {
			if current, err := counter(ctx, userID); err == nil {
				info.Current = current
			}
		}
		result[path] = info
	}
	return result, nil
}

func (s *service) CanDowngrade(ctx context.Context, userID uuid.UUID, target Plan) error {
	if _, ok := s.catalog.Tree(target); !ok {
		return ErrUnknownPlan
	}
	current, err := s.Plan(ctx, userID)
	if err != nil {
		return err
	}

	comparison := s.catalog.ComparePlans(current, target)
	for path, change := range comparison.DecreasedLimits {
		counter, ok := s.counters[path]
		if !ok {
			// Unverifiable quotas do not block the downgrade
			continue
		}
		used, err := counter(ctx, userID)
		if err != nil {
			return errors.Join(ErrFailedToCountUsage, err)
		}
		if used > change.To.Limit() {
			return ErrDowngradeNotPossible
		}
	}
	return nil
}

func (s *service) Suggest(ctx context.Context, userID uuid.UUID, path Path) Suggestion {
	plan, _ := s.Plan(ctx, userID)
	return UpgradeSuggestion(plan, path)
}

func (s *service) count(ctx context.Context, userID uuid.UUID, path Path) (int64, error) {
	counter, ok := s.counters[path]
	if !ok {
		return 0, ErrNoCounterRegistered
	}
	current, err := counter(ctx, userID)
	if err != nil {
		return 0, errors.Join(ErrFailedToCountUsage, err)
	}
	return current, nil
}
