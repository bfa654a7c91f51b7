package entitlement

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Catalog maps each plan to its feature tree.
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	plans map[Plan]Node
}

var defaultCatalog = mustCatalog(DefaultPlans())

// Default returns the catalog built from DefaultPlans.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog validates plans and returns a catalog over them.
// Every key must be a known plan, and every flag or quota granted by a lower
// tier must be granted at least as generously by each higher tier.
func NewCatalog(plans map[Plan]Node) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("no plans defined"))
	}
	for plan, tree := range plans {
		if !plan.Valid() {
			return nil, errors.Join(ErrInvalidCatalog, ErrUnknownPlan, fmt.Errorf("plan %q", plan))
		}
		if tree.Kind() != KindGroup {
			return nil, errors.Join(ErrInvalidCatalog, ErrInvalidNode, fmt.Errorf("plan %q root must be a group, got %s", plan, tree.Kind()))
		}
	}

	c := &Catalog{plans: maps.Clone(plans)}
	if err := c.validateTiers(); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	return c, nil
}

func mustCatalog(plans map[Plan]Node) *Catalog {
	c, err := NewCatalog(plans)
	if err != nil {
		panic(fmt.Sprintf("entitlement: invalid built-in catalog: %v", err))
	}
	return c
}

// validateTiers checks that tiers are additive.
func (c *Catalog) validateTiers() error {
	present := c.Plans()
	for i := 1; i < len(present); i++ {
		lower, higher := present[i-1], present[i]
		lowerTree, higherTree := c.plans[lower], c.plans[higher]

		var violations []error
		lowerTree.Walk(func(path Path, leaf Node) {
			switch leaf.Kind() {
			case KindFlag:
				if leaf.Enabled() {
					if got, ok := higherTree.Resolve(path); !ok || !got.Enabled() {
						violations = append(violations, fmt.Errorf("%q enabled on %s but not on %s", path, lower, higher))
					}
				}
			case KindQuota:
				lq, _ := leaf.Quota()
				got, ok := higherTree.Resolve(path)
				hq, isQuota := got.Quota()
				if !ok || !isQuota || !hq.covers(lq) {
					violations = append(violations, fmt.Errorf("quota %q on %s is lower than on %s", path, higher, lower))
				}
			}
		})
		if len(violations) > 0 {
			return errors.Join(append([]error{ErrNotMonotonic}, violations...)...)
		}
	}
	return nil
}

// Plans returns the plans defined in the catalog, lowest tier first.
func (c *Catalog) Plans() []Plan {
	plans := slices.Collect(maps.Keys(c.plans))
	slices.SortFunc(plans, func(a, b Plan) int { return a.Rank() - b.Rank() })
	return plans
}

// Tree returns the feature tree of plan.
func (c *Catalog) Tree(plan Plan) (Node, bool) {
	tree, ok := c.plans[plan]
	return tree, ok
}

// Lookup resolves path in the tree of plan.
// It reports false for unknown plans and for paths with a missing segment.
func (c *Catalog) Lookup(plan Plan, path Path) (Node, bool) {
	tree, ok := c.plans[plan]
	if !ok {
		return Node{}, false
	}
	return tree.Resolve(path)
}

// HasFeature reports whether path resolves to a flag set to true.
// Quotas and groups never count as features, even when they grant capacity.
func (c *Catalog) HasFeature(plan Plan, path Path) bool {
	node, ok := c.Lookup(plan, path)
	return ok && node.Enabled()
}

// QuotaFor returns the quota at path. It reports false when the path is
// missing or resolves to a flag or group.
func (c *Catalog) QuotaFor(plan Plan, path Path) (Quota, bool) {
	node, ok := c.Lookup(plan, path)
	if !ok {
		return Quota{}, false
	}
	return node.Quota()
}

// FeatureLimit returns the numeric limit at path, or 0 when the path is
// missing, is not a quota, or is unlimited.
func (c *Catalog) FeatureLimit(plan Plan, path Path) int64 {
	q, _ := c.QuotaFor(plan, path)
	return q.Limit()
}

// IsUnlimited reports whether path resolves to an unlimited quota.
func (c *Catalog) IsUnlimited(plan Plan, path Path) bool {
	q, _ := c.QuotaFor(plan, path)
	return q.Unlimited()
}

// RequiredPlan returns the lowest plan that enables the flag at path or
// grants a non-zero quota for it.
func (c *Catalog) RequiredPlan(path Path) (Plan, bool) {
	for _, plan := range c.Plans() {
		node, ok := c.Lookup(plan, path)
		if !ok {
			continue
		}
		if node.Enabled() {
			return plan, true
		}
		if q, isQuota := node.Quota(); isQuota && (q.Unlimited() || q.Limit() > 0) {
			return plan, true
		}
	}
	return "", false
}

// Paths returns every leaf path defined for plan in lexical order.
func (c *Catalog) Paths(plan Plan) []Path {
	tree, ok := c.plans[plan]
	if !ok {
		return nil
	}
	var paths []Path
	tree.Walk(func(path Path, _ Node) {
		paths = append(paths, path)
	})
	return paths
}

// Quotas returns every quota defined for plan keyed by path.
func (c *Catalog) Quotas(plan Plan) map[Path]Quota {
	tree, ok := c.plans[plan]
	if !ok {
		return nil
	}
	quotas := make(map[Path]Quota)
	tree.Walk(func(path Path, leaf Node) {
		if q, ok := leaf.Quota(); ok {
			quotas[path] = q
		}
	})
	return quotas
}

// SuggestionDrift returns the upgrade suggestion keys that do not resolve to
// a flag in any plan of the catalog. Such keys still produce their message;
// the report exists so the two tables can be reconciled.
func (c *Catalog) SuggestionDrift() []Path {
	var drift []Path
	for _, path := range slices.Sorted(maps.Keys(suggestions)) {
		found := false
		for _, plan := range c.Plans() {
			if node, ok := c.Lookup(plan, path); ok && node.Kind() == KindFlag {
				found = true
				break
			}
		}
		if !found {
			drift = append(drift, path)
		}
	}
	return drift
}

// Package-level lookups against the default catalog.

// HasFeature reports whether plan enables the flag at path in the default catalog.
func HasFeature(plan Plan, path Path) bool {
	return defaultCatalog.HasFeature(plan, path)
}

// FeatureLimit returns the quota limit at path in the default catalog.
func FeatureLimit(plan Plan, path Path) int64 {
	return defaultCatalog.FeatureLimit(plan, path)
}

// IsUnlimited reports whether path is an unlimited quota in the default catalog.
func IsUnlimited(plan Plan, path Path) bool {
	return defaultCatalog.IsUnlimited(plan, path)
}
