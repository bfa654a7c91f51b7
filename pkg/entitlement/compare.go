package entitlement

import "slices"

// PlanComparison contains the differences between two plans.
type PlanComparison struct {
	// Flags enabled in the target plan but not in the current one
	NewFeatures []Path
	// Flags enabled in the current plan but not in the target one
	LostFeatures []Path
	// Quotas present in both plans
	IncreasedLimits map[Path]QuotaChange
	DecreasedLimits map[Path]QuotaChange
	// Quotas present in only one of the plans
	NewQuotas     map[Path]Quota
	RemovedQuotas map[Path]Quota
}

// QuotaChange records a quota moving from one plan to another.
type QuotaChange struct {
	From Quota `json:"from"`
	To   Quota `json:"to"`
}

// HasQuotaDecreases returns true if any quota shrinks or disappears.
func (c *PlanComparison) HasQuotaDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedQuotas) > 0
}

// ComparePlans returns the differences between current and target.
// It returns nil if either plan is not defined in the catalog.
func (c *Catalog) ComparePlans(current, target Plan) *PlanComparison {
	currentTree, ok := c.plans[current]
	if !ok {
		return nil
	}
	targetTree, ok := c.plans[target]
	if !ok {
		return nil
	}

	comparison := &PlanComparison{
		NewFeatures:     make([]Path, 0),
		LostFeatures:    make([]Path, 0),
		IncreasedLimits: make(map[Path]QuotaChange),
		DecreasedLimits: make(map[Path]QuotaChange),
		NewQuotas:       make(map[Path]Quota),
		RemovedQuotas:   make(map[Path]Quota),
	}

	currentFlags := enabledFlags(currentTree)
	targetFlags := enabledFlags(targetTree)

	for _, path := range targetFlags {
		if !slices.Contains(currentFlags, path) {
			comparison.NewFeatures = append(comparison.NewFeatures, path)
		}
	}
	for _, path := range currentFlags {
		if !slices.Contains(targetFlags, path) {
			comparison.LostFeatures = append(comparison.LostFeatures, path)
		}
	}

	currentQuotas := c.Quotas(current)
	for path, to := range c.Quotas(target) {
		from, exists := currentQuotas[path]
		if !exists {
			comparison.NewQuotas[path] = to
			continue
		}
		if from == to {
			continue
		}

		// Going from unlimited to limited counts as a decrease
		change := QuotaChange{From: from, To: to}
		if to.covers(from) {
			comparison.IncreasedLimits[path] = change
		} else {
			comparison.DecreasedLimits[path] = change
		}
	}

	targetQuotas := c.Quotas(target)
	for path, from := range currentQuotas {
		if _, exists := targetQuotas[path]; !exists {
			comparison.RemovedQuotas[path] = from
		}
	}

	return comparison
}

func enabledFlags(tree Node) []Path {
	var paths []Path
	tree.Walk(func(path Path, leaf Node) {
		if leaf.Enabled() {
			paths = append(paths, path)
		}
	})
	return paths
}
