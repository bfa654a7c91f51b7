package entitlement

import (
	"errors"
	"fmt"
	"strings"
)

// Plan is a subscription tier.
type Plan string

// Known tiers, lowest first.
const (
	Free       Plan = "free"
	Pro        Plan = "pro"
	Enterprise Plan = "enterprise"
)

// Plans returns the known tiers ordered from lowest to highest.
func Plans() []Plan {
	return []Plan{Free, Pro, Enterprise}
}

// Rank returns the position of the plan in the tier order, or -1 if the plan is unknown.
func (p Plan) Rank() int {
	switch p {
	case Free:
		return 0
	case Pro:
		return 1
	case Enterprise:
		return 2
	}
	return -1
}

// Valid reports whether p is one of the known tiers.
func (p Plan) Valid() bool {
	return p.Rank() >= 0
}

// AtLeast reports whether p is the same tier as other or a higher one.
// Unknown plans never satisfy the comparison.
func (p Plan) AtLeast(other Plan) bool {
	return p.Valid() && other.Valid() && p.Rank() >= other.Rank()
}

// DisplayName returns the capitalized name used in UI copy ("Pro").
func (p Plan) DisplayName() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func (p Plan) String() string {
	return string(p)
}

// ParsePlan normalizes s and reports whether it names a known tier.
func ParsePlan(s string) (Plan, bool) {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// UnmarshalText parses a tier name, rejecting unknown plans.
func (p *Plan) UnmarshalText(text []byte) error {
	parsed, ok := ParsePlan(string(text))
	if !ok {
		return errors.Join(ErrUnknownPlan, fmt.Errorf("plan %q", text))
	}
	*p = parsed
	return nil
}

// ResolvePlan maps a profile's plan value to a tier.
// Missing or unrecognized values resolve to Free.
func ResolvePlan(s string) Plan {
	if p, ok := ParsePlan(s); ok {
		return p
	}
	return Free
}
