package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// BillingCycle selects monthly or yearly pricing.
type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Yearly  BillingCycle = "yearly"
)

// ParseBillingCycle accepts "monthly" or "yearly". An empty value means monthly.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case "", Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	}
	return "", ErrInvalidBillingCycle
}

type price struct {
	monthly decimal.Decimal
	yearly  decimal.Decimal
}

// basePricing holds list prices in USD.
var basePricing = map[entitlement.Plan]price{
	entitlement.Free:       {monthly: decimal.Zero, yearly: decimal.Zero},
	entitlement.Pro:        {monthly: decimal.RequireFromString("1.6"), yearly: decimal.RequireFromString("16")},
	entitlement.Enterprise: {monthly: decimal.RequireFromString("8"), yearly: decimal.RequireFromString("80")},
}

// BasePrice returns the USD list price of plan for cycle. Unknown plans cost 0.
func BasePrice(plan entitlement.Plan, cycle BillingCycle) decimal.Decimal {
	p, ok := basePricing[plan]
	if !ok {
		return decimal.Zero
	}
	if cycle == Yearly {
		return p.yearly
	}
	return p.monthly
}
