package api

import (
	"errors"
	"fmt"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/currency"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/logger"
)

type planRequest struct {
	Plan string `path:"plan"`
}

type pricingRequest struct {
	Plan  string `path:"plan"`
	Cycle string `query:"cycle"`
}

type planPrice struct {
	Pricing   currency.Pricing `json:"pricing"`
	Formatted string           `json:"formatted"`
}

type planOffer struct {
	Plan    entitlement.Plan `json:"plan"`
	Name    string           `json:"name"`
	Current bool             `json:"current"`
	Monthly planPrice        `json:"monthly"`
	Yearly  planPrice        `json:"yearly"`
	Savings currency.Savings `json:"savings"`
}

type pricingResponse struct {
	Plan    entitlement.Plan      `json:"plan"`
	Cycle   currency.BillingCycle `json:"cycle"`
	Price   planPrice             `json:"price"`
	Savings *currency.Savings     `json:"savings,omitempty"`
}

type currencyState struct {
	Currency  string              `json:"currency"`
	Country   string              `json:"country"`
	Detected  bool                `json:"detected"`
	Config    currency.Currency   `json:"config"`
	Available []currency.Currency `json:"available"`
}

type selectCurrencyRequest struct {
	Currency string `json:"currency"`
}

type downgradeResponse struct {
	From    entitlement.Plan `json:"from"`
	To      entitlement.Plan `json:"to"`
	Allowed bool             `json:"allowed"`
	Reason  string           `json:"reason,omitempty"`
}

// displayCurrency resolves the caller's currency: a remembered choice first,
// then geolocation, then USD.
func (a *API) displayCurrency(ctx handler.Context) currency.Context {
	var locate currency.LocateFunc
	if a.locator != nil {
		locate = a.locator(ctx.Request())
	}
	return a.detector.Resolve(ctx, preferenceKey(ctx), locate)
}

func price(cc currency.Context, plan entitlement.Plan, cycle currency.BillingCycle) planPrice {
	p := cc.PlanPricing(plan, cycle)
	return planPrice{Pricing: p, Formatted: cc.Format(p.Amount)}
}

func currencyMeta(cc currency.Context) handler.JSONOption {
	return handler.WithJSONMeta(map[string]any{
		"currency": cc.Currency(),
		"country":  cc.Country(),
		"detected": cc.Detected(),
	})
}

func (a *API) listPlans(ctx handler.Context, _ struct{}) handler.Response {
	cc := a.displayCurrency(ctx)
	current := ProfileFromContext(ctx).Plan

	plans := a.catalog.Plans()
	offers := make([]planOffer, 0, len(plans))
	for _, plan := range plans {
		offers = append(offers, planOffer{
			Plan:    plan,
			Name:    plan.DisplayName(),
			Current: plan == current,
			Monthly: price(cc, plan, currency.Monthly),
			Yearly:  price(cc, plan, currency.Yearly),
			Savings: cc.YearlySavings(plan),
		})
	}
	return handler.JSON(offers, currencyMeta(cc))
}

// lookupPlan parses a plan name from the URL. Unlike profile plans, unknown
// names are an error rather than free.
func (a *API) lookupPlan(name string) (entitlement.Plan, error) {
	plan, ok := entitlement.ParsePlan(name)
	if !ok {
		return "", errors.Join(entitlement.ErrUnknownPlan, fmt.Errorf("plan %q", name))
	}
	if _, ok := a.catalog.Tree(plan); !ok {
		return "", errors.Join(entitlement.ErrUnknownPlan, fmt.Errorf("plan %q is not offered", name))
	}
	return plan, nil
}

func (a *API) pricing(ctx handler.Context, req pricingRequest) handler.Response {
	plan, err := a.lookupPlan(req.Plan)
	if err != nil {
		return errorResponse(err)
	}
	cycle := currency.Monthly
	if req.Cycle != "" {
		parsed, err := currency.ParseBillingCycle(req.Cycle)
		if err != nil {
			return errorResponse(err)
		}
		cycle = parsed
	}

	cc := a.displayCurrency(ctx)
	resp := pricingResponse{
		Plan:  plan,
		Cycle: cycle,
		Price: price(cc, plan, cycle),
	}
	if cycle == currency.Yearly {
		savings := cc.YearlySavings(plan)
		resp.Savings = &savings
	}
	return handler.JSON(resp, currencyMeta(cc))
}

func (a *API) downgrade(ctx handler.Context, req planRequest) handler.Response {
	target, err := a.lookupPlan(req.Plan)
	if err != nil {
		return errorResponse(err)
	}
	p := ProfileFromContext(ctx)
	resp := downgradeResponse{From: p.Plan, To: target, Allowed: true}

	err = a.svc.CanDowngrade(ctx, p.UserID, target)
	switch {
	case err == nil:
	case errors.Is(err, entitlement.ErrDowngradeNotPossible):
		resp.Allowed = false
		resp.Reason = "current usage exceeds the limits of the " + target.DisplayName() + " plan"
	default:
		a.log.ErrorContext(ctx, "failed to check downgrade", logger.Plan(target.String()), logger.Error(err))
		return errorResponse(err)
	}
	return handler.JSON(resp)
}

func (a *API) getCurrency(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(newCurrencyState(a.displayCurrency(ctx)))
}

func (a *API) selectCurrency(ctx handler.Context, req selectCurrencyRequest) handler.Response {
	current := a.detector.Current(ctx, preferenceKey(ctx))
	next, err := a.detector.Select(ctx, preferenceKey(ctx), current, req.Currency)
	if err != nil {
		return errorResponse(err)
	}
	a.log.DebugContext(ctx, "currency selected", logger.Currency(next.Currency()))
	return handler.JSON(newCurrencyState(next))
}

func newCurrencyState(cc currency.Context) currencyState {
	return currencyState{
		Currency:  cc.Currency(),
		Country:   cc.Country(),
		Detected:  cc.Detected(),
		Config:    cc.Config(),
		Available: currency.Available(),
	}
}
