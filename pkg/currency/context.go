package currency

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// DefaultCountry is assumed when no location is known.
const DefaultCountry = "US"

// Context is a visitor's display currency. It is immutable; selecting another
// currency returns a new Context.
type Context struct {
	code     string
	country  string
	detected bool
}

// Default returns USD for the United States, not detected.
func Default() Context {
	return Context{code: Base, country: DefaultCountry}
}

// NewContext returns a Context for code and country. Unsupported codes fall back to USD.
func NewContext(code, country string, detected bool) Context {
	if _, ok := byCode[code]; !ok {
		code = Base
	}
	if country == "" {
		country = DefaultCountry
	}
	return Context{code: code, country: country, detected: detected}
}

func (c Context) Currency() string {
	if c.code == "" {
		return Base
	}
	return c.code
}

func (c Context) Country() string {
	if c.country == "" {
		return DefaultCountry
	}
	return c.country
}

// Detected reports whether the currency came from geolocation rather than a
// manual choice.
func (c Context) Detected() bool {
	return c.detected
}

// Config returns the currency definition, USD if the code is not supported.
func (c Context) Config() Currency {
	if cur, ok := byCode[c.Currency()]; ok {
		return cur
	}
	return byCode[Base]
}

// WithCurrency returns a copy using code, marked as not detected.
func (c Context) WithCurrency(code string) (Context, error) {
	normalized, err := ParseCode(code)
	if err != nil {
		return c, err
	}
	return Context{code: normalized, country: c.Country()}, nil
}

// Convert turns a USD amount into the context currency. Zero-decimal
// currencies round to whole units; all others to two decimal places.
func (c Context) Convert(usd decimal.Decimal) decimal.Decimal {
	converted := usd.Mul(c.Config().Rate)
	if isZeroDecimal(c.Currency()) {
		return converted.Round(0)
	}
	return converted.Round(2)
}

// Pricing is a plan price in the context currency.
type Pricing struct {
	Amount   decimal.Decimal
	Currency string
	Symbol   string
	Original decimal.Decimal // USD list price
}

// PlanPricing returns the price of plan for cycle. Unknown plans cost 0.
func (c Context) PlanPricing(plan entitlement.Plan, cycle BillingCycle) Pricing {
	base := BasePrice(plan, cycle)
	return Pricing{
		Amount:   c.Convert(base),
		Currency: c.Currency(),
		Symbol:   c.Config().Symbol,
		Original: base,
	}
}

// MarshalJSON encodes amounts as JSON numbers.
func (p Pricing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
		Symbol   string      `json:"symbol"`
		Original json.Number `json:"original"`
	}{json.Number(p.Amount.String()), p.Currency, p.Symbol, json.Number(p.Original.String())})
}

// Format renders amount with the currency symbol. Dollar-style currencies and
// most others prefix the symbol with two decimals, EUR suffixes it, JPY and
// KRW show whole units.
func (c Context) Format(amount decimal.Decimal) string {
	code := c.Currency()
	symbol := c.Config().Symbol
	switch code {
	case "EUR":
		return amount.StringFixed(2) + symbol
	case "JPY", "KRW":
		return symbol + amount.Round(0).String()
	default:
		return symbol + amount.StringFixed(2)
	}
}

// Savings is what a yearly subscription saves over twelve monthly payments.
type Savings struct {
	Amount     decimal.Decimal
	Percentage int
	Currency   string
	Symbol     string
}

// MarshalJSON encodes the amount as a JSON number.
func (s Savings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount     json.Number `json:"amount"`
		Percentage int         `json:"percentage"`
		Currency   string      `json:"currency"`
		Symbol     string      `json:"symbol"`
	}{json.Number(s.Amount.String()), s.Percentage, s.Currency, s.Symbol})
}

// YearlySavings compares twelve monthly payments with one yearly payment,
// both converted first. Free plans report a zero percentage.
func (c Context) YearlySavings(plan entitlement.Plan) Savings {
	monthlyTotal := c.PlanPricing(plan, Monthly).Amount.Mul(decimal.NewFromInt(12))
	yearly := c.PlanPricing(plan, Yearly).Amount
	savings := monthlyTotal.Sub(yearly)

	var percentage int
	if !monthlyTotal.IsZero() {
		percentage = int(savings.Div(monthlyTotal).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	return Savings{
		Amount:     savings,
		Percentage: percentage,
		Currency:   c.Currency(),
		Symbol:     c.Config().Symbol,
	}
}
