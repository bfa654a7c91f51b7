// Package currency converts USD list prices into a visitor's local currency.
//
// The supported currencies, their USD exchange rates and the country mapping
// are static tables. A Context carries the chosen currency and is immutable:
//
//	c := currency.NewContext("GHS", "GH", true)
//	p := c.PlanPricing(entitlement.Pro, currency.Monthly)
//	c.Format(p.Amount) // "GH¢20.00"
//
// A Detector resolves the Context for a visitor from a LocateFunc (usually
// backed by IP geolocation) and remembers the result in a PreferenceStore
// (memory or Redis). Location failures fall back to the stored preference and
// then to USD.
package currency
