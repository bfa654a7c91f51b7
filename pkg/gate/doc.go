// Package gate puts plan entitlements in front of UI fragments and routes.
//
// Gate wraps a templ component:
//
//	gate.Gate(plan, entitlement.PathIntegrationsAPI, apiKeysPanel())
//
// A free user sees the default prompt instead, built from the upgrade
// suggestion for the path ("Upgrade to Pro for API access and integrations")
// with a button submitting to /app/subscriptions.
//
// RequireFeature does the same for chi/net/http routes:
//
//	r.With(gate.RequireFeature(entitlement.PathQRCodes)).Get("/surveys/{id}/qrcode", qr)
package gate
