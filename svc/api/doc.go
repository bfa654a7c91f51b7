// Package api exposes plan entitlements, usage tracking and localized pricing
// over HTTP.
//
// The caller's identity comes from a ProfileFunc, by default HeaderProfile,
// which reads the X-User-ID and X-User-Plan headers set by the upstream
// gateway. Missing or unknown plans resolve to free. The resolved plan is
// stored in the request context so entitlement checks and gate.RequireFeature
// see the same tier.
//
//	router := api.NewRouter(cfg, api.Deps{
//	    Entitlements: svc,
//	    Tracker:      tracker,
//	    Counters:     counters,
//	    Detector:     detector,
//	})
//
// All JSON endpoints answer with the handler envelope: {"data": ...} on success
// and {"error": {"code", "message"}} on failure.
package api
