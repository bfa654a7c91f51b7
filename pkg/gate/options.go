package gate

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// DefaultUpgradeURL is where upgrade prompts send users.
const DefaultUpgradeURL = "/app/subscriptions"

type options struct {
	catalog         *entitlement.Catalog
	upgradeURL      string
	fallback        templ.Component
	fallbackHandler http.Handler
	buttonAttrs     templ.Attributes
	onDenied        func(r *http.Request, plan entitlement.Plan, path entitlement.Path)
}

// Option configures Gate and RequireFeature.
type Option func(*options)

// WithCatalog checks entitlements against c instead of the built-in catalog.
func WithCatalog(c *entitlement.Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithUpgradeURL changes the upgrade destination.
func WithUpgradeURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.upgradeURL = url
		}
	}
}

// WithFallback renders c instead of the default prompt when access is denied.
func WithFallback(c templ.Component) Option {
	return func(o *options) {
		o.fallback = c
	}
}

// WithFallbackHandler serves denied requests in RequireFeature.
func WithFallbackHandler(h http.Handler) Option {
	return func(o *options) {
		o.fallbackHandler = h
	}
}

// WithButtonAttrs replaces the prompt's upgrade form with a plain button
// carrying attrs, typically a client-side click handler.
//
//	gate.WithButtonAttrs(templ.Attributes{"data-on-click": "@get('/app/upgrade-modal')"})
func WithButtonAttrs(attrs templ.Attributes) Option {
	return func(o *options) {
		o.buttonAttrs = attrs
	}
}

// WithDeniedHook is called by RequireFeature for every denied request.
func WithDeniedHook(fn func(r *http.Request, plan entitlement.Plan, path entitlement.Path)) Option {
	return func(o *options) {
		o.onDenied = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		catalog:    entitlement.Default(),
		upgradeURL: DefaultUpgradeURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
