package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/surveyguy/surveykit/binder"
	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/currency"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/gate"
	"github.com/surveyguy/surveykit/pkg/geo"
	"github.com/surveyguy/surveykit/pkg/httpserver"
	"github.com/surveyguy/surveykit/pkg/logger"
	"github.com/surveyguy/surveykit/pkg/ratelimiter"
	"github.com/surveyguy/surveykit/pkg/usage"
)

// Locator returns a country lookup for the client of r.
type Locator func(r *http.Request) func(ctx context.Context) (string, error)

// Deps are the services behind the API. Entitlements, Tracker, Counters and
// Detector are required.
type Deps struct {
	Entitlements entitlement.Service
	Tracker      *usage.Tracker
	Counters     usage.CounterStore
	Detector     *currency.Detector
	Locator      Locator
	RateLimiter  ratelimiter.RateLimiter
	Health       []httpserver.Check
	Logger       *slog.Logger
}

// API serves the HTTP endpoints.
type API struct {
	cfg      Config
	svc      entitlement.Service
	catalog  *entitlement.Catalog
	tracker  *usage.Tracker
	counters usage.CounterStore
	detector *currency.Detector
	locator  Locator
	limiter  ratelimiter.RateLimiter
	health   []httpserver.Check
	profile  ProfileFunc
	log      *slog.Logger
}

// Option configures the API.
type Option func(*API)

// WithProfileFunc replaces HeaderProfile.
func WithProfileFunc(fn ProfileFunc) Option {
	return func(a *API) {
		if fn != nil {
			a.profile = fn
		}
	}
}

// New returns an API over deps. It panics if a required dependency is missing.
func New(cfg Config, deps Deps, opts ...Option) *API {
	if deps.Entitlements == nil || deps.Tracker == nil || deps.Counters == nil || deps.Detector == nil {
		panic("api: entitlements, tracker, counters and detector are required")
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.UpgradeURL == "" {
		cfg.UpgradeURL = gate.DefaultUpgradeURL
	}
	if cfg.VisitorCookie == "" {
		cfg.VisitorCookie = "sk_visitor"
	}

	a := &API{
		cfg:      cfg,
		svc:      deps.Entitlements,
		catalog:  deps.Entitlements.Catalog(),
		tracker:  deps.Tracker,
		counters: deps.Counters,
		detector: deps.Detector,
		locator:  deps.Locator,
		limiter:  deps.RateLimiter,
		health:   deps.Health,
		profile:  HeaderProfile,
		log:      log.With(logger.Component("api")),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRouter is a shorthand for New(cfg, deps, opts...).Handler().
func NewRouter(cfg Config, deps Deps, opts ...Option) http.Handler {
	return New(cfg, deps, opts...).Handler()
}

// Handler returns the routed API.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, a.accessLog, middleware.Recoverer)
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", httpserver.HealthHandler(a.log, a.health...))

	r.Group(func(r chi.Router) {
		r.Use(a.withProfile, a.withVisitor)

		r.Route("/api", func(r chi.Router) {
			r.Get("/plans", handler.Wrap(a.listPlans))
			r.Get("/plans/{plan}/downgrade", handler.Wrap(a.downgrade, pathBinder()))
			r.Get("/pricing/{plan}", handler.Wrap(a.pricing, pathBinder(), handler.WithBinders(binder.Query())))

			r.Get("/features/{path}", handler.Wrap(a.feature, pathBinder()))
			r.Get("/features/{path}/upgrade", handler.Wrap(a.upgrade, pathBinder()))
			r.With(a.rateLimit()).
				Post("/features/{path}/usage", handler.Wrap(a.trackUsage, pathBinder(), handler.WithBinders(binder.JSON(true))))

			r.Get("/usage", handler.Wrap(a.allUsage))
			r.With(a.rateLimit()).
				Put("/usage/{path}", handler.Wrap(a.reportUsage, pathBinder(), handler.WithBinders(binder.JSON(false))))

			r.Get("/currency", handler.Wrap(a.getCurrency))
			r.Put("/currency", handler.Wrap(a.selectCurrency, handler.WithBinders(binder.JSON(false))))

			r.With(a.rateLimit(), a.requireFeature(entitlement.PathQRCodes)).
				Get("/surveys/{surveyID}/qrcode", handler.Wrap(a.surveyQRCode, pathBinder(), handler.WithBinders(binder.Query())))
		})

		r.Get("/app/integrations/api", handler.Wrap(a.integrationsPage))
	})

	return r
}

// rateLimit limits signed-in callers by user id and everyone else by client IP.
// Without a limiter it is a no-op.
func (a *API) rateLimit() func(http.Handler) http.Handler {
	if a.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(a.limiter, rateLimitKey, a.log)
}

func rateLimitKey(r *http.Request) string {
	if p := ProfileFromContext(r.Context()); p.Authenticated {
		return "user:" + p.UserID.String()
	}
	if ip := geo.ClientIP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}

func pathBinder() handler.WrapOption {
	return handler.WithBinders(binder.Path(chi.URLParam))
}

func (a *API) requireFeature(path entitlement.Path) func(http.Handler) http.Handler {
	return gate.RequireFeature(path,
		gate.WithCatalog(a.catalog),
		gate.WithUpgradeURL(a.cfg.UpgradeURL),
		gate.WithDeniedHook(a.logDenied),
	)
}

func (a *API) logDenied(r *http.Request, plan entitlement.Plan, path entitlement.Path) {
	a.log.InfoContext(r.Context(), "feature access denied",
		logger.Plan(plan.String()),
		logger.Feature(path.String()),
	)
}
