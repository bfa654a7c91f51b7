package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	opensearchgo "github.com/opensearch-project/opensearch-go/v2"
	goredis "github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/surveyguy/surveykit/pkg/config"
	"github.com/surveyguy/surveykit/pkg/currency"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/geo"
	"github.com/surveyguy/surveykit/pkg/httpserver"
	"github.com/surveyguy/surveykit/pkg/logger"
	"github.com/surveyguy/surveykit/pkg/mongo"
	"github.com/surveyguy/surveykit/pkg/opensearch"
	"github.com/surveyguy/surveykit/pkg/pg"
	"github.com/surveyguy/surveykit/pkg/ratelimiter"
	"github.com/surveyguy/surveykit/pkg/redis"
	"github.com/surveyguy/surveykit/pkg/usage"
	"github.com/surveyguy/surveykit/svc/api"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"surveykit"`
	EntitlementsFile string        `env:"ENTITLEMENTS_FILE"`
	UsageSink        string        `env:"USAGE_SINK" envDefault:"auto"`
	UsageTimeout     time.Duration `env:"USAGE_TIMEOUT" envDefault:"10s"`
	UsageStream      string        `env:"USAGE_STREAM" envDefault:"analytics:usage"`
	UsageStreamLen   int64         `env:"USAGE_STREAM_MAX_LEN" envDefault:"100000"`
	PreferenceTTL    time.Duration `env:"CURRENCY_PREFERENCE_TTL" envDefault:"8760h"`
	GeoLookup        bool          `env:"GEO_LOOKUP" envDefault:"true"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg   appConfig
		httpCfg  httpserver.Config
		apiCfg   api.Config
		pgCfg    pg.Config
		redisCfg redis.Config
		mongoCfg mongo.Config
		osCfg    opensearch.Config
		geoCfg   geo.IPAPIConfig
		rlCfg    ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&apiCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&mongoCfg) },
		func() error { return config.Load(&osCfg) },
		func() error { return config.Load(&geoCfg) },
		func() error { return config.Load(&rlCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.ServiceName),
		logger.WithContextExtractors(
			api.RequestIDLogExtractor(),
			api.UserIDLogExtractor(),
			api.PlanLogExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		hooks  []httpserver.Option
		checks []httpserver.Check
	)

	var st stores
	if pgCfg.Enabled() {
		p, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		st.pool = p
		if err := pg.Migrate(ctx, p, pgCfg, log); err != nil {
			p.Close()
			return err
		}
		checks = append(checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(p)})
		hooks = append(hooks, httpserver.WithShutdownHook("postgres", func(context.Context) error {
			p.Close()
			return nil
		}))
	}

	if redisCfg.Enabled() {
		c, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		st.rdb = c
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(c)})
		hooks = append(hooks, httpserver.WithShutdownHook("redis", func(context.Context) error {
			return c.Close()
		}))
	}

	if mongoCfg.Enabled() {
		c, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return err
		}
		st.mdb = c
		checks = append(checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(c)})
		hooks = append(hooks, httpserver.WithShutdownHook("mongo", c.Disconnect))
	}

	if osCfg.Enabled() {
		c, err := opensearch.Connect(ctx, osCfg)
		if err != nil {
			return err
		}
		st.search = c
		checks = append(checks, httpserver.Check{Name: "opensearch", Probe: opensearch.Healthcheck(c)})
	}

	sink, err := newSink(ctx, appCfg, mongoCfg, osCfg, st, log)
	if err != nil {
		return err
	}
	tracker := usage.NewTracker(sink, usage.WithLogger(log), usage.WithTimeout(appCfg.UsageTimeout))

	var (
		counters usage.CounterStore       = usage.NewMemoryCounters()
		prefs    currency.PreferenceStore = currency.NewMemoryStore()
	)
	if st.rdb != nil {
		counters = usage.NewRedisCounters(st.rdb)
		prefs = currency.NewRedisStore(st.rdb, appCfg.PreferenceTTL)
	}

	src := entitlement.DefaultSource()
	if appCfg.EntitlementsFile != "" {
		src = entitlement.NewFileSource(appCfg.EntitlementsFile)
	}
	svc, err := newEntitlements(ctx, src, counters)
	if err != nil {
		return err
	}
	if drift := svc.Catalog().SuggestionDrift(); len(drift) > 0 {
		log.WarnContext(ctx, "upgrade suggestions reference paths missing from every plan",
			slog.Any("paths", drift))
	}

	var locator api.Locator
	if appCfg.GeoLookup {
		locator = geo.NewCache(geo.NewIPAPI(geoCfg, nil), geoCfg.CacheSize, geoCfg.CacheTTL).RequestLocator
	}

	limiter, err := ratelimiter.NewBucket(rlCfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(apiCfg, api.Deps{
		Entitlements: svc,
		Tracker:      tracker,
		Counters:     counters,
		Detector:     currency.NewDetector(prefs, log),
		Locator:      locator,
		RateLimiter:  limiter,
		Health:       checks,
		Logger:       log,
	})

	// Hooks run in reverse, so the tracker drains before the stores close.
	opts := append([]httpserver.Option{httpserver.WithLogger(log)}, hooks...)
	opts = append(opts, httpserver.WithShutdownHook("usage tracker", tracker.Close))

	log.InfoContext(ctx, "starting server",
		slog.String("addr", httpCfg.Addr),
		slog.String("usage_sink", fmt.Sprintf("%T", sink)),
	)
	return httpserver.New(httpCfg, opts...).Run(ctx, router)
}

// stores holds the optional backing stores; nil fields are not configured.
type stores struct {
	pool   *pgxpool.Pool
	rdb    *goredis.Client
	mdb    *mongodrv.Client
	search *opensearchgo.Client
}

// newEntitlements loads the catalog once and registers a store-backed
// counter for each quota it defines.
func newEntitlements(ctx context.Context, src entitlement.Source, counters usage.CounterStore) (entitlement.Service, error) {
	registry := entitlement.NewRegistry()
	svc, err := entitlement.NewService(ctx, src, registry, nil)
	if err != nil {
		return nil, err
	}
	usage.RegisterCounters(registry, counters, svc.Catalog())
	return svc, nil
}

// newSink picks the usage sink. "auto" prefers Postgres, then MongoDB, then
// OpenSearch, then a Redis stream, and falls back to the application log.
func newSink(
	ctx context.Context,
	cfg appConfig,
	mongoCfg mongo.Config,
	osCfg opensearch.Config,
	st stores,
	log *slog.Logger,
) (usage.Sink, error) {
	kind := strings.ToLower(cfg.UsageSink)
	if kind == "auto" {
		switch {
		case st.pool != nil:
			kind = "postgres"
		case st.mdb != nil:
			kind = "mongo"
		case st.search != nil:
			kind = "opensearch"
		case st.rdb != nil:
			kind = "redis"
		default:
			kind = "log"
		}
	}

	switch kind {
	case "postgres":
		if st.pool == nil {
			return nil, errors.Join(pg.ErrEmptyConnectionString, errors.New("usage sink postgres needs DATABASE_URL"))
		}
		return usage.NewPostgresSink(st.pool), nil
	case "mongo":
		if st.mdb == nil {
			return nil, errors.Join(mongo.ErrEmptyConnectionURL, errors.New("usage sink mongo needs MONGODB_URL"))
		}
		coll, err := mongo.UsageCollection(ctx, st.mdb, mongoCfg)
		if err != nil {
			return nil, err
		}
		return usage.NewMongoSink(coll), nil
	case "opensearch":
		if st.search == nil {
			return nil, errors.Join(opensearch.ErrNoAddresses, errors.New("usage sink opensearch needs OPENSEARCH_ADDRESSES"))
		}
		index, err := opensearch.UsageIndex(ctx, st.search, osCfg)
		if err != nil {
			return nil, err
		}
		return usage.NewOpenSearchSink(st.search, index), nil
	case "redis":
		if st.rdb == nil {
			return nil, errors.Join(redis.ErrEmptyConnectionURL, errors.New("usage sink redis needs REDIS_URL"))
		}
		return usage.NewRedisStreamSink(st.rdb, usage.WithStream(cfg.UsageStream), usage.WithMaxLen(cfg.UsageStreamLen)), nil
	case "log":
		return usage.NewLogSink(log), nil
	}
	return nil, fmt.Errorf("unknown usage sink %q", cfg.UsageSink)
}
