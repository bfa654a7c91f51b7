// Package pg connects to the PostgreSQL analytics store.
//
// Connect builds a pgx pool from Config and retries the first ping with
// exponential backoff (github.com/sethvargo/go-retry). Migrate applies the
// embedded goose migrations that create the analytics table written by
// usage.PostgresSink:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	tracker := usage.NewTracker(usage.NewPostgresSink(pool))
package pg
