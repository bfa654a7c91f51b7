// Package redis connects to Redis with go-redis/v9.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := currency.NewRedisStore(client)
//	sink := usage.NewRedisStreamSink(client)
//
// Healthcheck wraps PING for readiness probes.
package redis
