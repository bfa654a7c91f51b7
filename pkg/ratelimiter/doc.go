// Package ratelimiter limits how often a caller may hit an endpoint.
//
// Each key gets its own token bucket (golang.org/x/time/rate) holding up to
// Config.Burst tokens and refilled at Config.Rate per second. Buckets live in
// an expiring LRU so idle callers do not accumulate memory.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
//		Rate:    5,
//		Burst:   20,
//		MaxKeys: 10000,
//		IdleTTL: 10 * time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, keyFunc, log)).Post("/api/features/{path}/usage", track)
//
// The middleware sets X-RateLimit-Limit and X-RateLimit-Remaining on every
// response it limits and Retry-After when the bucket is empty.
package ratelimiter
