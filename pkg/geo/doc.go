// Package geo resolves where a visitor is connecting from: the client IP
// behind proxies and CDNs, the CDN country header, and an ipapi.co lookup.
//
// Lookups are usually wrapped in a Cache so repeat visitors do not cost an
// external call:
//
//	locator := geo.NewCache(geo.NewIPAPI(cfg, nil), cfg.CacheSize, cfg.CacheTTL)
//	country, err := locator.RequestLocator(r)(ctx)
package geo
