// Package ratelimiter implements token bucket rate limiting with an
// in-memory store and net/http middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.New(store, cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimiter.Middleware(limiter, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}))
//
// Throttled requests get 429 with X-RateLimit-* and Retry-After headers.
package ratelimiter
