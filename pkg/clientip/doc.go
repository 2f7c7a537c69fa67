// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// A Resolver walks its trusted headers in order (CF-Connecting-IP,
// X-Forwarded-For and X-Real-IP by default) and falls back to
// RemoteAddr. Only headers set by a proxy you control should be trusted.
//
//	res := clientip.NewFromConfig(cfg)
//	r.Use(res.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
