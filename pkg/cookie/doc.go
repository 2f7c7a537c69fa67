// Package cookie wraps net/http cookies with a Manager that applies shared
// defaults and validates every cookie before it is written.
//
// The Manager exposes Set, Get and Delete for plain cookies. Set rejects
// cookies that browsers would silently drop: invalid names, values or
// domains return ErrInvalidCookie, and SameSite=None without Secure returns
// ErrInsecureSameSiteNone.
//
// Store binds the Manager to a single http.ResponseWriter and returns a
// ResponseStore, which satisfies authresult.CookieStore. Server-side actions
// use it to replay cookies issued by the upstream auth service:
//
//	m := cookie.NewFromConfig(cfg)
//	n.Persist(ctx, m.Store(w), cookies)
//
// Config can be populated from environment variables with pkg/config:
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg)
package cookie
