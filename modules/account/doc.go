// Package account exposes email/password authentication over HTTP.
//
// The JSON routes under /api/auth forward to an Authenticator and answer
// with the normalized auth result: upstream status and body, plus one
// Set-Cookie header per cookie issued by the backend. The form actions
// under /actions persist those cookies through pkg/cookie instead and
// reply with an ActionResult. Failures never leak detail: callers see
// the upstream error as-is or one of the fixed Msg* messages.
//
// RequireSession gates pages on the presence of the session cookie.
//
//	svc := account.NewService(cfg, client,
//		account.WithNormalizer(normalizer),
//		account.WithCookieManager(cookies),
//		account.WithDispatcher(dispatcher),
//		account.WithLogger(log),
//	)
//	r.Mount("/", account.Router(svc))
//	r.With(svc.RequireSession).Get("/dashboard", dashboard)
package account
