// Package authproxy is the HTTP client for the upstream email/password auth
// service.
//
// Each call forwards the inbound request headers (minus hop-by-hop ones),
// propagates the request id and returns an authresult.AuthResult whose body
// is the unread upstream response. Responses with a status of 400 or more
// come back as *authresult.APIError carrying the upstream status, decoded
// body and headers, so authresult.Failure can pass them through.
//
// A consecutive-failure circuit breaker guards the upstream. Transport
// errors and 5xx answers count as failures; client errors do not.
//
//	client, err := authproxy.New(cfg, authproxy.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	result, err := client.SignInEmail(ctx, authproxy.SignInRequest{
//		Email:    "jane@example.com",
//		Password: "secret",
//	}, r.Header)
package authproxy
