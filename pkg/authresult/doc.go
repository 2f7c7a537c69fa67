// Package authresult normalizes the outcome of an authentication call into a
// single canonical HTTP response and propagates its cookies.
//
// An upstream auth operation may hand back a wire-level *http.Response, a
// structured payload, or both, with cookies attached through one of several
// header carrier shapes. The package handles this in four steps:
//
//   - Classify detects the carrier shape (wire headers, ordered map, record,
//     list of pairs, generic iterable) without relying on concrete types.
//   - SetCookies extracts every Set-Cookie value from a carrier, matching
//     the header name case-insensitively and never comma-joining values.
//   - Normalizer.Payload reads a wire body once and decodes JSON when the
//     content type says so, falling back to raw text.
//   - Build assembles the Response, replacing any existing Set-Cookie headers
//     with the deduplicated cookie list.
//
// Normalizer.Response runs the whole pipeline:
//
//	n := authresult.New(authresult.WithLogger(log))
//
//	resp, err := n.Response(ctx, authresult.AuthResult{
//		Body:    upstreamResp,
//		Headers: upstreamResp.Header,
//	})
//	if err != nil {
//		return authresult.Failure(err, "Sign in failed")
//	}
//	return resp // implements handler.Response
//
// Server-side actions that have no wire response persist the same cookies
// into a request-scoped CookieStore instead:
//
//	n.Persist(ctx, store, n.Cookies(result))
//
// Persist is best-effort per cookie: a malformed directive or a store
// rejection is logged with the cookie name and the remaining cookies are
// still written.
package authresult
