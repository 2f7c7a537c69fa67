package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are the proxy headers consulted, in order, before the
// TCP peer address.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver determines the originating client address of a request.
type Resolver struct {
	headers []string
}

// New returns a Resolver that trusts the given headers in order. With no
// headers DefaultHeaders are used; pass an empty slice through
// NewFromConfig to trust RemoteAddr only.
func New(headers ...string) *Resolver {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return &Resolver{headers: normalize(headers)}
}

// IP returns the normalized client IP, or an empty string when no valid
// address is found. Comma-separated headers such as X-Forwarded-For yield
// their first valid entry.
func (res *Resolver) IP(r *http.Request) string {
	for _, name := range res.headers {
		for _, value := range r.Header.Values(name) {
			for candidate := range strings.SplitSeq(value, ",") {
				if ip := parseIP(candidate); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved client IP in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

func normalize(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, http.CanonicalHeaderKey(h))
		}
	}
	return out
}
