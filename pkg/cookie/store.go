package cookie

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/authbridge/pkg/authresult"
)

// ResponseStore is a request-scoped cookie store that writes onto an
// http.ResponseWriter through a Manager. It satisfies authresult.CookieStore.
type ResponseStore struct {
	m *Manager
	w http.ResponseWriter
}

// Store returns a ResponseStore bound to w.
func (m *Manager) Store(w http.ResponseWriter) *ResponseStore {
	return &ResponseStore{m: m, w: w}
}

// Set writes a cookie whose value is already decoded. The value is
// percent-encoded again for transmission. Attributes from the directive
// are applied as given; an empty path or domain and a default SameSite
// fall back to the manager defaults.
func (s *ResponseStore) Set(name, value string, attrs authresult.Attributes) error {
	opts := []Option{
		WithSecure(attrs.Secure),
		WithHTTPOnly(attrs.HttpOnly),
		WithMaxAge(attrs.MaxAge),
		WithExpires(attrs.Expires),
	}
	if attrs.Path != "" {
		opts = append(opts, WithPath(attrs.Path))
	}
	if attrs.Domain != "" {
		opts = append(opts, WithDomain(attrs.Domain))
	}
	if attrs.SameSite != 0 && attrs.SameSite != http.SameSiteDefaultMode {
		opts = append(opts, WithSameSite(attrs.SameSite))
	}
	return s.m.Set(s.w, name, url.PathEscape(value), opts...)
}
