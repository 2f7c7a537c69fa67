package authresult

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// Attributes are the cookie attributes of a Set-Cookie directive. MaxAge
// follows net/http: 0 means unset, a negative value means delete now.
type Attributes struct {
	Domain   string
	Path     string
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
	MaxAge   int
	Expires  time.Time
}

// Directive is one parsed Set-Cookie header value. Value is kept exactly as
// transmitted; DecodedValue returns the form written to a local store.
type Directive struct {
	Name       string
	Value      string
	Attributes Attributes
}

// DecodedValue percent-decodes the cookie value.
func (d Directive) DecodedValue() (string, error) {
	v, err := url.PathUnescape(d.Value)
	if err != nil {
		return "", errors.Join(ErrDecodeValue, err)
	}
	return v, nil
}

// CookieStore is a request-scoped cookie jar that accepts cookies with
// attributes.
type CookieStore interface {
	Set(name, value string, attrs Attributes) error
}

// ParseDirective parses a single Set-Cookie value.
func ParseDirective(raw string) (Directive, error) {
	c, err := http.ParseSetCookie(strings.TrimSpace(raw))
	if err != nil {
		return Directive{}, errors.Join(ErrInvalidDirective, err)
	}
	return Directive{
		Name:  c.Name,
		Value: c.Value,
		Attributes: Attributes{
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
			MaxAge:   c.MaxAge,
			Expires:  c.Expires,
		},
	}, nil
}

// ParseDirectives parses a Set-Cookie value that may hold several
// comma-joined cookies. Parts that fail to parse are returned as errors
// alongside the cookies that did.
func ParseDirectives(raw string) ([]Directive, []error) {
	var (
		out  []Directive
		errs []error
	)
	for _, part := range SplitSetCookie(raw) {
		d, err := ParseDirective(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, d)
	}
	return out, errs
}

// SplitSetCookie splits a comma-joined Set-Cookie value into individual
// cookies. A comma starts a new cookie only when it is followed by a
// name=value pair, so the comma inside an Expires date is kept.
func SplitSetCookie(raw string) []string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(raw); i++ {
		if raw[i] != ',' || !startsCookie(raw[i+1:]) {
			continue
		}
		if part := strings.TrimSpace(raw[start:i]); part != "" {
			parts = append(parts, part)
		}
		start = i + 1
	}
	if part := strings.TrimSpace(raw[start:]); part != "" {
		parts = append(parts, part)
	}
	return parts
}

func startsCookie(s string) bool {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, "=;,")
	return end > 0 && s[end] == '='
}

// Persist writes every cookie described by rawCookies into store. Each
// cookie is handled independently: parse, decode and store failures are
// logged with the cookie name and skipped. It returns the number of cookies
// stored.
func (n *Normalizer) Persist(ctx context.Context, store CookieStore, rawCookies []string) int {
	if store == nil {
		if len(rawCookies) > 0 {
			n.logger.ErrorContext(ctx, "cannot persist auth cookies",
				logger.Error(ErrNilStore),
				logger.Component("authresult"),
			)
		}
		return 0
	}

	stored := 0
	for _, raw := range rawCookies {
		directives, errs := ParseDirectives(raw)
		for _, err := range errs {
			n.logger.ErrorContext(ctx, "failed to parse auth cookie",
				logger.Cookie(cookieName(raw)),
				logger.Error(err),
				logger.Component("authresult"),
			)
		}
		for _, d := range directives {
			if err := n.persistOne(store, d); err != nil {
				n.logger.ErrorContext(ctx, "failed to persist auth cookie",
					logger.Cookie(d.Name),
					logger.Error(err),
					logger.Component("authresult"),
				)
				continue
			}
			stored++
		}
	}
	return stored
}

func (n *Normalizer) persistOne(store CookieStore, d Directive) error {
	value, err := d.DecodedValue()
	if err != nil {
		return err
	}
	return store.Set(d.Name, value, d.Attributes)
}

// cookieName returns the text before the first '=' of a raw directive, for
// log output when the directive itself cannot be parsed.
func cookieName(raw string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(raw), "=")
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
