package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes and reads plain cookies with a shared set of defaults.
type Manager struct {
	defaults Options
}

// New returns a Manager. Defaults are Path "/", HttpOnly and SameSite=Lax,
// overridable with opts.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns a copy of the manager defaults.
func (m *Manager) Defaults() Options { return m.defaults }

// Set writes a cookie to w. The cookie is validated first: an invalid name,
// value or domain returns ErrInvalidCookie, and SameSite=None without Secure
// returns ErrInsecureSameSiteNone, because browsers drop such cookies.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Expires:  options.Expires,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}
	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, err)
	}
	if c.SameSite == http.SameSiteNoneMode && !c.Secure {
		return ErrInsecureSameSiteNone
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}
