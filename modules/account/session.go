package account

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authbridge/handler"
	"github.com/dmitrymomot/authbridge/pkg/logger"
)

const (
	securePrefix = "__Secure-"
	previewLen   = 12
)

// RequireSession redirects requests without a session cookie to the
// sign-in path. Only the presence of the cookie is checked; the session
// itself is validated by the auth backend.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value, ok := s.sessionCookie(r)
		if !ok {
			s.logger.InfoContext(r.Context(), "missing session cookie, redirecting to sign in",
				logger.Path(r.URL.Path),
				slog.String("search", searchOf(r)),
				logger.Component("account"),
			)
			if err := handler.RedirectWithCode(s.cfg.SignInPath, http.StatusTemporaryRedirect).Render(w, r); err != nil {
				s.logger.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
			}
			return
		}

		s.logger.InfoContext(r.Context(), "session cookie detected, allowing request",
			logger.Path(r.URL.Path),
			slog.Bool("has_value", value != ""),
			slog.String("value_preview", preview(value)),
			logger.Component("account"),
		)
		next.ServeHTTP(w, r)
	})
}

// sessionCookie looks up the session cookie under its plain and secure
// prefixed names.
func (s *Service) sessionCookie(r *http.Request) (string, bool) {
	for _, name := range []string{s.cfg.SessionCookieName, securePrefix + s.cfg.SessionCookieName} {
		if value, err := s.cookies.Get(r, name); err == nil {
			return value, true
		}
	}
	return "", false
}

func searchOf(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

func preview(v string) string {
	if len(v) > previewLen {
		return v[:previewLen]
	}
	return v
}
