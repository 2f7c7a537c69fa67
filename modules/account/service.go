package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/authbridge/pkg/authproxy"
	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/cookie"
	"github.com/dmitrymomot/authbridge/pkg/events"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/ratelimiter"
)

// Failure messages returned to clients.
const (
	MsgSignInFailed  = "Sign in failed"
	MsgSignUpFailed  = "Sign up failed"
	MsgSignOutFailed = "Sign out failed"
	MsgRateLimited   = "Too many requests"
)

// Authenticator performs the email/password operations against the auth
// backend. *authproxy.Client implements it.
type Authenticator interface {
	SignInEmail(ctx context.Context, in authproxy.SignInRequest, h http.Header) (authresult.AuthResult, error)
	SignUpEmail(ctx context.Context, in authproxy.SignUpRequest, h http.Header) (authresult.AuthResult, error)
	SignOut(ctx context.Context, h http.Header) (authresult.AuthResult, error)
}

// Service serves the account routes and actions.
type Service struct {
	cfg        Config
	auth       Authenticator
	normalizer *authresult.Normalizer
	cookies    *cookie.Manager
	events     events.Dispatcher
	limiter    *ratelimiter.Limiter
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNormalizer sets the auth result normalizer.
func WithNormalizer(n *authresult.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithCookieManager sets the manager used to persist cookies from actions.
func WithCookieManager(m *cookie.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.cookies = m
		}
	}
}

// WithDispatcher sets the event dispatcher used after sign-up.
func WithDispatcher(d events.Dispatcher) Option {
	return func(s *Service) {
		if d != nil {
			s.events = d
		}
	}
}

// WithRateLimiter throttles the auth routes and actions per client IP.
// The IP is read from the context set by clientip.Resolver.Middleware.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service backed by auth.
func NewService(cfg Config, auth Authenticator, opts ...Option) *Service {
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "better-auth.session_token"
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/sign-in"
	}
	s := &Service{
		cfg:    cfg,
		auth:   auth,
		events: events.NoopDispatcher{},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalizer == nil {
		s.normalizer = authresult.New(authresult.WithLogger(s.logger))
	}
	if s.cookies == nil {
		s.cookies = cookie.New()
	}
	return s
}

// publishUserCreated dispatches the user-created event. Failures are
// logged and never returned.
func (s *Service) publishUserCreated(ctx context.Context, in authproxy.SignUpRequest) {
	err := s.events.Dispatch(ctx, events.New(events.UserCreated, events.UserCreatedData{
		Email:             in.Email,
		Name:              in.FullName,
		Country:           in.Country,
		InvestmentGoals:   in.InvestmentGoals,
		RiskTolerance:     in.RiskTolerance,
		PreferredIndustry: in.PreferredIndustry,
	}))
	switch {
	case err == nil:
	case errors.Is(err, events.ErrDispatcherDisabled):
		s.logger.WarnContext(ctx, "skipping event, dispatcher is not configured",
			logger.Event(events.UserCreated),
			logger.Component("account"),
		)
	default:
		s.logger.ErrorContext(ctx, "failed to dispatch event",
			logger.Event(events.UserCreated),
			logger.Email(in.Email),
			logger.Error(err),
			logger.Component("account"),
		)
	}
}

// redactHeaders flattens h for logging with the Cookie header hidden.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, values := range h {
		if http.CanonicalHeaderKey(k) == "Cookie" {
			out[k] = "[redacted]"
			continue
		}
		out[k] = strings.Join(values, ", ")
	}
	return out
}
