package account

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authbridge/handler"
	"github.com/dmitrymomot/authbridge/pkg/authproxy"
	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/binder"
	"github.com/dmitrymomot/authbridge/pkg/clientip"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/ratelimiter"
)

// Router mounts the JSON auth routes and the form actions, throttled when
// the service has a rate limiter:
//
//	POST /api/auth/sign-in
//	POST /api/auth/sign-up
//	POST /api/auth/sign-out
//	POST /actions/sign-in
//	POST /actions/sign-up
//	POST /actions/sign-out
func Router(s *Service) chi.Router {
	r := chi.NewRouter()
	if s.limiter != nil {
		r.Use(s.throttle())
	}

	r.Route("/api/auth", func(api chi.Router) {
		api.Post("/sign-in", handler.Wrap(s.signIn,
			handler.WithBinder[handler.Context, authproxy.SignInRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, authproxy.SignInRequest](s.failureHandler(authproxy.OpSignIn, MsgSignInFailed)),
		))
		api.Post("/sign-up", handler.Wrap(s.signUp,
			handler.WithBinder[handler.Context, authproxy.SignUpRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, authproxy.SignUpRequest](s.failureHandler(authproxy.OpSignUp, MsgSignUpFailed)),
		))
		api.Post("/sign-out", handler.Wrap(s.signOut,
			handler.WithErrorHandler[handler.Context, struct{}](s.failureHandler(authproxy.OpSignOut, MsgSignOutFailed)),
		))
	})

	r.Route("/actions", func(actions chi.Router) {
		actions.Post("/sign-in", handler.Wrap(s.signInAction,
			handler.WithBinder[handler.Context, authproxy.SignInRequest](binder.Form()),
			handler.WithErrorHandler[handler.Context, authproxy.SignInRequest](s.actionFailureHandler(MsgSignInFailed)),
		))
		actions.Post("/sign-up", handler.Wrap(s.signUpAction,
			handler.WithBinder[handler.Context, authproxy.SignUpRequest](binder.Form()),
			handler.WithErrorHandler[handler.Context, authproxy.SignUpRequest](s.actionFailureHandler(MsgSignUpFailed)),
		))
		actions.Post("/sign-out", handler.Wrap(s.signOutAction))
	})

	return r
}

func (s *Service) signIn(ctx handler.Context, req authproxy.SignInRequest) handler.Response {
	h := ctx.Request().Header
	s.logger.InfoContext(ctx, "sign in request received", logger.Email(req.Email))
	s.logger.DebugContext(ctx, "sign in request headers", logger.Group("headers", headerAttrs(h)...))

	result, err := s.auth.SignInEmail(ctx, req, h)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignIn, err, MsgSignInFailed)
	}
	resp, err := s.normalizer.Response(ctx, result)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignIn, err, MsgSignInFailed)
	}
	s.logger.InfoContext(ctx, "sign in successful", logger.Email(req.Email), logger.Status(resp.Status()))
	return resp
}

func (s *Service) signUp(ctx handler.Context, req authproxy.SignUpRequest) handler.Response {
	s.logger.InfoContext(ctx, "sign up request received", logger.Email(req.Email))

	result, err := s.auth.SignUpEmail(ctx, req, ctx.Request().Header)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignUp, err, MsgSignUpFailed)
	}
	resp, err := s.normalizer.Response(ctx, result)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignUp, err, MsgSignUpFailed)
	}
	if resp.Status() >= 200 && resp.Status() < 300 {
		s.publishUserCreated(ctx, req)
	}
	s.logger.InfoContext(ctx, "sign up successful", logger.Email(req.Email), logger.Status(resp.Status()))
	return resp
}

func (s *Service) signOut(ctx handler.Context, _ struct{}) handler.Response {
	result, err := s.auth.SignOut(ctx, ctx.Request().Header)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignOut, err, MsgSignOutFailed)
	}
	resp, err := s.normalizer.Response(ctx, result)
	if err != nil {
		return s.fail(ctx, authproxy.OpSignOut, err, MsgSignOutFailed)
	}
	s.logger.InfoContext(ctx, "sign out successful", logger.Status(resp.Status()))
	return resp
}

func (s *Service) fail(ctx handler.Context, op string, err error, message string) *authresult.Response {
	s.logger.ErrorContext(ctx, "auth route failed",
		logger.Operation(op),
		logger.Error(err),
		logger.Component("account"),
	)
	return authresult.Failure(err, message)
}

// failureHandler renders bind and render errors as the operation failure.
func (s *Service) failureHandler(op, message string) handler.ErrorHandler[handler.Context] {
	return func(ctx handler.Context, err error) {
		resp := s.fail(ctx, op, err, message)
		if rerr := resp.Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
			s.logger.ErrorContext(ctx, "failed to render response", logger.Error(rerr))
		}
	}
}

// throttle limits requests per client IP and answers throttled ones with
// a JSON error.
func (s *Service) throttle() func(http.Handler) http.Handler {
	return ratelimiter.Middleware(s.limiter,
		func(r *http.Request) string { return clientip.FromContext(r.Context()) },
		ratelimiter.WithLogger(s.logger),
		ratelimiter.WithLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := authresult.Build(map[string]string{"error": MsgRateLimited}, authresult.Status{Code: http.StatusTooManyRequests}, nil)
			if err := resp.Render(w, r); err != nil {
				s.logger.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
			}
		})),
	)
}

func headerAttrs(h http.Header) []slog.Attr {
	redacted := redactHeaders(h)
	attrs := make([]slog.Attr, 0, len(redacted))
	for _, k := range slices.Sorted(maps.Keys(redacted)) {
		attrs = append(attrs, slog.String(k, redacted[k]))
	}
	return attrs
}
