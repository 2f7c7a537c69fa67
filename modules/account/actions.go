package account

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/authbridge/handler"
	"github.com/dmitrymomot/authbridge/pkg/authproxy"
	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// ActionResult is the outcome of a server action. Error holds one of the
// fixed failure messages and never the underlying cause.
type ActionResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func failed(message string) ActionResult {
	return ActionResult{Error: message}
}

// SignInWithEmail signs the user in and writes the session cookies issued
// by the backend into store.
func (s *Service) SignInWithEmail(ctx context.Context, store authresult.CookieStore, h http.Header, in authproxy.SignInRequest) ActionResult {
	result, err := s.auth.SignInEmail(ctx, in, h)
	if err != nil {
		s.actionFailed(ctx, authproxy.OpSignIn, err)
		return failed(MsgSignInFailed)
	}
	data := s.complete(ctx, store, result)
	s.logger.InfoContext(ctx, "sign in completed successfully", logger.Email(in.Email))
	return ActionResult{Success: true, Data: data}
}

// SignUpWithEmail registers the user, writes the issued cookies into store
// and emits the user-created event.
func (s *Service) SignUpWithEmail(ctx context.Context, store authresult.CookieStore, h http.Header, in authproxy.SignUpRequest) ActionResult {
	result, err := s.auth.SignUpEmail(ctx, in, h)
	if err != nil {
		s.actionFailed(ctx, authproxy.OpSignUp, err)
		return failed(MsgSignUpFailed)
	}
	data := s.complete(ctx, store, result)
	s.publishUserCreated(ctx, in)
	s.logger.InfoContext(ctx, "sign up completed successfully", logger.Email(in.Email))
	return ActionResult{Success: true, Data: data}
}

// SignOut ends the session described by the cookies in h and applies the
// clearing cookies to store.
func (s *Service) SignOut(ctx context.Context, store authresult.CookieStore, h http.Header) ActionResult {
	result, err := s.auth.SignOut(ctx, h)
	if err != nil {
		s.actionFailed(ctx, authproxy.OpSignOut, err)
		return failed(MsgSignOutFailed)
	}
	s.complete(ctx, store, result)
	s.logger.InfoContext(ctx, "sign out completed successfully")
	return ActionResult{Success: true}
}

// complete persists the cookies of result and returns its decoded body.
// A body that cannot be read is logged and reported as nil.
func (s *Service) complete(ctx context.Context, store authresult.CookieStore, result authresult.AuthResult) any {
	s.normalizer.Persist(ctx, store, s.normalizer.Cookies(result))

	var wire *authresult.WireResponse
	switch b := result.Body.(type) {
	case *authresult.WireResponse:
		wire = b
	case *http.Response:
		wire = authresult.NewWireResponse(b)
	default:
		return result.Body
	}
	payload, err := s.normalizer.Payload(ctx, wire)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read auth response body",
			logger.Error(err),
			logger.Component("account"),
		)
		return nil
	}
	return payload.Body
}

func (s *Service) actionFailed(ctx context.Context, op string, err error) {
	s.logger.ErrorContext(ctx, "auth action failed",
		logger.Operation(op),
		logger.Error(err),
		logger.Component("account"),
	)
}

func (s *Service) signInAction(ctx handler.Context, req authproxy.SignInRequest) handler.Response {
	return handler.JSON(s.SignInWithEmail(ctx, s.cookies.Store(ctx.ResponseWriter()), ctx.Request().Header, req))
}

func (s *Service) signUpAction(ctx handler.Context, req authproxy.SignUpRequest) handler.Response {
	return handler.JSON(s.SignUpWithEmail(ctx, s.cookies.Store(ctx.ResponseWriter()), ctx.Request().Header, req))
}

func (s *Service) signOutAction(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(s.SignOut(ctx, s.cookies.Store(ctx.ResponseWriter()), ctx.Request().Header))
}

// actionFailureHandler renders a form that cannot be bound as a failed
// action.
func (s *Service) actionFailureHandler(message string) handler.ErrorHandler[handler.Context] {
	return func(ctx handler.Context, err error) {
		s.logger.WarnContext(ctx, "invalid action form", logger.Error(err), logger.Component("account"))
		if rerr := handler.JSON(failed(message)).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
			s.logger.ErrorContext(ctx, "failed to render response", logger.Error(rerr))
		}
	}
}
