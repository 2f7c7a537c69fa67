package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/handler"
	"github.com/dmitrymomot/authbridge/pkg/binder"
)

type greetRequest struct {
	Name string `json:"name"`
}

func greet(_ handler.Context, req greetRequest) handler.Response {
	return handler.JSON(map[string]string{"hello": req.Name})
}

func post(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(greet, handler.WithBinder[handler.Context, greetRequest](binder.JSON()))
		rec := httptest.NewRecorder()
		h(rec, post(`{"name":"jane"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"hello":"jane"}`, rec.Body.String())
	})

	t.Run("bind error goes to error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(greet,
			handler.WithBinder[handler.Context, greetRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusBadRequest)
			}),
		)
		rec := httptest.NewRecorder()
		h(rec, post(`{"name":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.ErrorIs(t, got, binder.ErrFailedToParseJSON)
	})

	t.Run("not applicable binder is skipped", func(t *testing.T) {
		t.Parallel()
		skip := func(*http.Request, any) error { return binder.ErrBinderNotApplicable }
		h := handler.Wrap(greet, handler.WithBinders[handler.Context, greetRequest](skip, binder.JSON()))
		rec := httptest.NewRecorder()
		h(rec, post(`{"name":"bob"}`))

		assert.JSONEq(t, `{"hello":"bob"}`, rec.Body.String())
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, greetRequest) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h(rec, post(`{}`))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		failing := func(*http.Request, any) error { return errors.Join(handler.ErrBadRequest, errors.New("boom")) }
		h := handler.Wrap(greet, handler.WithBinder[handler.Context, greetRequest](failing))
		rec := httptest.NewRecorder()
		h(rec, post(`{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad_request")
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		trace := func(name string) handler.Decorator[handler.Context, greetRequest] {
			return func(next handler.HandlerFunc[handler.Context, greetRequest]) handler.HandlerFunc[handler.Context, greetRequest] {
				return func(ctx handler.Context, req greetRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(greet, handler.WithDecorators(trace("outer"), trace("inner")))
		h(httptest.NewRecorder(), post(`{}`))
		assert.Equal(t, []string{"outer", "inner"}, order)
	})
}

func TestResponses(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	rec := httptest.NewRecorder()
	require.NoError(t, handler.JSONWithStatus(map[string]bool{"ok": false}, http.StatusConflict).Render(rec, r))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/sign-in").Render(rec, r))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, r))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
