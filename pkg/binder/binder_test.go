package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/binder"
)

type credentials struct {
	Email    string   `json:"email" form:"email"`
	Password string   `json:"password" form:"password"`
	Remember bool     `json:"rememberMe" form:"remember_me"`
	Age      *int     `json:"age,omitempty" form:"age"`
	Tags     []string `json:"tags,omitempty" form:"tags"`
	Internal string   `json:"-" form:"-"`
}

func jsonRequest(contentType, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()
	bind := binder.JSON()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var got credentials
		err := bind(jsonRequest("application/json; charset=utf-8", `{"email":"jane@example.com","password":" s3cret ","rememberMe":true}`), &got)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, " s3cret ", got.Password, "password must not be altered")
		assert.True(t, got.Remember)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"wrong media type", "text/plain", `{}`, binder.ErrUnsupportedMediaType},
		{"empty body", "application/json", ``, binder.ErrFailedToParseJSON},
		{"malformed", "application/json", `{"email":`, binder.ErrFailedToParseJSON},
		{"type mismatch", "application/json", `{"email":42}`, binder.ErrFailedToParseJSON},
		{"trailing data", "application/json", `{"email":"a"} {"email":"b"}`, binder.ErrFailedToParseJSON},
		{"too large", "application/json", `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrFailedToParseJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got credentials
			assert.ErrorIs(t, bind(jsonRequest(tt.contentType, tt.body), &got), tt.wantErr)
		})
	}
}

func TestForm(t *testing.T) {
	t.Parallel()
	bind := binder.Form()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"email":       {"jane@example.com"},
			"password":    {"s3cret"},
			"remember_me": {"on"},
			"age":         {"30"},
			"tags":        {"a,b", "c"},
			"Internal":    {"ignored"},
		}
		r := jsonRequest("application/x-www-form-urlencoded", values.Encode())

		var got credentials
		require.NoError(t, bind(r, &got))
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "s3cret", got.Password)
		assert.True(t, got.Remember)
		require.NotNil(t, got.Age)
		assert.Equal(t, 30, *got.Age)
		assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
		assert.Empty(t, got.Internal)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("email", "jane@example.com"))
		require.NoError(t, mw.Close())

		var got credentials
		require.NoError(t, bind(jsonRequest(mw.FormDataContentType(), buf.String()), &got))
		assert.Equal(t, "jane@example.com", got.Email)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		var got credentials
		err := bind(jsonRequest("application/x-www-form-urlencoded", "age=abc"), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		var got credentials
		assert.ErrorIs(t, bind(jsonRequest("application/json", "{}"), &got), binder.ErrUnsupportedMediaType)
		assert.ErrorIs(t, bind(jsonRequest("", ""), &got), binder.ErrMissingContentType)
	})

	t.Run("non struct target", func(t *testing.T) {
		t.Parallel()
		var s string
		err := bind(jsonRequest("application/x-www-form-urlencoded", "a=b"), &s)
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})
}
