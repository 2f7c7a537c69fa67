package authresult_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/logger"
)

func wireResponse(status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{"json object", "application/json", `{"user":{"id":"u1"}}`, map[string]any{"user": map[string]any{"id": "u1"}}},
		{"json with charset", "application/json; charset=utf-8", `[1,2]`, []any{float64(1), float64(2)}},
		{"invalid json falls back to text", "application/json", "not json", "not json"},
		{"plain text", "text/plain", "hello", "hello"},
		{"no content type", "", `{"a":1}`, `{"a":1}`},
		{"empty body", "application/json", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := authresult.New()
			p, err := n.Payload(context.Background(), authresult.NewWireResponse(wireResponse(http.StatusOK, tt.contentType, tt.body)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Body)
			assert.Equal(t, tt.contentType, p.ContentType)
		})
	}
}

func TestPayload_DecodeFailureIsLogged(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	n := authresult.New(authresult.WithLogger(logger.New(logger.WithOutput(buf))))

	p, err := n.Payload(context.Background(), authresult.NewWireResponse(wireResponse(http.StatusOK, "application/json", "not json")))
	require.NoError(t, err)
	assert.Equal(t, "not json", p.Body)
	assert.Contains(t, buf.String(), "response body is not valid json")
}

func TestPayload_ReadOnce(t *testing.T) {
	t.Parallel()

	n := authresult.New()
	wire := authresult.NewWireResponse(wireResponse(http.StatusOK, "text/plain", "hello"))

	_, err := n.Payload(context.Background(), wire)
	require.NoError(t, err)
	assert.True(t, wire.Consumed())

	_, err = n.Payload(context.Background(), wire)
	assert.ErrorIs(t, err, authresult.ErrBodyConsumed)
}

func TestPayload_Limits(t *testing.T) {
	t.Parallel()

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		n := authresult.New(authresult.WithMaxBodySize(4))
		_, err := n.Payload(context.Background(), authresult.NewWireResponse(wireResponse(http.StatusOK, "text/plain", "hello")))
		assert.ErrorIs(t, err, authresult.ErrBodyTooLarge)
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		resp := wireResponse(http.StatusOK, "text/plain", "")
		resp.Body = io.NopCloser(failingReader{})
		_, err := authresult.New().Payload(context.Background(), authresult.NewWireResponse(resp))
		assert.ErrorIs(t, err, authresult.ErrReadBody)
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		resp := wireResponse(http.StatusNoContent, "", "")
		resp.Body = http.NoBody
		p, err := authresult.New().Payload(context.Background(), authresult.NewWireResponse(resp))
		require.NoError(t, err)
		assert.Nil(t, p.Body)
	})
}

func TestWireResponse_StatusText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		code   int
		want   string
	}{
		{"200 OK", 200, "OK"},
		{"201 Created Yay", 201, "Created Yay"},
		{"Unauthorized", 401, "Unauthorized"},
		{"", 404, "Not Found"},
		{"418", 418, "I'm a teapot"},
	}
	for _, tt := range tests {
		w := authresult.NewWireResponse(&http.Response{StatusCode: tt.code, Status: tt.status})
		assert.Equal(t, tt.want, w.StatusText(), tt.status)
	}

	assert.Equal(t, http.StatusOK, authresult.NewWireResponse(nil).StatusCode())
}
