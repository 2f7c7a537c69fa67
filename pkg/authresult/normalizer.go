package authresult

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// DefaultMaxBodySize bounds how much of an upstream body is buffered (1MB).
const DefaultMaxBodySize int64 = 1 << 20

// AuthResult is the raw outcome of an authentication call. Body is a
// *WireResponse, an *http.Response, a structured payload or nil. Headers is
// any headers carrier understood by Classify.
type AuthResult struct {
	Body    any
	Headers any
}

// Normalizer turns auth results into canonical responses and persists their
// cookies. It holds no per-request state.
type Normalizer struct {
	logger      *slog.Logger
	maxBodySize int64
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for recovered failures.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithMaxBodySize limits how many bytes of a wire body are read.
func WithMaxBodySize(size int64) Option {
	return func(n *Normalizer) {
		if size > 0 {
			n.maxBodySize = size
		}
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Cookies returns the deduplicated Set-Cookie values of result: those on its
// headers carrier first, then those on the wire body's own headers.
func (n *Normalizer) Cookies(result AuthResult) []string {
	carried := SetCookies(Classify(result.Headers))
	if wire := wireBody(result.Body); wire != nil {
		return Unique(carried, SetCookies(FromWireHeaders(wire.Header())))
	}
	return carried
}

// Response builds the canonical response for result. It fails only when the
// wire body cannot be read.
func (n *Normalizer) Response(ctx context.Context, result AuthResult) (*Response, error) {
	wire := wireBody(result.Body)
	if wire == nil {
		return Build(result.Body, payloadStatus(result.Body), n.Cookies(result)), nil
	}

	cookies := n.Cookies(AuthResult{Body: wire, Headers: result.Headers})
	payload, err := n.Payload(ctx, wire)
	if err != nil {
		return nil, err
	}
	return Build(
		payload.Body,
		Status{Code: wire.StatusCode(), Text: wire.StatusText()},
		cookies,
		WithContentType(payload.ContentType),
	), nil
}

func wireBody(body any) *WireResponse {
	switch b := body.(type) {
	case *WireResponse:
		return b
	case *http.Response:
		if b != nil {
			return NewWireResponse(b)
		}
	}
	return nil
}

// payloadStatus reads an optional numeric "status" and string "statusText"
// from a structured payload. The default is 200.
func payloadStatus(body any) Status {
	status := Status{Code: http.StatusOK}
	m, ok := body.(map[string]any)
	if !ok {
		return status
	}
	switch code := m["status"].(type) {
	case int:
		status.Code = code
	case float64:
		if code == float64(int(code)) {
			status.Code = int(code)
		}
	}
	if text, ok := m["statusText"].(string); ok {
		status.Text = text
	}
	return status
}
