package authresult

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// WireResponse is an already received HTTP response whose body can be read
// at most once.
type WireResponse struct {
	resp     *http.Response
	consumed bool
}

// NewWireResponse wraps resp. A nil resp is treated as an empty 200 response.
func NewWireResponse(resp *http.Response) *WireResponse {
	if resp == nil {
		resp = &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
	}
	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	return &WireResponse{resp: resp}
}

// StatusCode returns the numeric status of the response.
func (w *WireResponse) StatusCode() int { return w.resp.StatusCode }

// StatusText returns the reason phrase, falling back to the standard text
// for the status code.
func (w *WireResponse) StatusText() string {
	status := strings.TrimSpace(w.resp.Status)
	if code, text, ok := strings.Cut(status, " "); ok && code == strconv.Itoa(w.resp.StatusCode) {
		status = strings.TrimSpace(text)
	}
	if status == "" || status == strconv.Itoa(w.resp.StatusCode) {
		return http.StatusText(w.resp.StatusCode)
	}
	return status
}

// Header returns the response headers.
func (w *WireResponse) Header() http.Header { return w.resp.Header }

// Consumed reports whether the body has already been read.
func (w *WireResponse) Consumed() bool { return w.consumed }

// Payload is the decoded body of a wire response. Body is nil for an empty
// body, a decoded JSON value for JSON content, otherwise the raw text.
type Payload struct {
	Body        any
	ContentType string
}

// Payload reads the body of w exactly once and decodes it according to its
// content type. JSON that fails to decode is returned as raw text.
func (n *Normalizer) Payload(ctx context.Context, w *WireResponse) (Payload, error) {
	if w == nil {
		return Payload{}, nil
	}
	if w.consumed {
		return Payload{}, ErrBodyConsumed
	}
	w.consumed = true

	contentType := w.resp.Header.Get("Content-Type")
	if w.resp.Body == nil || w.resp.Body == http.NoBody {
		return Payload{ContentType: contentType}, nil
	}
	defer w.resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(w.resp.Body, n.maxBodySize+1))
	if err != nil {
		return Payload{}, errors.Join(ErrReadBody, err)
	}
	if int64(len(data)) > n.maxBodySize {
		return Payload{}, ErrBodyTooLarge
	}

	text := string(data)
	if text == "" {
		return Payload{ContentType: contentType}, nil
	}

	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return Payload{Body: text, ContentType: contentType}, nil
	}

	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		n.logger.WarnContext(ctx, "response body is not valid json, using raw text",
			logger.Error(err),
			slog.String("content_type", contentType),
			logger.Component("authresult"),
		)
		return Payload{Body: text, ContentType: contentType}, nil
	}
	return Payload{Body: body, ContentType: contentType}, nil
}
