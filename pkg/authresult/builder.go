package authresult

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Status is an HTTP status code with its reason phrase.
type Status struct {
	Code int
	Text string
}

// Response is the canonical outbound response produced from an auth result.
// It is immutable once built and renders itself onto an http.ResponseWriter.
type Response struct {
	status     int
	statusText string
	header     http.Header
	body       []byte
	cookies    []string
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	header      http.Header
	contentType string
}

// WithHeaders sets the base headers of the response. The map is copied
// with every key in canonical form; values of keys that differ only in
// case are merged in sorted key order.
func WithHeaders(h http.Header) BuildOption {
	return func(c *buildConfig) {
		if h == nil {
			return
		}
		c.header = make(http.Header, len(h))
		for _, k := range slices.Sorted(maps.Keys(h)) {
			for _, v := range h[k] {
				c.header.Add(k, v)
			}
		}
	}
}

// WithContentType sets the content type used when the base headers carry
// none.
func WithContentType(contentType string) BuildOption {
	return func(c *buildConfig) {
		c.contentType = strings.TrimSpace(contentType)
	}
}

// Build assembles a Response from body, status and cookies.
//
// Structured and nil bodies are encoded as JSON, strings and byte slices
// are written as-is. Any Set-Cookie value already present in the base
// headers is replaced by cookies, each emitted as its own header after
// exact-value deduplication.
func Build(body any, status Status, cookies []string, opts ...BuildOption) *Response {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	header := cfg.header
	if header == nil {
		header = http.Header{}
	}

	code := normalizeStatus(status.Code)
	raw, isText := encodeBody(body)
	if !bodyAllowed(code) {
		raw = nil
	} else if header.Get("Content-Type") == "" {
		switch {
		case cfg.contentType != "":
			header.Set("Content-Type", cfg.contentType)
		case isText:
			header.Set("Content-Type", contentTypeText)
		default:
			header.Set("Content-Type", contentTypeJSON)
		}
	}

	deleteSetCookie(header)
	unique := Unique(cookies)
	for _, c := range unique {
		header.Add(HeaderSetCookie, c)
	}

	text := status.Text
	if text == "" {
		text = http.StatusText(code)
	}

	return &Response{
		status:     code,
		statusText: text,
		header:     header,
		body:       raw,
		cookies:    unique,
	}
}

// Status returns the HTTP status code.
func (r *Response) Status() int { return r.status }

// StatusText returns the reason phrase. net/http always writes the standard
// phrase on the wire; the value is kept for callers that surface it.
func (r *Response) StatusText() string { return r.statusText }

// ContentType returns the Content-Type header value.
func (r *Response) ContentType() string { return r.header.Get("Content-Type") }

// Body returns a copy of the serialized body.
func (r *Response) Body() []byte { return slices.Clone(r.body) }

// Cookies returns a copy of the Set-Cookie values in emission order.
func (r *Response) Cookies() []string { return slices.Clone(r.cookies) }

// Header returns a copy of the final header set.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Render writes the response. Set-Cookie values already present on w are
// dropped first.
func (r *Response) Render(w http.ResponseWriter, _ *http.Request) error {
	dst := w.Header()
	deleteSetCookie(dst)
	for k, values := range r.header {
		if isSetCookie(k) {
			continue
		}
		dst[k] = slices.Clone(values)
	}
	for _, c := range r.cookies {
		dst.Add(HeaderSetCookie, c)
	}
	w.WriteHeader(r.status)
	if len(r.body) == 0 || !bodyAllowed(r.status) {
		return nil
	}
	_, err := w.Write(r.body)
	return err
}

// encodeBody serializes body and reports whether it is plain text.
func encodeBody(body any) ([]byte, bool) {
	switch b := body.(type) {
	case nil:
		return []byte("null"), false
	case string:
		return []byte(b), true
	case []byte:
		return slices.Clone(b), true
	case json.RawMessage:
		if len(b) == 0 {
			return []byte("null"), false
		}
		return slices.Clone(b), false
	}
	data, err := json.Marshal(body)
	if err != nil {
		return []byte("null"), false
	}
	return data, false
}

func normalizeStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code < 100 || code > 599:
		return http.StatusInternalServerError
	}
	return code
}

// bodyAllowed reports whether a response with status may carry a body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

func deleteSetCookie(h http.Header) {
	for k := range h {
		if isSetCookie(k) {
			delete(h, k)
		}
	}
}
