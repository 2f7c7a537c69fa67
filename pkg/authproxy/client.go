package authproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/requestid"
)

// Operation names, used for endpoint paths and logging.
const (
	OpSignIn  = "sign_in"
	OpSignUp  = "sign_up"
	OpSignOut = "sign_out"
)

var endpoints = map[string]string{
	OpSignIn:  "/sign-in/email",
	OpSignUp:  "/sign-up/email",
	OpSignOut: "/sign-out",
}

// Headers that must not be forwarded to the upstream. Accept-Encoding is
// dropped so the transport negotiates and decodes compression itself.
var skipHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Host":                {},
	"Content-Length":      {},
	"Content-Type":        {},
	"Accept-Encoding":     {},
}

// SignInRequest is the body of an email sign-in.
type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignUpRequest carries the sign-up form. Only email, password and name are
// sent upstream; the profile fields feed the user-created event.
type SignUpRequest struct {
	Email             string `json:"email" form:"email"`
	Password          string `json:"password" form:"password"`
	FullName          string `json:"fullName" form:"fullName"`
	Country           string `json:"country" form:"country"`
	InvestmentGoals   string `json:"investmentGoals" form:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance" form:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry" form:"preferredIndustry"`
}

type signUpBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Client calls the upstream auth service.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	breaker    *Breaker
	logger     *slog.Logger
	maxErrBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithBreaker replaces the circuit breaker built from Config.
func WithBreaker(b *Breaker) Option {
	return func(cl *Client) {
		if b != nil {
			cl.breaker = b
		}
	}
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, errors.New("scheme must be http or https with a host"))
	}
	if cfg.BasePath != "" {
		base = base.JoinPath(cfg.BasePath)
	}

	httpClient := cleanhttp.DefaultPooledClient()
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	// Redirects are returned to the caller as-is.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	c := &Client{
		base:       base,
		httpClient: httpClient,
		breaker:    NewBreaker(cfg.BreakerFailures, cfg.BreakerRecovery),
		logger:     logger.Discard(),
		maxErrBody: cfg.MaxErrorBodySize,
	}
	if c.maxErrBody <= 0 {
		c.maxErrBody = 64 << 10
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Breaker returns the client circuit breaker.
func (c *Client) Breaker() *Breaker { return c.breaker }

// SignInEmail signs a user in with email and password.
func (c *Client) SignInEmail(ctx context.Context, in SignInRequest, h http.Header) (authresult.AuthResult, error) {
	return c.call(ctx, OpSignIn, in, h)
}

// SignUpEmail registers a new user.
func (c *Client) SignUpEmail(ctx context.Context, in SignUpRequest, h http.Header) (authresult.AuthResult, error) {
	return c.call(ctx, OpSignUp, signUpBody{Email: in.Email, Password: in.Password, Name: in.FullName}, h)
}

// SignOut ends the session identified by the cookies in h.
func (c *Client) SignOut(ctx context.Context, h http.Header) (authresult.AuthResult, error) {
	return c.call(ctx, OpSignOut, struct{}{}, h)
}

// call posts body to the endpoint of op. A response with status 400 or
// above is returned as *authresult.APIError; otherwise the response is
// handed back unread, and the caller owns its body.
func (c *Client) call(ctx context.Context, op string, body any, h http.Header) (authresult.AuthResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return authresult.AuthResult{}, errors.Join(ErrEncodeRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(endpoints[op]).String(), bytes.NewReader(payload))
	if err != nil {
		return authresult.AuthResult{}, errors.Join(ErrEncodeRequest, err)
	}
	req.Header = ForwardHeaders(h)
	req.Header.Set("Content-Type", "application/json")
	requestid.Propagate(ctx, req.Header)

	if !c.breaker.Allow() {
		return authresult.AuthResult{}, ErrCircuitOpen
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.breaker.Abandon()
		} else {
			c.breaker.Failure()
		}
		return authresult.AuthResult{}, errors.Join(ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.breaker.Failure()
	} else {
		c.breaker.Success()
	}

	c.logger.DebugContext(ctx, "auth upstream call",
		logger.Operation(op),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
		logger.Component("authproxy"),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return authresult.AuthResult{}, c.apiError(resp)
	}
	return authresult.AuthResult{
		Body:    authresult.NewWireResponse(resp),
		Headers: resp.Header,
	}, nil
}

// apiError drains resp into an APIError. A JSON body is decoded and its
// "message" or "error" field becomes the message.
func (c *Client) apiError(resp *http.Response) *authresult.APIError {
	defer resp.Body.Close()

	apiErr := &authresult.APIError{
		Status:  resp.StatusCode,
		Headers: resp.Header.Clone(),
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxErrBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return apiErr
	}

	var decoded any
	if json.Unmarshal(data, &decoded) != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Body = decoded
	if m, ok := decoded.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if msg, ok := m[key].(string); ok && msg != "" {
				apiErr.Message = msg
				break
			}
		}
	}
	return apiErr
}

// ForwardHeaders copies inbound request headers for the upstream call,
// dropping hop-by-hop headers, those named by Connection, and headers the
// client sets itself.
func ForwardHeaders(in http.Header) http.Header {
	out := make(http.Header, len(in))
	connection := map[string]struct{}{}
	for _, v := range in.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				connection[http.CanonicalHeaderKey(name)] = struct{}{}
			}
		}
	}
	for k, values := range in {
		key := http.CanonicalHeaderKey(k)
		if _, skip := skipHeaders[key]; skip {
			continue
		}
		if _, skip := connection[key]; skip {
			continue
		}
		out[key] = append(out[key], values...)
	}
	return out
}
