package authproxy

import "errors"

var (
	ErrInvalidBaseURL      = errors.New("authproxy: invalid upstream base url")
	ErrEncodeRequest       = errors.New("authproxy: failed to encode request")
	ErrUpstreamUnavailable = errors.New("authproxy: upstream unavailable")
	ErrCircuitOpen         = errors.New("authproxy: circuit breaker is open")
)
