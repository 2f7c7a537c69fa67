package authresult

import "errors"

var (
	// ErrBodyConsumed is returned when a wire response body is read twice.
	ErrBodyConsumed = errors.New("authresult: response body already consumed")
	// ErrBodyTooLarge is returned when a wire response body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("authresult: response body too large")
	// ErrReadBody wraps transport errors raised while reading a response body.
	ErrReadBody = errors.New("authresult: failed to read response body")

	ErrInvalidDirective = errors.New("authresult: invalid set-cookie directive")
	ErrDecodeValue      = errors.New("authresult: failed to decode cookie value")
	ErrNilStore         = errors.New("authresult: nil cookie store")
)
