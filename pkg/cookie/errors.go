package cookie

import "errors"

var (
	ErrCookieNotFound       = errors.New("cookie.not_found")
	ErrInvalidCookie        = errors.New("cookie.invalid")
	ErrInsecureSameSiteNone = errors.New("cookie.samesite_none_requires_secure")
)
