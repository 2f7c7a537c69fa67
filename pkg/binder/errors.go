package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrInvalidForm          = errors.New("failed to parse form data")
	// ErrBinderNotApplicable lets a binder opt out so Wrap tries the next one.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
