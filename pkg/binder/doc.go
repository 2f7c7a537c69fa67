// Package binder decodes HTTP request bodies into typed structs for
// handler.Wrap.
//
// JSON binds application/json bodies up to DefaultMaxJSONSize. Form binds
// urlencoded and multipart form values by `form` tag:
//
//	type SignInForm struct {
//		Email    string `form:"email"`
//		Password string `form:"password"`
//	}
//
// Errors wrap ErrMissingContentType, ErrUnsupportedMediaType,
// ErrFailedToParseJSON or ErrInvalidForm. A binder may return
// ErrBinderNotApplicable to let Wrap move on to the next binder.
package binder
