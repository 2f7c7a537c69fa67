// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value that Wrap fills in
// with the configured binders, and returns a Response that renders itself.
// *authresult.Response satisfies Response, so auth routes can return the
// normalized upstream result directly.
package handler
