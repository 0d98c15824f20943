package server

import "net/http"

// Handler produces a response for a request. The server's dispatcher is a
// Handler, and every middleware receives the remaining chain as one.
type Handler func(r *http.Request) *Response

// Middleware intercepts a request before the dispatcher sees it. An
// implementation may answer the request itself, forward it by calling
// next, or forward it and rework the returned response.
type Middleware interface {
	Process(r *http.Request, next Handler) *Response
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
type MiddlewareFunc func(r *http.Request, next Handler) *Response

// Process implements Middleware.
func (f MiddlewareFunc) Process(r *http.Request, next Handler) *Response {
	return f(r, next)
}
