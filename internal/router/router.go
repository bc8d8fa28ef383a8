package router

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Router is a thin layer over http.ServeMux (Go 1.22 method+pattern
// routes) that adds middleware chaining and route groups.
type Router struct {
	mux   *http.ServeMux
	chain []Middleware
}

// New returns a Router whose middleware runs on every registered route,
// in the order given.
func New(middleware ...Middleware) *Router {
	return &Router{mux: http.NewServeMux(), chain: middleware}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) Get(pattern string, handler http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, pattern, handler, mw...)
}

func (r *Router) Post(pattern string, handler http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, pattern, handler, mw...)
}

func (r *Router) Put(pattern string, handler http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPut, pattern, handler, mw...)
}

func (r *Router) Delete(pattern string, handler http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodDelete, pattern, handler, mw...)
}

// Handle registers handler for "METHOD pattern", wrapped in the router's
// chain plus any route-specific middleware.
func (r *Router) Handle(method, pattern string, handler http.Handler, mw ...Middleware) {
	r.mux.Handle(method+" "+pattern, r.wrap(handler, mw))
}

// Group returns a Router sharing this router's mux with extra middleware
// appended to the chain. Routes registered on the group inherit both.
func (r *Router) Group(middleware ...Middleware) *Router {
	return &Router{
		mux:   r.mux,
		chain: append(slices.Clone(r.chain), middleware...),
	}
}

// wrap applies the combined chain outermost-first, so middleware executes
// in registration order.
func (r *Router) wrap(handler http.Handler, mw []Middleware) http.Handler {
	combined := append(slices.Clone(r.chain), mw...)
	for i := len(combined) - 1; i >= 0; i-- {
		handler = combined[i](handler)
	}
	return handler
}
