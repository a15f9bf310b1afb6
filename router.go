package views

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Router is the process-wide server handle: it holds the routes, middleware,
// and configuration, and implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	resources  map[string]*resource
	routes     []routeInfo

	name  string
	debug bool

	errorHandler ErrorHandler

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithName sets the application name used in logs and the route table.
func WithName(name string) RouterOption {
	return func(r *Router) {
		r.name = name
	}
}

// WithDebug enables verbose diagnostics: server error responses carry the
// error message instead of only the status text.
func WithDebug(debug bool) RouterOption {
	return func(r *Router) {
		r.debug = debug
	}
}

// ErrorHandler is a custom error response writer.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		resources: make(map[string]*resource),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the application name.
func (r *Router) Name() string { return r.name }

// Debug reports whether verbose diagnostics are enabled.
func (r *Router) Debug() bool { return r.debug }

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	chain(r.mux, r.middleware).ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Routes returns the registered routes ordered by pattern, then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RouteInfo, len(r.routes))
	for i, ri := range r.routes {
		out[i] = ri.RouteInfo
	}
	slices.SortFunc(out, func(a, b RouteInfo) int {
		if c := cmp.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})
	return out
}

// routeTable is the document written by WriteRoutes.
type routeTable struct {
	Name   string      `yaml:"name,omitempty"`
	Routes []RouteInfo `yaml:"routes"`
}

// WriteRoutes writes the route table as YAML to w.
func (r *Router) WriteRoutes(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(routeTable{Name: r.name, Routes: r.Routes()}); err != nil {
		return err
	}
	return enc.Close()
}

// addRoute adds ri to the dispatch table of its pattern, creating and
// mounting the table on first use. Global middleware is applied in
// ServeHTTP, not here; only group middleware is baked into ri.handler.
func (r *Router) addRoute(ri routeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[ri.Pattern]
	if !ok {
		res = newResource(r, ri.Pattern)
		r.mux.Handle(ri.Pattern, res)
		r.resources[ri.Pattern] = res
	}
	if !res.set(ri.Method, ri.handler) {
		panic(fmt.Sprintf("views: multiple registrations for %s %s", ri.Method, ri.Pattern))
	}
	r.routes = append(r.routes, ri)
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	if r.errorHandler != nil {
		r.errorHandler(w, req, err)
		return
	}
	writeErrorResponse(w, req, err, r.debug)
}
