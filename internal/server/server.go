// Package server assembles routers for the views commands from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/views"
	"github.com/bjaus/views/internal/config"
	"github.com/bjaus/views/internal/echo"
	"github.com/bjaus/views/internal/profile"
)

// EchoName is the application name of the echo server.
const EchoName = "echo"

// Options carries the process-wide collaborators shared by every router.
type Options struct {
	Logger *slog.Logger

	// Registry receives request metrics. Nil disables metrics.
	Registry prometheus.Registerer
}

// New returns a router with the standard middleware stack:
// recovery, request IDs, an access log in debug mode, body and rate limits,
// and metrics.
func New(name string, cfg config.Server, limits config.Limits, opts Options) *views.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := views.New(views.WithName(name), views.WithDebug(cfg.Debug))

	r.Use(views.Recovery(logger))
	r.Use(views.RequestID())
	if cfg.Debug {
		r.Use(views.Logger(logger.With("app", name)))
	}
	r.Use(views.BodyLimit(limits.BodyBytes))
	if limits.Rate > 0 {
		r.Use(views.RateLimit(views.RateLimitConfig{
			Rate:  limits.Rate,
			Burst: limits.Burst,
		}))
	}
	if opts.Registry != nil {
		reg := prometheus.WrapRegistererWith(prometheus.Labels{"app": name}, opts.Registry)
		r.Use(views.Metrics(reg))
	}

	return r
}

// Profiles returns the router serving the profile resource.
func Profiles(cfg config.Config, opts Options) *views.Router {
	r := New(profile.Name, cfg.Profiles, cfg.Limits, opts)
	profile.Register(r)
	return r
}

// Echo returns the router serving POST / with messages written to out.
func Echo(cfg config.Config, out io.Writer, opts Options) *views.Router {
	r := New(EchoName, cfg.Echo, cfg.Limits, opts)
	echo.Register(r, echo.New(out))
	return r
}

// Diagnostics returns the router for the metrics listener. Profiling
// endpoints are added when debug is set.
func Diagnostics(g prometheus.Gatherer, debug bool) *views.Router {
	r := views.New(views.WithName("diagnostics"), views.WithDebug(debug))
	r.Use(views.Recovery())
	views.ServeMetrics(r, "/metrics", g)
	if debug {
		dbg := r.Group("/debug", views.WithGroupMiddleware(noStore))
		views.Pprof(dbg, "/pprof")
	}
	return r
}

// noStore keeps profiles out of intermediary caches.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Serve runs r on addr until ctx is cancelled. A graceful shutdown is not
// an error.
func Serve(ctx context.Context, r *views.Router, addr string, logger *slog.Logger) error {
	for _, ri := range r.Routes() {
		logger.DebugContext(ctx, "route", "app", r.Name(), "method", ri.Method, "pattern", ri.Pattern, "summary", ri.Summary)
	}
	logger.InfoContext(ctx, "starting server", "app", r.Name(), "addr", addr, "debug", r.Debug())

	err := r.ListenAndServe(ctx, addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", r.Name(), err)
	}

	logger.InfoContext(ctx, "server stopped", "app", r.Name())
	return nil
}
