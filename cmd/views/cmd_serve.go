package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.n16f.net/program"

	"github.com/bjaus/views"
	"github.com/bjaus/views/internal/config"
	"github.com/bjaus/views/internal/server"
)

func cmdProfiles(p *program.Program) {
	cfg := loadConfig(p)
	serve(p, cfg, cfg.Profiles, func(opts server.Options) *views.Router {
		return server.Profiles(cfg, opts)
	})
}

func cmdEcho(p *program.Program) {
	cfg := loadConfig(p)
	serve(p, cfg, cfg.Echo, func(opts server.Options) *views.Router {
		return server.Echo(cfg, os.Stdout, opts)
	})
}

// serve runs the router built by build until SIGINT or SIGTERM, with the
// diagnostics listener alongside when a metrics address is configured.
func serve(p *program.Program, cfg config.Config, sc config.Server, build func(server.Options) *views.Router) {
	logger := newLogger(os.Stderr, sc.Debug)

	ctx, stop := signalContext()
	defer stop()

	opts := server.Options{Logger: logger}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Registry = reg

		go func() {
			diag := server.Diagnostics(reg, sc.Debug)
			if err := server.Serve(ctx, diag, cfg.MetricsAddr, logger); err != nil {
				logger.ErrorContext(ctx, "diagnostics server failed", "err", err)
			}
		}()
	}

	if err := server.Serve(ctx, build(opts), sc.Addr, logger); err != nil {
		p.Fatal("cannot serve: %v", err)
	}
}
