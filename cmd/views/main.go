// Command views runs the profile and echo servers and the deferred value
// demo.
//
//	views profiles                 serve GET|PUT|PATCH|DELETE /{username} on :8000
//	views echo                     serve POST / on :9999 with diagnostics
//	views deferred                 wait one second, then print ">> 123"
//	views routes                   print both route tables as YAML
//
// Every command accepts -c <file> to load a YAML configuration and -d to
// turn on verbose diagnostics.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.n16f.net/program"

	"github.com/bjaus/views/internal/config"
)

func main() {
	p := program.NewProgram("views",
		"per-verb HTTP resources and a deferred value producer")

	p.AddOption("c", "cfg", "path", "", "the path of the configuration file")
	p.AddFlag("d", "debug", "enable verbose diagnostics")

	p.AddCommand("profiles", "serve the single profile resource", cmdProfiles)
	p.AddCommand("echo", "serve POST / and print every request", cmdEcho)
	p.AddCommand("deferred", "produce a deferred value and print it", cmdDeferred)
	p.AddCommand("routes", "print the route tables", cmdRoutes)

	p.ParseCommandLine()
	p.Run()
}

// loadConfig reads the configuration named on the command line and applies
// the debug flag to every server.
func loadConfig(p *program.Program) config.Config {
	cfg, err := config.Load(p.OptionValue("cfg"))
	if err != nil {
		p.Fatal("cannot load configuration: %v", err)
	}

	if p.IsOptionSet("debug") {
		cfg.Profiles.Debug = true
		cfg.Echo.Debug = true
	}
	return cfg
}

// newLogger installs the process logger writing to w.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
