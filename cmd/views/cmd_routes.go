package main

import (
	"fmt"
	"io"
	"os"

	"go.n16f.net/program"

	"github.com/bjaus/views"
	"github.com/bjaus/views/internal/server"
)

func cmdRoutes(p *program.Program) {
	cfg := loadConfig(p)

	routers := []*views.Router{
		server.Profiles(cfg, server.Options{}),
		server.Echo(cfg, io.Discard, server.Options{}),
	}

	for i, r := range routers {
		if i > 0 {
			fmt.Fprintln(os.Stdout, "---")
		}
		if err := r.WriteRoutes(os.Stdout); err != nil {
			p.Fatal("cannot write routes: %v", err)
		}
	}
}
