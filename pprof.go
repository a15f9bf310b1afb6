package views

import (
	"net/http"
	"net/http/pprof"
)

// Pprof registers pprof profiling endpoints under the given prefix.
// Default prefix is "/debug/pprof".
func Pprof(reg Registrar, prefix string) {
	if prefix == "" {
		prefix = "/debug/pprof"
	}

	get := func(path string, h RawHandler) {
		Raw(reg, http.MethodGet, prefix+path, h, WithSummary("pprof"))
	}

	get("/", pprof.Index)
	get("/cmdline", pprof.Cmdline)
	get("/profile", pprof.Profile)
	get("/symbol", pprof.Symbol)
	get("/trace", pprof.Trace)
	for _, name := range []string{"goroutine", "heap", "allocs", "block", "mutex", "threadcreate"} {
		get("/"+name, pprof.Handler(name).ServeHTTP)
	}
}
