package views

import (
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// resource is the dispatch table for one pattern. Requests are routed by
// exact method name only; a verb missing from the table is answered with
// 405 even when a related verb (GET for HEAD) is present.
type resource struct {
	router  *Router
	pattern string

	mu       sync.RWMutex
	handlers map[string]http.Handler
}

func newResource(r *Router, pattern string) *resource {
	return &resource{
		router:   r,
		pattern:  pattern,
		handlers: make(map[string]http.Handler),
	}
}

// set adds the handler for method. It reports false if one already exists.
func (res *resource) set(method string, h http.Handler) bool {
	res.mu.Lock()
	defer res.mu.Unlock()

	if _, ok := res.handlers[method]; ok {
		return false
	}
	res.handlers[method] = h
	return true
}

// allow returns the registered methods in the format of the Allow header.
func (res *resource) allow() string {
	res.mu.RLock()
	defer res.mu.RUnlock()
	return strings.Join(slices.Sorted(maps.Keys(res.handlers)), ", ")
}

func (res *resource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res.mu.RLock()
	h, ok := res.handlers[r.Method]
	res.mu.RUnlock()

	if !ok {
		w.Header().Set("Allow", res.allow())
		res.router.writeError(w, r, Errorf(http.StatusMethodNotAllowed, "method %s not allowed on %s", r.Method, res.pattern))
		return
	}

	h.ServeHTTP(w, r)
}
