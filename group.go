package views

import (
	"fmt"
	"slices"
	"strings"
)

// Group registers routes under a path prefix, wrapping each of them in the
// group's middleware. Groups nest: a subgroup inherits its parent's prefix
// and runs the parent's middleware first.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupMiddleware adds middleware to the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group returns a group rooted at prefix. The prefix must start with a
// slash; a trailing slash is dropped.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	return newGroup(r, "", nil, prefix, opts)
}

// Group returns a subgroup of g rooted at g's prefix plus prefix.
func (g *Group) Group(prefix string, opts ...GroupOption) *Group {
	return newGroup(g.router, g.prefix, g.middleware, prefix, opts)
}

func newGroup(r *Router, parent string, mw []Middleware, prefix string, opts []GroupOption) *Group {
	if !strings.HasPrefix(prefix, "/") {
		panic(fmt.Sprintf("views: group prefix %q must start with /", prefix))
	}
	g := &Group{
		router:     r,
		prefix:     parent + strings.TrimSuffix(prefix, "/"),
		middleware: slices.Clone(mw),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prefix returns the full path prefix of the group.
func (g *Group) Prefix() string { return g.prefix }

func (g *Group) addRoute(ri routeInfo) {
	ri.Pattern = g.prefix + ri.Pattern
	g.router.addRoute(ri)
}

func (g *Group) routeMiddleware() []Middleware { return g.middleware }

func (g *Group) owner() *Router { return g.router }
