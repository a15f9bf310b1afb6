package views

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// Registrar is the interface accepted by the registration functions.
// Both *Router and *Group implement it.
type Registrar interface {
	addRoute(ri routeInfo)
	routeMiddleware() []Middleware
	owner() *Router
}

func (r *Router) routeMiddleware() []Middleware { return nil }
func (r *Router) owner() *Router                { return r }

// register is the internal registration function.
func register(reg Registrar, method, pattern string, h Handler, opts ...RouteOption) {
	ri := routeInfo{
		RouteInfo: RouteInfo{
			Method:  method,
			Pattern: pattern,
		},
	}

	for _, opt := range opts {
		opt(&ri)
	}

	if ri.Status == 0 {
		ri.Status = http.StatusOK
	}

	ri.handler = buildHandler(h, ri.Status, reg.owner())
	mount(reg, ri)
}

// mount applies route-level middleware (from Group) and adds the route.
func mount(reg Registrar, ri routeInfo) {
	ri.handler = chain(ri.handler, reg.routeMiddleware())
	reg.addRoute(ri)
}

// buildHandler wraps a Handler into an http.Handler.
func buildHandler(h Handler, defaultStatus int, router *Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := readRequest(r)
		if err != nil {
			router.writeError(w, r, err)
			return
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			router.writeError(w, r, err)
			return
		}

		writeResponse(w, resp, defaultStatus)
	})
}

// Handle registers a handler for an arbitrary method.
func Handle(reg Registrar, method, pattern string, h Handler, opts ...RouteOption) {
	register(reg, method, pattern, h, opts...)
}

// Get registers a GET handler.
func Get(reg Registrar, pattern string, h Handler, opts ...RouteOption) {
	register(reg, http.MethodGet, pattern, h, opts...)
}

// Post registers a POST handler.
func Post(reg Registrar, pattern string, h Handler, opts ...RouteOption) {
	register(reg, http.MethodPost, pattern, h, opts...)
}

// Put registers a PUT handler.
func Put(reg Registrar, pattern string, h Handler, opts ...RouteOption) {
	register(reg, http.MethodPut, pattern, h, opts...)
}

// Patch registers a PATCH handler.
func Patch(reg Registrar, pattern string, h Handler, opts ...RouteOption) {
	register(reg, http.MethodPatch, pattern, h, opts...)
}

// Delete registers a DELETE handler.
func Delete(reg Registrar, pattern string, h Handler, opts ...RouteOption) {
	register(reg, http.MethodDelete, pattern, h, opts...)
}

// Attach registers a class-based view: one route on pattern for each verb
// interface (Getter, Poster, Putter, Patcher, Deleter) that view implements.
// It panics if view implements none of them.
func Attach(reg Registrar, pattern string, view any, opts ...RouteOption) {
	handlers := viewHandlers(view)
	if len(handlers) == 0 {
		panic(fmt.Sprintf("views: %T implements no verb handlers", view))
	}

	for _, method := range slices.Sorted(maps.Keys(handlers)) {
		register(reg, method, pattern, handlers[method], opts...)
	}
}

// Raw registers a raw http.Handler. The route still dispatches by exact
// method through the pattern's dispatch table.
func Raw(reg Registrar, method, pattern string, h RawHandler, opts ...RouteOption) {
	ri := routeInfo{
		RouteInfo: RouteInfo{
			Method:  method,
			Pattern: pattern,
			Raw:     true,
		},
		handler: http.HandlerFunc(h),
	}

	for _, opt := range opts {
		opt(&ri)
	}

	mount(reg, ri)
}
