package views

import "net/http"

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  string `yaml:"method"`
	Pattern string `yaml:"pattern"`
	Summary string `yaml:"summary,omitempty"`
	Status  int    `yaml:"status,omitempty"`
	Raw     bool   `yaml:"raw,omitempty"`
}

// routeInfo pairs the public route metadata with its compiled handler.
type routeInfo struct {
	RouteInfo

	handler http.Handler
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithStatus sets the default HTTP status code for the response.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.Status = code
	}
}

// WithSummary sets a one-line description shown in the route table.
func WithSummary(s string) RouteOption {
	return func(ri *routeInfo) {
		ri.Summary = s
	}
}
