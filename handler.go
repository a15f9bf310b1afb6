package views

import (
	"context"
	"net/http"
)

// Handler is the core handler signature. The framework owns reading the
// request and writing the response; handlers never see
// http.ResponseWriter or *http.Request.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// RawHandler is an escape hatch for anything that needs direct access to
// the underlying http primitives (metrics exporters, profilers).
type RawHandler func(w http.ResponseWriter, r *http.Request)

// Getter is implemented by views that handle GET.
type Getter interface {
	Get(ctx context.Context, req *Request) (*Response, error)
}

// Poster is implemented by views that handle POST.
type Poster interface {
	Post(ctx context.Context, req *Request) (*Response, error)
}

// Putter is implemented by views that handle PUT.
type Putter interface {
	Put(ctx context.Context, req *Request) (*Response, error)
}

// Patcher is implemented by views that handle PATCH.
type Patcher interface {
	Patch(ctx context.Context, req *Request) (*Response, error)
}

// Deleter is implemented by views that handle DELETE.
type Deleter interface {
	Delete(ctx context.Context, req *Request) (*Response, error)
}

// viewHandlers returns the verb handlers implemented by view, keyed by method.
func viewHandlers(view any) map[string]Handler {
	handlers := make(map[string]Handler)
	if v, ok := view.(Getter); ok {
		handlers[http.MethodGet] = v.Get
	}
	if v, ok := view.(Poster); ok {
		handlers[http.MethodPost] = v.Post
	}
	if v, ok := view.(Putter); ok {
		handlers[http.MethodPut] = v.Put
	}
	if v, ok := view.(Patcher); ok {
		handlers[http.MethodPatch] = v.Patch
	}
	if v, ok := view.(Deleter); ok {
		handlers[http.MethodDelete] = v.Delete
	}
	return handlers
}
