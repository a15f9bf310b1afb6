package views

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// chain wraps h so that mws[0] runs first.
func chain(h http.Handler, mws []Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recovery returns middleware that turns a handler panic into a 500
// problem response. The panic value and stack go to logger, or to the
// default slog logger when none is given.
func Recovery(logger ...*slog.Logger) Middleware {
	log := slog.Default()
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(rec)
				}

				log.ErrorContext(r.Context(), "handler panic",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r)),
					slog.String("stack", string(debug.Stack())),
				)
				writeErrorResponse(w, r, Error(http.StatusInternalServerError, "handler panic"), false)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
