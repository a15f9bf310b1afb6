package views

import "net/http"

// BodyLimit returns middleware that caps the request body at maxBytes.
// Handlers reading past the cap fail with 413 Payload Too Large.
// A non-positive maxBytes leaves the body unbounded.
func BodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeErrorResponse(w, r, Errorf(http.StatusRequestEntityTooLarge, "body of %d bytes exceeds %d", r.ContentLength, maxBytes), false)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
