package views

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// maxRequestIDLen bounds client supplied request IDs.
const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestIDConfig configures the RequestID middleware. Zero fields take
// their defaults.
type RequestIDConfig struct {
	Header    string            // default: "X-Request-ID"
	Generator func() string     // default: 16 random bytes, hex encoded
	Accept    func(string) bool // default: 1 to 128 printable ASCII bytes
}

func (c RequestIDConfig) withDefaults() RequestIDConfig {
	if c.Header == "" {
		c.Header = "X-Request-ID"
	}
	if c.Generator == nil {
		c.Generator = randomRequestID
	}
	if c.Accept == nil {
		c.Accept = validRequestID
	}
	return c
}

// RequestID returns middleware that tags every request with an ID. A client
// ID passing cfg.Accept is kept, anything else is replaced. The ID is
// stored in the request context and echoed on the response.
func RequestID(cfg ...RequestIDConfig) Middleware {
	var c RequestIDConfig
	if len(cfg) > 0 {
		c = cfg[0]
	}
	c = c.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(c.Header)
			if !c.Accept(id) {
				id = c.Generator()
			}

			w.Header().Set(c.Header, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

// GetRequestID returns the ID RequestID stored on r, or "".
func GetRequestID(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

// RequestIDFromContext returns the request ID visible to a handler, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

func randomRequestID() string {
	var b [16]byte
	//nolint:errcheck,gosec // crypto/rand.Read never fails
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
