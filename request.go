package views

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// Request is the framework's view of an incoming request. Its lifetime is
// a single handler invocation; handlers must not retain it.
type Request struct {
	Method string
	Path   string

	// Head is the request line followed by the header lines, CRLF
	// separated and without the trailing blank line.
	Head []byte

	// Body is the full request body.
	Body []byte

	raw *http.Request
}

// PathValue returns the value of the named path wildcard, or "" if the
// route has no such wildcard.
func (r *Request) PathValue(name string) string {
	return r.raw.PathValue(name)
}

// Header returns the parsed request headers.
func (r *Request) Header() http.Header {
	return r.raw.Header
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.raw.Context()
}

// Text decodes the body as UTF-8.
func (r *Request) Text() (string, error) {
	return DecodeUTF8(r.Body)
}

// readRequest buffers the body of r and builds a Request from it.
func readRequest(r *http.Request) (*Request, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, WrapError(http.StatusRequestEntityTooLarge, fmt.Errorf("%w: body exceeds %d bytes", ErrReadBody, mbe.Limit))
			}
			return nil, WrapError(http.StatusBadRequest, fmt.Errorf("%w: %w", ErrReadBody, err))
		}
		body = b
	}

	return &Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Head:   requestHead(r),
		Body:   body,
		raw:    r,
	}, nil
}

// requestHead rebuilds the request head the way it appeared on the wire.
// The Host header lives in r.Host once parsed, so it is restored first;
// the remaining headers follow in name order.
func requestHead(r *http.Request) []byte {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s\r\n", r.Method, uri, r.Proto)
	if r.Host != "" {
		fmt.Fprintf(&buf, "Host: %s\r\n", r.Host)
	}
	//nolint:errcheck,gosec // bytes.Buffer writes never fail
	r.Header.Write(&buf)

	return bytes.TrimSuffix(buf.Bytes(), []byte("\r\n"))
}

// DecodeUTF8 decodes b as UTF-8 text. There is no fallback encoding:
// any invalid byte sequence is reported as ErrDecode, wrapped in a
// 400 HTTPError so it can be returned from a handler as is.
func DecodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", WrapError(http.StatusBadRequest, fmt.Errorf("%w: invalid utf-8 at byte %d", ErrDecode, invalidOffset(b)))
	}
	return string(b), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
