package echo_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/views"
	"github.com/bjaus/views/apitest"
	"github.com/bjaus/views/internal/echo"
)

func newRouter(out *bytes.Buffer) *views.Router {
	r := views.New()
	echo.Register(r, echo.New(out))
	return r
}

func TestEcho_Post(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := newRouter(&out)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
	req.Header.Set("X-B", "2")
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Done", rec.Body.String())

	want := "POST / HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Type: text/plain\r\n" +
		"X-B: 2" +
		"\n\nhello\n"
	assert.Equal(t, want, out.String())
}

func TestEcho_Post_empty_body(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := newRouter(&out)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST / HTTP/1.1\r\nHost: example.com\n\n\n", out.String())
}

func TestEcho_Post_invalid_utf8(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := newRouter(&out)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte{0xff, 0xfe})))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "decode text")
	assert.Empty(t, out.String())
}

func TestEcho_routing(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		method     string
		path       string
		wantStatus int
	}{
		"post root":        {method: http.MethodPost, path: "/", wantStatus: http.StatusOK},
		"get root":         {method: http.MethodGet, path: "/", wantStatus: http.StatusMethodNotAllowed},
		"head root":        {method: http.MethodHead, path: "/", wantStatus: http.StatusMethodNotAllowed},
		"post other path":  {method: http.MethodPost, path: "/other", wantStatus: http.StatusNotFound},
		"post nested path": {method: http.MethodPost, path: "/a/b", wantStatus: http.StatusNotFound},
	}

	var out bytes.Buffer
	c := apitest.NewClient(t, newRouter(&out))

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp := apitest.Do(t, c, tc.method, tc.path, nil, nil)
			assert.Equal(t, tc.wantStatus, resp.Status)
			if tc.wantStatus == http.StatusMethodNotAllowed {
				assert.Equal(t, http.MethodPost, resp.Headers.Get("Allow"))
			}
		})
	}
}

func TestEcho_Post_concurrent(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := apitest.NewClient(t, newRouter(&out))

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := apitest.Post(t, c, "/", []byte("line"))
			assert.Equal(t, "Done", resp.Body)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, strings.Count(out.String(), "\n\nline\n"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestEcho_Post_write_error(t *testing.T) {
	t.Parallel()

	r := views.New()
	echo.Register(r, echo.New(failWriter{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "closed")
}
