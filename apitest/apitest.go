// Package apitest provides test helpers for views routers.
package apitest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bjaus/views"
)

// Client wraps an httptest.Server for convenient router testing.
type Client struct {
	Server *httptest.Server
}

// NewClient creates a test client from a router.
func NewClient(t testing.TB, r *views.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Response holds a buffered response.
type Response struct {
	Status  int
	Headers http.Header
	Body    string
}

// Get sends a GET request.
func Get(t testing.TB, c *Client, path string) *Response {
	t.Helper()
	return Do(t, c, http.MethodGet, path, nil, nil)
}

// Post sends a POST request with a raw body.
func Post(t testing.TB, c *Client, path string, body []byte) *Response {
	t.Helper()
	return Do(t, c, http.MethodPost, path, nil, body)
}

// Put sends a PUT request with a raw body.
func Put(t testing.TB, c *Client, path string, body []byte) *Response {
	t.Helper()
	return Do(t, c, http.MethodPut, path, nil, body)
}

// Patch sends a PATCH request with a raw body.
func Patch(t testing.TB, c *Client, path string, body []byte) *Response {
	t.Helper()
	return Do(t, c, http.MethodPatch, path, nil, body)
}

// Delete sends a DELETE request.
func Delete(t testing.TB, c *Client, path string) *Response {
	t.Helper()
	return Do(t, c, http.MethodDelete, path, nil, nil)
}

// Do sends a request with the given headers and body and buffers the reply.
func Do(t testing.TB, c *Client, method, path string, header http.Header, body []byte) *Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("apitest: read body: %v", err)
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    string(b),
	}
}
