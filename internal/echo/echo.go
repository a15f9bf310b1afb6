// Package echo serves POST / by printing the raw request to an observation
// writer.
package echo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bjaus/views"
)

// Pattern matches the root path only.
const Pattern = "/{$}"

var separator = []byte("\n\n")

// Echo writes each request it receives to out.
type Echo struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns an Echo writing to out.
func New(out io.Writer) *Echo {
	return &Echo{out: out}
}

// Post joins the request head and body with a blank line, decodes the
// result as UTF-8 and writes it to the observation writer. Invalid UTF-8
// fails the request and writes nothing.
func (e *Echo) Post(_ context.Context, req *views.Request) (*views.Response, error) {
	msg, err := views.DecodeUTF8(bytes.Join([][]byte{req.Head, req.Body}, separator))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := fmt.Fprintln(e.out, msg); err != nil {
		return nil, fmt.Errorf("echo: write message: %w", err)
	}

	return views.Text("Done"), nil
}

// Register mounts e on reg.
func Register(reg views.Registrar, e *Echo) {
	views.Post(reg, Pattern, e.Post, views.WithSummary("Print the raw request"))
}
