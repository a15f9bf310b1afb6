package views

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode reports request text that is not valid UTF-8.
	ErrDecode = errors.New("decode text")

	// ErrReadBody reports a request body that could not be read in full.
	ErrReadBody = errors.New("read body")
)

// StatusCoder is implemented by errors that choose their HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// ErrorStatus returns the status chosen by the first StatusCoder in err's
// chain, or 500.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// HTTPError pairs an error message with the status it is answered with.
type HTTPError struct {
	Status  int
	Message string

	err error
}

// Error returns an HTTPError with a fixed message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns an HTTPError with a formatted message.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// WrapError answers err with status. The result unwraps to err.
func WrapError(status int, err error) error {
	return &HTTPError{Status: status, Message: err.Error(), err: err}
}

func (e *HTTPError) Error() string   { return e.Message }
func (e *HTTPError) StatusCode() int { return e.Status }
func (e *HTTPError) Unwrap() error   { return e.err }

// ProblemDetail is the RFC 9457 body of every error response. Handlers may
// return one to control the body completely; Instance and RequestID are
// filled in when left empty.
//
//nolint:errname // RFC 9457 name
type ProblemDetail struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error returns the detail, or the title when there is none.
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

func (p *ProblemDetail) StatusCode() int { return p.Status }
