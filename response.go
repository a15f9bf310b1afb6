package views

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

const textPlain = "text/plain; charset=utf-8"

// Response is a handler's reply. Ownership passes to the framework as soon
// as the handler returns it.
type Response struct {
	// Status overrides the route's default status when non-zero.
	Status      int
	ContentType string
	Header      http.Header
	Body        []byte
}

// Text returns a plain text response.
func Text(s string) *Response {
	return &Response{ContentType: textPlain, Body: []byte(s)}
}

// writeResponse writes resp to w. A nil response writes defaultStatus
// with no body.
func writeResponse(w http.ResponseWriter, resp *Response, defaultStatus int) {
	if resp == nil {
		w.WriteHeader(defaultStatus)
		return
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))

	status := defaultStatus
	if resp.Status != 0 {
		status = resp.Status
	}

	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort after WriteHeader
	w.Write(resp.Body)
}

// problemFor builds the problem body answering err on r. Server errors
// only carry their message when debug is set.
func problemFor(r *http.Request, err error, debug bool) ProblemDetail {
	var pd ProblemDetail

	var given *ProblemDetail
	if errors.As(err, &given) {
		pd = *given
	} else {
		status := ErrorStatus(err)
		pd = ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
		}
		if status < http.StatusInternalServerError || debug {
			pd.Detail = err.Error()
		}
	}

	if pd.Instance == "" {
		pd.Instance = r.URL.Path
	}
	if pd.RequestID == "" {
		pd.RequestID = GetRequestID(r)
	}
	return pd
}

// writeErrorResponse answers r with the problem body for err.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	pd := problemFor(r, err, debug)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(pd)
}
