package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Error is a failed Do call: a transport error, an error status, or a body
// the classifier rejected.
type Error struct {
	Method string
	URL    string

	// StatusCode is 0 when no response was received.
	StatusCode int

	// RequestID is taken from the response header, falling back to the one sent.
	RequestID string

	RetryAfter time.Duration

	// RawBody is a truncated copy of the last response body.
	RawBody []byte

	// Cause is the transport error, the classifier's error, or the status text.
	Cause error

	// Retryable reports whether the final failure was itself retryable, i.e.
	// the attempt budget ran out rather than the failure being permanent.
	Retryable bool

	Attempts int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if strings.TrimSpace(e.Method) != "" {
		b.WriteString(strings.ToUpper(strings.TrimSpace(e.Method)))
		b.WriteString(" ")
	}
	if strings.TrimSpace(e.URL) != "" {
		b.WriteString(redactURL(e.URL))
		b.WriteString(": ")
	}
	switch {
	case e.StatusCode >= 400:
		b.WriteString(fmt.Sprintf("http %d", e.StatusCode))
		if t := strings.TrimSpace(http.StatusText(e.StatusCode)); t != "" {
			b.WriteString(" ")
			b.WriteString(t)
		}
	case e.StatusCode == 0:
		b.WriteString("request failed")
	default:
		b.WriteString("response rejected")
	}
	if e.Attempts > 1 {
		b.WriteString(fmt.Sprintf(" after %d attempts", e.Attempts))
	}
	if e.RequestID != "" {
		b.WriteString(" request_id=")
		b.WriteString(e.RequestID)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// redactURL drops the query, which carries credentials and signatures.
func redactURL(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}

// AsError extracts *Error.
func AsError(err error) (*Error, bool) {
	var he *Error
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

func IsRetryable(err error) bool {
	he, ok := AsError(err)
	return ok && he.Retryable
}

func IsHTTPStatus(err error, code int) bool {
	he, ok := AsError(err)
	return ok && he.StatusCode == code
}
