package httpx

import (
	"net"
	"net/http"
	"time"
)

// Config configures a Client. Use DefaultConfig() as a baseline.
type Config struct {
	// Timeout bounds a whole Do call including retries.
	// If the context already has an earlier deadline, that one wins.
	Timeout time.Duration

	// Transport is the underlying RoundTripper. If nil, DefaultTransport() is used.
	Transport http.RoundTripper

	// DefaultHeaders are copied into every request (headers set by the RequestFunc win).
	DefaultHeaders http.Header

	// UserAgent is set when the request does not already have a User-Agent header.
	UserAgent string

	Retry RetryConfig

	// MaxBodyBytes caps how much of a response body is read into Response.Body.
	// If zero, DefaultMaxBodyBytes is used.
	MaxBodyBytes int64

	// MaxErrorBodyBytes caps Error.RawBody. If zero, DefaultMaxErrorBodyBytes is used.
	MaxErrorBodyBytes int64

	RequestID RequestIDConfig
}

const (
	DefaultMaxBodyBytes      int64 = 8 << 20  // 8MiB
	DefaultMaxErrorBodyBytes int64 = 64 << 10 // 64KiB
)

// DefaultConfig returns a conservative baseline. Search responses with the
// Large response group run to a few hundred KiB, well under the body cap.
func DefaultConfig() Config {
	return Config{
		Timeout:           30 * time.Second,
		Transport:         DefaultTransport(),
		DefaultHeaders:    make(http.Header),
		Retry:             DefaultRetryConfig(),
		MaxBodyBytes:      DefaultMaxBodyBytes,
		MaxErrorBodyBytes: DefaultMaxErrorBodyBytes,
		RequestID:         DefaultRequestIDConfig(),
	}
}

// DefaultTransport returns a tuned clone of http.DefaultTransport.
func DefaultTransport() *http.Transport {
	base, _ := http.DefaultTransport.(*http.Transport)
	if base == nil {
		return &http.Transport{}
	}
	t := base.Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = 5 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	t.IdleConnTimeout = 90 * time.Second
	// A crawl talks to a single marketplace host.
	if t.MaxIdleConnsPerHost < 16 {
		t.MaxIdleConnsPerHost = 16
	}
	t.ForceAttemptHTTP2 = true
	return t
}
