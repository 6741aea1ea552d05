package httpx

import (
	"context"
	"net/http"
	"time"
)

// RateLimiter throttles outgoing requests. Wait blocks until a token is
// available or ctx is done. *rate.Limiter satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

type BeforeHook func(req *http.Request, attempt int) error

// AfterHook observes every attempt. resp is nil when the round trip failed.
type AfterHook func(req *http.Request, resp *Response, err error, dur time.Duration, attempt int)

type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func chain(rt http.RoundTripper, mws []Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		rt = mws[i](rt)
	}
	return rt
}
