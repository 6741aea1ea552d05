package httpx

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Classifier inspects a response that came back over the wire and reports
// whether it is a failure. A non-nil err marks the attempt failed and
// becomes Error.Cause; retry reports whether a new attempt may succeed.
//
// APIs that report faults in the body of a 200, or whose throttling shows
// up in the body rather than the status, need one.
type Classifier func(resp *Response) (retry bool, err error)

type RetryConfig struct {
	// MaxAttempts includes the initial attempt. If <= 1, retries are disabled.
	MaxAttempts int

	// MaxElapsed is the max total time spent across attempts (including backoff sleeps).
	// If zero, it is not enforced (but the context and Client timeout still apply).
	MaxElapsed time.Duration

	// Methods lists HTTP methods eligible for retries.
	// If empty, the idempotent methods are used.
	Methods map[string]bool

	// StatusCodes lists response status codes eligible for retries.
	// If empty, 408, 429 and the gateway-ish 5xx codes are used.
	StatusCodes map[int]bool

	// Classify runs on every response unless a call supplies WithClassifier.
	Classify Classifier

	// Backoff computes the sleep before the next attempt. If nil, DefaultBackoff() is used.
	Backoff Backoff

	// RespectRetryAfter uses the Retry-After header as the backoff for 429/503 when present.
	RespectRetryAfter bool

	// MaxRetryAfter caps Retry-After. If zero, no cap is applied.
	MaxRetryAfter time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		Methods:           defaultRetryMethods(),
		StatusCodes:       defaultRetryStatusCodes(),
		Backoff:           DefaultBackoff(),
		RespectRetryAfter: true,
		MaxRetryAfter:     30 * time.Second,
	}
}

func defaultRetryMethods() map[string]bool {
	return map[string]bool{
		http.MethodGet:     true,
		http.MethodHead:    true,
		http.MethodPut:     true,
		http.MethodDelete:  true,
		http.MethodOptions: true,
	}
}

func defaultRetryStatusCodes() map[int]bool {
	return map[int]bool{
		http.StatusRequestTimeout:      true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	}
}

type Backoff interface {
	// Next returns how long to sleep before attempt+1.
	// attempt is 1 after the first failed request.
	Next(attempt int) time.Duration
}

// ExponentialBackoff doubles Base per attempt up to Max, then spreads the
// result by +/- Jitter.
type ExponentialBackoff struct {
	Base   time.Duration
	Max    time.Duration
	Jitter float64 // 0..1
}

// ConstantBackoff waits the same duration before every retry.
type ConstantBackoff time.Duration

func (b ConstantBackoff) Next(int) time.Duration { return time.Duration(b) }

var (
	jitterMu  sync.Mutex
	jitterRng = rand.New(rand.NewPCG(seed64(), seed64()))
)

func seed64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:])
	}
	return uint64(time.Now().UnixNano())
}

func jitterFloat64() float64 {
	jitterMu.Lock()
	defer jitterMu.Unlock()
	return jitterRng.Float64()
}

// DefaultBackoff starts at one second: the service meters requests per
// second, so anything shorter is throttled again.
func DefaultBackoff() Backoff {
	return ExponentialBackoff{
		Base:   time.Second,
		Max:    10 * time.Second,
		Jitter: 0.2,
	}
}

func (b ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.Base
	if base <= 0 {
		base = time.Second
	}
	max := b.Max
	if max <= 0 {
		max = 10 * time.Second
	}

	d := base
	for i := 1; i < attempt; i++ {
		if d >= max/2 {
			d = max
			break
		}
		d *= 2
	}
	if d > max {
		d = max
	}

	j := b.Jitter
	if j <= 0 {
		return d
	}
	if j > 1 {
		j = 1
	}
	f := 1 + (jitterFloat64()*2-1)*j
	if f < 0 {
		f = 0
	}
	return time.Duration(float64(d) * f)
}

func (c RetryConfig) canRetryMethod(method string) bool {
	if c.MaxAttempts <= 1 {
		return false
	}
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = http.MethodGet
	}
	methods := c.Methods
	if len(methods) == 0 {
		methods = defaultRetryMethods()
	}
	return methods[m]
}

func (c RetryConfig) canRetryStatus(code int) bool {
	statuses := c.StatusCodes
	if len(statuses) == 0 {
		statuses = defaultRetryStatusCodes()
	}
	return statuses[code]
}

func (c RetryConfig) wait(attempt int, resp *Response) time.Duration {
	wait := c.Backoff.Next(attempt)
	if !c.RespectRetryAfter || resp == nil {
		return wait
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return wait
	}
	if ra, ok := parseRetryAfter(resp.Header, time.Now()); ok {
		wait = ra
		if c.MaxRetryAfter > 0 && wait > c.MaxRetryAfter {
			wait = c.MaxRetryAfter
		}
	}
	return wait
}

func shouldRetryNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}

func parseRetryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
