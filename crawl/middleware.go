package crawl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lgc202/go-paapi/paapi"
)

const (
	responseFile      = "response.xml"
	errorResponseFile = "error-response.xml"
)

// Settings control retries and response dumps.
type Settings struct {
	// MaxRetryTimes bounds retries of a throttled or expired request.
	MaxRetryTimes int

	// PriorityAdjust is added to a request's priority on every retry.
	PriorityAdjust int

	// WriteResponses writes every body to ResponseDir/response.xml.
	WriteResponses bool

	// ResponseDir receives response.xml and error-response.xml.
	// Empty means the working directory.
	ResponseDir string
}

// Middleware turns a raw body into a parsed response, a retry request or an error.
type Middleware struct {
	settings Settings
	metrics  *Metrics
	logger   zerolog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

type MiddlewareOption func(*Middleware)

func WithMetrics(m *Metrics) MiddlewareOption {
	return func(mw *Middleware) { mw.metrics = m }
}

func WithLogger(l zerolog.Logger) MiddlewareOption {
	return func(mw *Middleware) { mw.logger = l }
}

// WithSleep replaces the context-aware pause before a retry.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) MiddlewareOption {
	return func(mw *Middleware) { mw.sleep = fn }
}

func NewMiddleware(s Settings, opts ...MiddlewareOption) *Middleware {
	mw := &Middleware{
		settings: s,
		logger:   log.Logger.With().Str("component", "crawl").Logger(),
		sleep:    sleepCtx,
	}
	for _, o := range opts {
		if o != nil {
			o(mw)
		}
	}
	return mw
}

// Process handles the body fetched for req. Exactly one of the results is
// non-nil:
//   - a retry request, for a throttled or expired request with retries left
//   - the parsed response
//   - an error: any other service error, a request the service flagged
//     invalid, a malformed body, or the last throttled/expired error once
//     retries are exhausted
func (m *Middleware) Process(ctx context.Context, req *Request, body []byte) (*Request, *paapi.Response, error) {
	if m.settings.WriteResponses {
		if err := m.dump(responseFile, body); err != nil {
			return nil, nil, err
		}
	}

	if err := paapi.CheckContent(body); err != nil {
		var reason string
		switch {
		case paapi.IsThrottled(err):
			reason = paapi.CodeRequestThrottled
			m.metrics.throttled()
		case paapi.IsExpired(err):
			// The signature timestamp aged out while the request sat in the queue.
			reason = paapi.CodeRequestExpired
			m.metrics.expired()
		default:
			if derr := m.dump(errorResponseFile, body); derr != nil {
				m.logger.Warn().Err(derr).Msg("could not write error response")
			}
			m.metrics.outcome(OutcomeError)
			return nil, nil, err
		}
		m.logger.Debug().Err(err).Stringer("request", req).Msg(reason)

		retry, rerr := m.retry(ctx, req, reason)
		if rerr != nil {
			return nil, nil, rerr
		}
		if retry == nil {
			m.metrics.outcome(OutcomeGaveUp)
			return nil, nil, err
		}
		m.metrics.outcome(OutcomeRetry)
		return retry, nil, nil
	}

	resp, err := paapi.ParseResponse(body)
	if err != nil {
		m.metrics.outcome(OutcomeInvalid)
		return nil, nil, err
	}
	m.metrics.outcome(OutcomeOK)
	return nil, resp, nil
}

// retry pauses for the squared timeout and returns the follow-up request,
// or nil once req has used up its retries.
func (m *Middleware) retry(ctx context.Context, req *Request, reason string) (*Request, error) {
	retries := req.RetryTimes + 1
	seed := req.Timeout
	if seed <= 0 {
		seed = time.Second
	}
	timeout := squared(seed)

	if retries > m.settings.MaxRetryTimes {
		m.logger.Debug().
			Stringer("request", req).
			Int("retries", retries).
			Str("reason", reason).
			Msg("gave up retrying")
		return nil, nil
	}

	if err := m.sleep(ctx, timeout); err != nil {
		return nil, err
	}
	m.logger.Debug().
		Stringer("request", req).
		Int("retries", retries).
		Str("reason", reason).
		Dur("timeout", timeout).
		Msg("retrying")

	next := req.clone()
	next.RetryTimes = retries
	if timeout == time.Second {
		next.Timeout = 2 * time.Second
	} else {
		next.Timeout = timeout
	}
	next.Priority = req.Priority + m.settings.PriorityAdjust
	return next, nil
}

// squared treats d as a number of seconds: 2s becomes 4s, 4s becomes 16s.
func squared(d time.Duration) time.Duration {
	s := d.Seconds()
	return time.Duration(s * s * float64(time.Second))
}

func (m *Middleware) dump(name string, body []byte) error {
	path := filepath.Join(m.settings.ResponseDir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("crawl: write %s: %w", path, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
