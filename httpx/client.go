package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpClient *http.Client

	timeout        time.Duration
	defaultHeaders http.Header
	userAgent      string

	retry      RetryConfig
	maxBody    int64
	maxErrBody int64

	requestID RequestIDConfig

	rateLimiter RateLimiter
	before      []BeforeHook
	after       []AfterHook
}

// New constructs a Client from DefaultConfig() plus the provided options.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Client, error) {
	if cfg.Timeout < 0 {
		return nil, errors.New("httpx: negative timeout")
	}
	rt := cfg.Transport
	if rt == nil {
		rt = DefaultTransport()
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	maxErrBody := cfg.MaxErrorBodyBytes
	if maxErrBody == 0 {
		maxErrBody = DefaultMaxErrorBodyBytes
	}

	hdr := make(http.Header)
	for k, vv := range cfg.DefaultHeaders {
		for _, v := range vv {
			hdr.Add(k, v)
		}
	}

	c := &Client{
		httpClient:     &http.Client{Transport: rt},
		timeout:        cfg.Timeout,
		defaultHeaders: hdr,
		userAgent:      cfg.UserAgent,
		retry:          cfg.Retry,
		maxBody:        maxBody,
		maxErrBody:     maxErrBody,
		requestID:      cfg.RequestID,
	}
	if c.requestID.New == nil && c.requestID.Header != "" {
		c.requestID.New = DefaultRequestID
	}
	if c.retry.Backoff == nil {
		c.retry.Backoff = DefaultBackoff()
	}
	return c, nil
}

// WithMiddleware wraps the underlying RoundTripper with middleware.
// Call this during initialization (before the client is used concurrently).
func (c *Client) WithMiddleware(mws ...Middleware) *Client {
	if len(mws) == 0 {
		return c
	}
	rt := c.httpClient.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	c.httpClient.Transport = chain(rt, mws)
	return c
}

// WithRateLimiter installs a client-wide rate limiter, consulted before every attempt.
func (c *Client) WithRateLimiter(rl RateLimiter) *Client {
	c.rateLimiter = rl
	return c
}

// WithHooks adds hooks (executed for every attempt).
func (c *Client) WithHooks(before []BeforeHook, after []AfterHook) *Client {
	c.before = append(c.before, before...)
	c.after = append(c.after, after...)
	return c
}

// MaxAttempts reports the configured attempt budget.
func (c *Client) MaxAttempts() int {
	if c.retry.MaxAttempts <= 0 {
		return 1
	}
	return c.retry.MaxAttempts
}

func withEarlierDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	deadline := time.Now().Add(d)
	if existing, ok := ctx.Deadline(); ok && !existing.After(deadline) {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline)
}

// failure is the outcome of a failed attempt.
type failure struct {
	req   *http.Request
	resp  *Response
	cause error
	retry bool
}

// Do runs build until an attempt succeeds or the retry policy gives up.
//
// An attempt fails on a transport error, on a status >= 400, or when the
// classifier returns an error. The returned *Error wraps the last failure's
// cause. When the last attempt received a response, it is returned
// alongside the error.
func (c *Client) Do(ctx context.Context, build RequestFunc, opts ...CallOption) (*Response, error) {
	if build == nil {
		return nil, errors.New("httpx: nil request func")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cc := callConfig{classify: c.retry.Classify}
	for _, o := range opts {
		if o != nil {
			o.apply(&cc)
		}
	}
	ctx, cancel := withEarlierDeadline(ctx, c.timeout)
	defer cancel()

	maxAttempts := c.MaxAttempts()
	startAll := time.Now()

	var last failure
	attempt := 1
	for ; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := build(ctx, attempt)
		if err != nil {
			return nil, err
		}
		c.prepare(req)

		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		for _, h := range c.before {
			if h == nil {
				continue
			}
			if err := h(req, attempt); err != nil {
				return nil, err
			}
		}

		t0 := time.Now()
		resp, err := c.roundTrip(req)
		dur := time.Since(t0)
		if resp != nil {
			resp.Attempts = attempt
			resp.Duration = time.Since(startAll)
		}

		for _, h := range c.after {
			if h != nil {
				h(req, resp, err, dur, attempt)
			}
		}

		last = c.evaluate(req, resp, err, cc.classify)
		if last.cause == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		retry := last.retry && attempt < maxAttempts && c.retry.canRetryMethod(req.Method)
		if retry && c.retry.MaxElapsed > 0 && time.Since(startAll) >= c.retry.MaxElapsed {
			retry = false
		}
		if !retry {
			break
		}
		if err := sleep(ctx, c.retry.wait(attempt, resp)); err != nil {
			return nil, err
		}
	}
	return last.resp, c.toError(last, attempt)
}

func (c *Client) evaluate(req *http.Request, resp *Response, err error, classify Classifier) failure {
	f := failure{req: req, resp: resp}
	if err != nil {
		f.cause = err
		f.retry = shouldRetryNetErr(err)
		return f
	}
	if resp.StatusCode >= 400 {
		f.cause = errors.New(http.StatusText(resp.StatusCode))
		f.retry = c.retry.canRetryStatus(resp.StatusCode)
	}
	if classify != nil {
		retry, cerr := classify(resp)
		if cerr != nil {
			f.cause = cerr
			f.retry = f.retry || retry
		}
	}
	return f
}

func (c *Client) toError(f failure, attempts int) error {
	e := &Error{
		Method:    f.req.Method,
		URL:       f.req.URL.String(),
		Cause:     f.cause,
		Retryable: f.retry && c.retry.canRetryMethod(f.req.Method),
		Attempts:  attempts,
	}
	if c.requestID.Header != "" {
		e.RequestID = strings.TrimSpace(f.req.Header.Get(c.requestID.Header))
	}
	if f.resp == nil {
		return e
	}
	e.StatusCode = f.resp.StatusCode
	if rid := f.resp.RequestID(c.requestID.Header); rid != "" {
		e.RequestID = rid
	}
	e.RetryAfter, _ = parseRetryAfter(f.resp.Header, time.Now())
	raw := f.resp.Body
	if c.maxErrBody > 0 && int64(len(raw)) > c.maxErrBody {
		raw = raw[:c.maxErrBody]
	}
	e.RawBody = append([]byte(nil), raw...)
	return e
}
