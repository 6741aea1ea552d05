package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestFunc builds the request for one attempt. It is called again for
// every retry, so anything time-sensitive (timestamps, signatures) is fresh.
type RequestFunc func(ctx context.Context, attempt int) (*http.Request, error)

// Get returns a RequestFunc for a fixed GET url.
func Get(url string) RequestFunc {
	return func(ctx context.Context, _ int) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

// URLFunc returns a RequestFunc issuing a GET for whatever url next returns.
func URLFunc(next func(attempt int) (string, error)) RequestFunc {
	return func(ctx context.Context, attempt int) (*http.Request, error) {
		u, err := next(attempt)
		if err != nil {
			return nil, err
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Attempts is the attempt that produced this response, starting at 1.
	Attempts int

	// Duration covers the whole call up to this response, backoff included.
	Duration time.Duration
}

// RequestID returns the id echoed by the server under header, if any.
func (r *Response) RequestID(header string) string {
	if r == nil || header == "" {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(header))
}

// prepare applies client defaults. Headers already set on req win.
func (c *Client) prepare(req *http.Request) {
	for k, vv := range c.defaultHeaders {
		if req.Header.Get(k) != "" {
			continue
		}
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.requestID.Header != "" && req.Header.Get(c.requestID.Header) == "" && c.requestID.New != nil {
		if id := strings.TrimSpace(c.requestID.New()); id != "" {
			req.Header.Set(c.requestID.Header, id)
		}
	}
}

// roundTrip sends req and reads the body, capped at maxBody.
func (c *Client) roundTrip(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("httpx: read body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("httpx: response body exceeds %d bytes", c.maxBody)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
