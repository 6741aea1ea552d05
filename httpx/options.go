package httpx

import (
	"net/http"
	"time"
)

type Option interface{ apply(*Config) }

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Config) { c.Timeout = d })
}

func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *Config) { c.Transport = rt })
}

func WithDefaultHeader(key, value string) Option {
	return optionFunc(func(c *Config) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(http.Header)
		}
		c.DefaultHeaders.Set(key, value)
	})
}

func WithUserAgent(ua string) Option {
	return optionFunc(func(c *Config) { c.UserAgent = ua })
}

func WithRetry(cfg RetryConfig) Option {
	return optionFunc(func(c *Config) { c.Retry = cfg })
}

// WithMaxAttempts keeps the rest of the retry policy and changes only the attempt budget.
func WithMaxAttempts(n int) Option {
	return optionFunc(func(c *Config) { c.Retry.MaxAttempts = n })
}

func WithMaxBodyBytes(n int64) Option {
	return optionFunc(func(c *Config) { c.MaxBodyBytes = n })
}

func WithMaxErrorBodyBytes(n int64) Option {
	return optionFunc(func(c *Config) { c.MaxErrorBodyBytes = n })
}

func WithRequestID(cfg RequestIDConfig) Option {
	return optionFunc(func(c *Config) { c.RequestID = cfg })
}

// CallOption tunes a single Do call.
type CallOption interface{ apply(*callConfig) }

type callOptionFunc func(*callConfig)

func (f callOptionFunc) apply(c *callConfig) { f(c) }

type callConfig struct {
	classify Classifier
}

// WithClassifier overrides RetryConfig.Classify for one call.
func WithClassifier(fn Classifier) CallOption {
	return callOptionFunc(func(c *callConfig) { c.classify = fn })
}
