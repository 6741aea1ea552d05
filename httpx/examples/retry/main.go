package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lgc202/go-paapi/httpx"
)

// A service that reports throttling in the body of a 503, then recovers.
func main() {
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "<Error><Code>RequestThrottled</Code></Error>")
			return
		}
		_, _ = io.WriteString(w, "<ItemSearchResponse/>")
	}))
	defer srv.Close()

	errThrottled := errors.New("request throttled")
	client, err := httpx.New(httpx.WithRetry(httpx.RetryConfig{
		MaxAttempts: 5,
		Backoff:     httpx.ExponentialBackoff{Base: 50 * time.Millisecond, Jitter: 0.2},
		Classify: func(resp *httpx.Response) (bool, error) {
			if strings.Contains(string(resp.Body), "RequestThrottled") {
				return true, errThrottled
			}
			return false, nil
		},
	}))
	if err != nil {
		panic(err)
	}

	resp, err := client.Do(context.Background(), httpx.Get(srv.URL+"/onca/xml"))
	if err != nil {
		panic(err)
	}
	fmt.Printf("attempts=%d body=%q took=%s\n", resp.Attempts, resp.Body, resp.Duration.Round(time.Millisecond))
}
