package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgc202/go-paapi/httpx"
)

func main() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<ItemLookupResponse/>")
	}))
	defer srv.Close()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	client, err := httpx.New()
	if err != nil {
		panic(err)
	}
	client.WithHooks(
		[]httpx.BeforeHook{
			func(req *http.Request, attempt int) error {
				logger.Debug().Str("request_id", req.Header.Get("X-Request-ID")).Int("attempt", attempt).Msg("sending")
				return nil
			},
		},
		[]httpx.AfterHook{
			func(req *http.Request, resp *httpx.Response, err error, dur time.Duration, attempt int) {
				ev := logger.Info()
				if err != nil {
					ev = logger.Warn().Err(err)
				}
				code := 0
				if resp != nil {
					code = resp.StatusCode
				}
				ev.Str("method", req.Method).
					Str("path", req.URL.Path).
					Int("status", code).
					Dur("dur", dur).
					Int("attempt", attempt).
					Msg("request")
			},
		},
	)

	if _, err := client.Do(context.Background(), httpx.Get(srv.URL+"/onca/xml")); err != nil {
		panic(err)
	}
}
