package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lgc202/go-paapi/crawl"
	"github.com/lgc202/go-paapi/httpx"
	"github.com/lgc202/go-paapi/paapi"
)

func newCrawlCmd(o *globalOptions) *cobra.Command {
	s := &searchOptions{}
	var (
		pages       int
		maxRequests int
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Collect every item of a brand, page by page",
		Long: "crawl walks the search result pages of a brand. Throttled and expired\n" +
			"requests are re-queued with a growing pause, as configured under crawl.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			reg := prometheus.NewRegistry()
			metrics := crawl.NewMetrics(reg)
			if metricsAddr != "" {
				stop := serveMetrics(o, reg, metricsAddr)
				defer stop()
			}

			// Retries belong to the middleware, so the transport makes one attempt.
			c, err := o.client(httpx.WithMaxAttempts(1))
			if err != nil {
				return err
			}
			c.HTTP().WithHooks(nil, []httpx.AfterHook{metrics.AfterHook()})

			cs := o.settings.Crawl
			mw := crawl.NewMiddleware(crawl.Settings{
				MaxRetryTimes:  cs.RequestThrottledRetryTimes,
				PriorityAdjust: cs.RequestThrottledRetryPriorityAdjust,
				WriteResponses: cs.WriteResponses,
				ResponseDir:    cs.ResponseDir,
			}, crawl.WithMetrics(metrics), crawl.WithLogger(o.logger))

			var rows []itemRow
			handler := crawl.Pages(pages, func(_ *crawl.Request, resp *paapi.Response) error {
				rows = append(rows, itemRows(resp.Items().Items())...)
				return nil
			})
			cr := crawl.NewCrawler(c, mw, handler,
				crawl.WithMaxRequests(maxRequests),
				crawl.WithCrawlerLogger(o.logger))

			req := crawl.NewRequest(paapi.OperationItemSearch, paapi.AsinSearchParams(s.index, s.brand, s.page).Values())
			req.Meta = map[string]string{"brand": s.brand}
			cr.Enqueue(req)

			stats, runErr := cr.Run(ctx)
			o.logger.Info().
				Int("requests", stats.Requests).
				Int("responses", stats.Responses).
				Int("retries", stats.Retries).
				Int("failed", stats.Failed).
				Int("items", len(rows)).
				Msg("crawl finished")

			p := printer{w: cmd.OutOrStdout(), format: o.output}
			if err := p.items(rows); err != nil {
				return err
			}
			return runErr
		},
	}
	s.bind(cmd)
	cmd.Flags().IntVar(&pages, "pages", crawl.MaxItemPage, "maximum result pages to fetch")
	cmd.Flags().IntVar(&maxRequests, "max-requests", 0, "stop after this many requests, retries included; 0 is unlimited")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	return cmd
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(o *globalOptions, reg *prometheus.Registry, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	o.logger.Info().Str("addr", addr).Msg("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
