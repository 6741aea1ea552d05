package crawl

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lgc202/go-paapi/paapi"
)

// Fetcher performs one operation and returns the raw body. When a response
// arrived its body is returned even alongside an error. *paapi.Client
// satisfies it.
type Fetcher interface {
	Raw(ctx context.Context, operation string, params map[string]string) ([]byte, error)
}

// Handler consumes a parsed response and may return follow-up requests,
// such as the next page.
type Handler func(ctx context.Context, req *Request, resp *paapi.Response) ([]*Request, error)

// Stats summarizes a Run.
type Stats struct {
	Requests  int `json:"requests"`
	Responses int `json:"responses"`
	Retries   int `json:"retries"`
	Failed    int `json:"failed"`
}

// Crawler runs queued requests one at a time, highest priority first and
// in enqueue order among equals.
type Crawler struct {
	fetch   Fetcher
	mw      *Middleware
	handle  Handler
	logger  zerolog.Logger
	queue   requestQueue
	seq     uint64
	maxReqs int
}

type CrawlerOption func(*Crawler)

// WithMaxRequests stops the crawl after n fetches; 0 means no limit.
func WithMaxRequests(n int) CrawlerOption {
	return func(c *Crawler) { c.maxReqs = n }
}

func WithCrawlerLogger(l zerolog.Logger) CrawlerOption {
	return func(c *Crawler) { c.logger = l }
}

func NewCrawler(f Fetcher, mw *Middleware, h Handler, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetch:  f,
		mw:     mw,
		handle: h,
		logger: log.Logger.With().Str("component", "crawler").Logger(),
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c
}

// Enqueue adds requests to the queue. It must not be called concurrently with Run.
func (c *Crawler) Enqueue(reqs ...*Request) {
	for _, r := range reqs {
		if r == nil {
			continue
		}
		c.seq++
		heap.Push(&c.queue, &queued{req: r, seq: c.seq})
	}
}

// Len reports the number of queued requests.
func (c *Crawler) Len() int { return c.queue.Len() }

// Run drains the queue. A failed request is logged and counted, and the
// crawl continues; the failures are returned joined. Run stops early only
// when ctx is done.
func (c *Crawler) Run(ctx context.Context) (Stats, error) {
	var (
		stats Stats
		errs  []error
	)
	for c.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if c.maxReqs > 0 && stats.Requests >= c.maxReqs {
			c.logger.Info().Int("pending", c.queue.Len()).Msg("request limit reached")
			break
		}
		req := heap.Pop(&c.queue).(*queued).req
		stats.Requests++

		next, err := c.step(ctx, req, &stats)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Failed++
			c.logger.Error().Err(err).Stringer("request", req).Msg("request failed")
			errs = append(errs, fmt.Errorf("%s: %w", req, err))
			continue
		}
		c.Enqueue(next...)
	}
	return stats, errors.Join(errs...)
}

func (c *Crawler) step(ctx context.Context, req *Request, stats *Stats) ([]*Request, error) {
	body, ferr := c.fetch.Raw(ctx, req.Operation, req.Params)
	if body == nil {
		if ferr == nil {
			ferr = errors.New("crawl: empty response")
		}
		return nil, ferr
	}

	retry, resp, err := c.mw.Process(ctx, req, body)
	switch {
	case err != nil:
		return nil, err
	case retry != nil:
		stats.Retries++
		return []*Request{retry}, nil
	}
	stats.Responses++
	if c.handle == nil {
		return nil, nil
	}
	return c.handle(ctx, req, resp)
}

type queued struct {
	req *Request
	seq uint64
}

// requestQueue is a max-heap on priority, FIFO among equal priorities.
type requestQueue []*queued

func (q requestQueue) Len() int { return len(q) }

func (q requestQueue) Less(i, j int) bool {
	if q[i].req.Priority != q[j].req.Priority {
		return q[i].req.Priority > q[j].req.Priority
	}
	return q[i].seq < q[j].seq
}

func (q requestQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *requestQueue) Push(x any) { *q = append(*q, x.(*queued)) }

func (q *requestQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
