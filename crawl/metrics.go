package crawl

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lgc202/go-paapi/httpx"
)

// Response outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeRetry   = "retry"
	OutcomeGaveUp  = "gave_up"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type Metrics struct {
	Throttled prometheus.Counter
	Expired   prometheus.Counter
	Responses *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
}

// NewMetrics creates the crawl metrics and registers them with reg, when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paapi",
			Subsystem: "crawl",
			Name:      "request_throttled_total",
			Help:      "Responses rejected with RequestThrottled.",
		}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paapi",
			Subsystem: "crawl",
			Name:      "request_expired_total",
			Help:      "Responses rejected with RequestExpired.",
		}),
		Responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paapi",
				Subsystem: "crawl",
				Name:      "responses_total",
				Help:      "Processed responses by outcome.",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "paapi",
				Subsystem: "crawl",
				Name:      "request_duration_seconds",
				Help:      "Service request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Throttled, m.Expired, m.Responses, m.Duration)
	}
	return m
}

func (m *Metrics) throttled() {
	if m != nil {
		m.Throttled.Inc()
	}
}

func (m *Metrics) expired() {
	if m != nil {
		m.Expired.Inc()
	}
}

func (m *Metrics) outcome(o string) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(o).Inc()
}

// AfterHook records the duration of every transport attempt. Install it on
// the httpx client behind the fetcher.
func (m *Metrics) AfterHook() httpx.AfterHook {
	return func(req *http.Request, resp *httpx.Response, err error, dur time.Duration, attempt int) {
		status := "error"
		if resp != nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		m.Duration.WithLabelValues(req.URL.Query().Get("Operation"), status).Observe(dur.Seconds())
	}
}
