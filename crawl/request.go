package crawl

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"
)

// Request is one queued operation.
type Request struct {
	Operation string
	Params    map[string]string

	// Priority orders the queue; higher runs first.
	Priority int

	// RetryTimes counts the retries so far.
	RetryTimes int

	// Timeout is the retry pause seed; zero means one second.
	Timeout time.Duration

	// Meta carries caller state, e.g. the brand a page belongs to.
	Meta map[string]string
}

// NewRequest returns a request for operation with a copy of params.
func NewRequest(operation string, params map[string]string) *Request {
	return &Request{Operation: operation, Params: maps.Clone(params)}
}

func (r *Request) clone() *Request {
	cp := *r
	cp.Params = maps.Clone(r.Params)
	cp.Meta = maps.Clone(r.Meta)
	return &cp
}

// String renders the operation and its sorted parameters.
func (r *Request) String() string {
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(r.Operation)
	for i, k := range keys {
		if i == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		fmt.Fprintf(&b, "%s=%s", k, r.Params[k])
	}
	return b.String()
}
