// Package crawl drives paged searches through a priority queue, retrying
// throttled and expired requests with a growing pause.
//
// Retries here are per crawl request and sit above the transport: the
// fetcher should be built with a single transport attempt so that a
// throttled page goes back through the queue instead of blocking it.
package crawl
