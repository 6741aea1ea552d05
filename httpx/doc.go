// Package httpx is the HTTP transport under the paapi client:
// - tuned transports with sane defaults
// - one freshly built request per attempt, so signed URLs can be re-signed
// - retry with exponential backoff and jitter, driven by status, network
//   errors and an optional body classifier
// - an error type carrying status, request id, retry-after, attempts and a
//   truncated body
// - hook points for logging and metrics without hard dependencies
package httpx
