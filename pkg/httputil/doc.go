// Package httputil fetches remote datasets over HTTP.
//
// [Client] issues GET requests with a fixed set of default headers and a
// size limit, retries transient failures with [Retry], and reports every
// request through the observability HTTP hooks.
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried:
//
//   - network errors
//   - 5xx responses
//   - 429 rate limit responses
//
// Everything else (404, malformed URLs, oversize bodies) fails on the
// first attempt:
//
//	client := httputil.NewClient(httputil.WithUserAgent("treezoom/1.0"))
//	data, err := client.Get(ctx, "https://example.com/nyt.json")
//
// Caching is not done here; the pipeline stores fetched bytes in a
// pkg/cache backend keyed by URL.
package httputil
