package dictscrape

import "context"

// DomainLimiter provides per-key rate limiting (one key per source).
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request for the key.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, key string) error
}
