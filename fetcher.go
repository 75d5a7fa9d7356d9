package novelsrc

import "context"

// Fetcher retrieves raw page bodies. The core never performs network I/O
// itself; implementations live in http/ and rod/.
type Fetcher interface {
	// Fetch performs the request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req Request) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// VisitedSet records URLs that have already been processed.
type VisitedSet interface {
	// TestAndAdd reports whether url was recorded before, then records it.
	// Implementations may report false positives.
	TestAndAdd(url string) bool
}
