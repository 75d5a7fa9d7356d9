package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/novelsrc"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, req novelsrc.Request) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays performs req, retrying failed attempts after each of
// delays in turn. Errors that a retry cannot fix (not found, invalid, not
// implemented) are returned immediately. The logger, if provided, is called
// for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, req novelsrc.Request, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if permanent(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s %s (attempt %d): %v", req.Method, req.URL, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func permanent(err error) bool {
	switch novelsrc.ErrorCode(err) {
	case novelsrc.ENOTFOUND, novelsrc.EINVALID, novelsrc.ENOTIMPLEMENTED:
		return true
	}
	return false
}
