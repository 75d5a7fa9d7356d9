// Package slog provides logging decorators for novelsrc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Ensure LoggingFetcher implements novelsrc.Fetcher.
var _ novelsrc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   novelsrc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next novelsrc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the request and delegates to the wrapped fetcher. A URL that
// still carries template placeholders is logged as a warning before the
// request is sent.
func (f *LoggingFetcher) Fetch(ctx context.Context, req novelsrc.Request) (html string, err error) {
	if left := novelsrc.UnresolvedPlaceholders(req.URL); len(left) > 0 {
		f.logger.Warn("unresolved placeholders",
			"url", req.URL,
			"placeholders", left,
		)
	}
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"method", method(req),
			"url", req.URL,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func method(req novelsrc.Request) string {
	if req.Method == "" {
		return novelsrc.MethodGet
	}
	return req.Method
}
