package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of novelsrc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req novelsrc.Request) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req novelsrc.Request) (string, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ novelsrc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of novelsrc.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
