package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/madara"
)

var (
	_ madara.Fetcher       = (*Fetcher)(nil)
	_ madara.Fetcher       = (*PostFetcher)(nil)
	_ madara.FormPoster    = (*PostFetcher)(nil)
	_ madara.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of madara.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// PostFetcher is a mock implementation of madara.Fetcher that also
// implements madara.FormPoster.
type PostFetcher struct {
	Fetcher
	PostFn func(ctx context.Context, url string, form url.Values) (string, error)
}

func (f *PostFetcher) Post(ctx context.Context, url string, form url.Values) (string, error) {
	return f.PostFn(ctx, url, form)
}

// DomainLimiter is a mock implementation of madara.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
