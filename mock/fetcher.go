package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of munidocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ munidocs.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of munidocs.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, keywords []string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, keywords []string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, keywords)
}

var _ munidocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of munidocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
