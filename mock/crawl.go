package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of munidocs.CrawlService.
type CrawlService struct {
	CrawlFn func(ctx context.Context, urls []string, opts munidocs.CrawlOptions) ([]*munidocs.CrawledPage, error)
}

func (s *CrawlService) Crawl(ctx context.Context, urls []string, opts munidocs.CrawlOptions) ([]*munidocs.CrawledPage, error) {
	return s.CrawlFn(ctx, urls, opts)
}

var _ munidocs.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of munidocs.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}

var _ munidocs.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of munidocs.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, page munidocs.Page) (*munidocs.Discovery, error)
}

func (d *Discoverer) Discover(ctx context.Context, page munidocs.Page) (*munidocs.Discovery, error) {
	return d.DiscoverFn(ctx, page)
}
