package munidocs

import "context"

// Fetcher retrieves a page's HTML over plain HTTP, without JavaScript
// execution. The crawl service uses it for archive and listing pages, which
// are mostly static; discovery proper goes through a Renderer.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// SitemapService discovers URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns sitemap URLs whose path matches any of the
	// keywords (case-insensitive substring). An empty keyword list returns
	// every URL. Sites without sitemaps yield an empty slice, not an error.
	DiscoverURLs(ctx context.Context, baseURL string, keywords []string) ([]string, error)
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}
