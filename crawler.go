package munidocs

import "context"

// CrawledPage is one page returned by the crawl service. DocumentURLs holds
// the same-host document links found on the page; documents are reported
// here rather than crawled.
type CrawledPage struct {
	URL          string
	HTML         string
	Markdown     string
	DocumentURLs []string
}

// CrawlOptions bound a crawl run.
type CrawlOptions struct {
	// MaxDepth is how many link hops from a seed URL are followed.
	MaxDepth int

	// Limit caps the total number of pages returned.
	Limit int
}

// CrawlService fetches additional pages reachable from a set of seed URLs.
// Consumed by the pipeline to follow "further-crawl" links that discovery
// classified as candidate pages rather than documents.
type CrawlService interface {
	Crawl(ctx context.Context, urls []string, opts CrawlOptions) ([]*CrawledPage, error)
}
