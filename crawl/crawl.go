// Package crawl follows archive and listing links a bounded number of hops
// deep, returning each visited page as markdown for analysis.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/openfiscal/munidocs"
	"golang.org/x/sync/errgroup"
)

// Crawl bounds. Archive walks are deliberately shallow: the documents
// almost always sit one or two hops from the listing page.
const (
	DefaultMaxDepth    = 2
	DefaultLimit       = 10
	DefaultConcurrency = 5

	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// maxSitemapSeeds caps how many sitemap-discovered URLs augment the
	// seed set.
	maxSitemapSeeds = 5
)

// Ensure Service implements munidocs.CrawlService at compile time.
var _ munidocs.CrawlService = (*Service)(nil)

// Service crawls listing pages over plain HTTP. Pages are fetched with
// retry and per-domain rate limiting, reduced to main content, and
// converted to markdown. Links are followed breadth-first, same-host only,
// optionally filtered by keywords.
type Service struct {
	Fetcher   munidocs.Fetcher
	Parser    munidocs.AnchorParser
	Extractor munidocs.Extractor
	Converter munidocs.Converter

	// Fallback is tried when Extractor finds no content. Optional; with
	// neither set the raw page HTML is converted.
	Fallback munidocs.Extractor

	// Sitemaps, when set, augments the seed set with sitemap URLs matching
	// FollowKeywords.
	Sitemaps munidocs.SitemapService

	// RateLimiter throttles per-host requests. Optional.
	RateLimiter munidocs.DomainLimiter

	// FollowKeywords filter which child links are followed (substring match
	// over anchor text and URL). Empty means follow every same-host link.
	FollowKeywords []string

	// RetryDelays override the fetch retry backoff. Nil uses
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Concurrency int
	Logger      *slog.Logger
}

type fetchResult struct {
	item  Item
	page  *munidocs.CrawledPage
	links []string
	err   error
}

func (s *Service) Crawl(ctx context.Context, seeds []string, opts munidocs.CrawlOptions) ([]*munidocs.CrawledPage, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, u := range seeds {
		frontier.Push(Item{URL: u})
	}
	s.seedFromSitemaps(ctx, seeds, frontier, logger)

	var (
		mu         sync.Mutex
		pages      []*munidocs.CrawledPage
		dispatched int
	)

	for {
		var batch []Item
		for dispatched < limit {
			item, ok := frontier.Pop()
			if !ok {
				break
			}
			batch = append(batch, item)
			dispatched++
		}
		if len(batch) == 0 {
			break
		}

		results := make([]fetchResult, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, item := range batch {
			g.Go(func() error {
				results[i] = s.fetchPage(gctx, item)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, res := range results {
			if res.err != nil {
				logger.Warn("crawl fetch failed", "url", res.item.URL, "error", res.err)
				continue
			}
			mu.Lock()
			pages = append(pages, res.page)
			mu.Unlock()

			if res.item.Depth >= maxDepth {
				continue
			}
			for _, link := range res.links {
				frontier.Push(Item{URL: link, Depth: res.item.Depth + 1})
			}
		}
	}

	return pages, nil
}

// seedFromSitemaps pushes keyword-matching sitemap URLs for each distinct
// seed host, up to maxSitemapSeeds total.
func (s *Service) seedFromSitemaps(ctx context.Context, seeds []string, frontier *Frontier, logger *slog.Logger) {
	if s.Sitemaps == nil || len(seeds) == 0 {
		return
	}

	added := 0
	seenHosts := make(map[string]bool)
	for _, seed := range seeds {
		u, err := url.Parse(seed)
		if err != nil || seenHosts[u.Host] {
			continue
		}
		seenHosts[u.Host] = true

		urls, err := s.Sitemaps.DiscoverURLs(ctx, seed, s.FollowKeywords)
		if err != nil {
			logger.Warn("sitemap discovery failed", "seed", seed, "error", err)
			continue
		}
		for _, su := range urls {
			if added >= maxSitemapSeeds {
				return
			}
			if frontier.Push(Item{URL: su}) {
				added++
			}
		}
	}
}

// fetchPage retrieves one URL and reduces it to markdown.
func (s *Service) fetchPage(ctx context.Context, item Item) fetchResult {
	res := fetchResult{item: item}

	linkURL, err := url.Parse(item.URL)
	if err != nil {
		res.err = err
		return res
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
			res.err = err
			return res
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, item.URL, s.Fetcher.Fetch, delays)
	if err != nil {
		res.err = err
		return res
	}

	children, documents := s.pageLinks(html, item.URL, linkURL)
	res.links = children

	contentHTML := s.extractContent(html)
	markdown, err := s.Converter.Convert(contentHTML)
	if err != nil {
		res.err = err
		return res
	}

	res.page = &munidocs.CrawledPage{
		URL:          item.URL,
		HTML:         html,
		Markdown:     markdown,
		DocumentURLs: documents,
	}
	return res
}

// extractContent reduces a page to its main content, trying the primary
// extractor, then the fallback, then giving up and returning the raw HTML.
func (s *Service) extractContent(html string) string {
	for _, extractor := range []munidocs.Extractor{s.Extractor, s.Fallback} {
		if extractor == nil {
			continue
		}
		if extracted, err := extractor.Extract(html); err == nil && extracted.ContentHTML != "" {
			return extracted.ContentHTML
		}
	}
	return html
}

// pageLinks splits a page's same-host anchors into links worth following
// and document links. Documents are reported, never crawled as pages.
func (s *Service) pageLinks(html, pageURL string, base *url.URL) (children, documents []string) {
	anchors, err := s.Parser.Anchors(html, pageURL)
	if err != nil {
		return nil, nil
	}

	for _, a := range anchors {
		u, err := url.Parse(a.Href)
		if err != nil || u.Host != base.Host {
			continue
		}
		if munidocs.IsDocumentURL(a.Href) {
			documents = append(documents, a.Href)
			continue
		}
		if len(s.FollowKeywords) > 0 && !matchesKeywords(a, s.FollowKeywords) {
			continue
		}
		children = append(children, a.Href)
	}
	return children, documents
}

func matchesKeywords(a munidocs.Anchor, keywords []string) bool {
	haystack := strings.ToLower(a.Text) + " " + strings.ToLower(a.Href)
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
