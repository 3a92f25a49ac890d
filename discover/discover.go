// Package discover implements the link discovery strategies that run
// against a rendered municipal finance page.
package discover

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openfiscal/munidocs"
)

// Keyword sets driving the strategies. Matching is case-insensitive
// substring matching over anchor text and URLs.
var (
	// BudgetKeywords mark anchors that plausibly lead to financial
	// documents or document listing pages.
	BudgetKeywords = []string{
		"budget",
		"financial",
		"finance",
		"annual report",
		"audited",
		"financial statement",
		"fiscal",
	}

	// ExpansionKeywords select which collapsed page elements are worth
	// clicking open before rescanning.
	ExpansionKeywords = []string{
		"budget",
		"financial",
		"finance",
		"annual report",
		"audited",
		"financial statement",
		"fiscal",
		"previous",
		"archive",
		"year",
		"annual",
		"report",
	}

	// ArchiveKeywords mark anchors that lead to historical document
	// listings. An archive anchor must also match a budget keyword.
	ArchiveKeywords = []string{
		"archive",
		"previous",
		"past",
		"historical",
		"older",
		"prior year",
		"view all",
		"see all",
		"more",
	}
)

// Ensure Engine implements munidocs.Discoverer at compile time.
var _ munidocs.Discoverer = (*Engine)(nil)

// Engine runs four strategies in order against one rendered page: direct
// document anchors, collapsed-content expansion, archive listing links, and
// related budget links. Results are unioned with first-seen dedup. A
// strategy failing is logged and contributes nothing; it never fails the
// whole discovery.
type Engine struct {
	parser munidocs.AnchorParser
	logger *slog.Logger
}

// NewEngine creates a discovery engine.
func NewEngine(parser munidocs.AnchorParser, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{parser: parser, logger: logger}
}

func (e *Engine) Discover(ctx context.Context, page munidocs.Page) (*munidocs.Discovery, error) {
	anchors, err := e.snapshot(page)
	if err != nil {
		return nil, err
	}

	d := &munidocs.Discovery{}
	d.DocumentLinks = munidocs.MergeLinks(d.DocumentLinks, documentAnchors(anchors, page.URL(), munidocs.StrategyDirect)...)

	if expanded, err := e.expandedDocuments(page, d.DocumentLinks); err != nil {
		e.logger.Warn("expansion strategy failed", "page", page.URL(), "error", err)
	} else {
		d.DocumentLinks = munidocs.MergeLinks(d.DocumentLinks, expanded...)
	}

	d.FurtherCrawlLinks = munidocs.MergeLinks(d.FurtherCrawlLinks, archiveAnchors(anchors, page.URL())...)
	d.FurtherCrawlLinks = munidocs.MergeLinks(d.FurtherCrawlLinks, relatedAnchors(anchors, page.URL())...)

	return d, nil
}

func (e *Engine) snapshot(page munidocs.Page) ([]munidocs.Anchor, error) {
	html, err := page.HTML()
	if err != nil {
		return nil, err
	}
	return e.parser.Anchors(html, page.URL())
}

// expandedDocuments clicks keyword-matching collapsed elements open and
// returns the document anchors that only the expanded snapshot contains.
func (e *Engine) expandedDocuments(page munidocs.Page, known []munidocs.DiscoveredLink) ([]munidocs.DiscoveredLink, error) {
	expanded, err := page.ExpandCollapsed(ExpansionKeywords)
	if err != nil {
		return nil, err
	}
	if expanded == 0 {
		return nil, nil
	}

	anchors, err := e.snapshot(page)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(known))
	for _, l := range known {
		seen[l.URL] = true
	}
	var links []munidocs.DiscoveredLink
	for _, l := range documentAnchors(anchors, page.URL(), munidocs.StrategyExpanded) {
		if !seen[l.URL] {
			links = append(links, l)
		}
	}
	return links, nil
}

// documentAnchors filters anchors down to direct document links.
func documentAnchors(anchors []munidocs.Anchor, pageURL, strategy string) []munidocs.DiscoveredLink {
	var links []munidocs.DiscoveredLink
	for _, a := range anchors {
		if !munidocs.IsDocumentURL(a.Href) {
			continue
		}
		links = append(links, munidocs.DiscoveredLink{
			URL:        a.Href,
			Kind:       munidocs.LinkDocument,
			Strategy:   strategy,
			SourcePage: pageURL,
			Year:       munidocs.YearFromURL(a.Href),
		})
	}
	return links
}

// archiveAnchors selects non-document anchors whose text or URL matches
// both an archive keyword and a budget keyword.
func archiveAnchors(anchors []munidocs.Anchor, pageURL string) []munidocs.DiscoveredLink {
	var links []munidocs.DiscoveredLink
	for _, a := range anchors {
		if munidocs.IsDocumentURL(a.Href) {
			continue
		}
		haystack := strings.ToLower(a.Text) + " " + strings.ToLower(a.Href)
		if matchesAny(haystack, ArchiveKeywords) && matchesAny(haystack, BudgetKeywords) {
			links = append(links, munidocs.DiscoveredLink{
				URL:        a.Href,
				Kind:       munidocs.LinkCrawl,
				Strategy:   munidocs.StrategyArchive,
				SourcePage: pageURL,
			})
		}
	}
	return links
}

// relatedAnchors selects non-document anchors whose text or URL matches a
// budget keyword.
func relatedAnchors(anchors []munidocs.Anchor, pageURL string) []munidocs.DiscoveredLink {
	var links []munidocs.DiscoveredLink
	for _, a := range anchors {
		if munidocs.IsDocumentURL(a.Href) {
			continue
		}
		haystack := strings.ToLower(a.Text) + " " + strings.ToLower(a.Href)
		if matchesAny(haystack, BudgetKeywords) {
			links = append(links, munidocs.DiscoveredLink{
				URL:        a.Href,
				Kind:       munidocs.LinkCrawl,
				Strategy:   munidocs.StrategyRelated,
				SourcePage: pageURL,
			})
		}
	}
	return links
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
