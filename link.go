package munidocs

import "context"

// Strategy tags identifying which discovery path produced a link.
const (
	StrategyDirect   = "direct"
	StrategyExpanded = "expanded"
	StrategyArchive  = "archive"
	StrategyRelated  = "related"
	StrategyCrawl    = "crawl"
	StrategyAnalysis = "page_analysis"
	StrategyCached   = "cache"
)

// LinkKind classifies a discovered link.
type LinkKind int

const (
	// LinkDocument is a direct link to a document file.
	LinkDocument LinkKind = iota

	// LinkCrawl is a candidate page for deeper discovery via the crawl
	// service, not itself a document.
	LinkCrawl
)

// DiscoveredLink is an ephemeral value produced during discovery: a URL plus
// how it was found. Links are folded into a CacheRecord or discarded, never
// persisted standalone.
type DiscoveredLink struct {
	URL        string
	Kind       LinkKind
	Strategy   string
	SourcePage string

	// Classification hints, populated when the link came out of page
	// analysis or the cache rather than a plain anchor scan.
	Year       string
	DocType    string
	Confidence Confidence
}

// Discovery holds the deduplicated outcome of running the discovery engine
// against one rendered page.
type Discovery struct {
	DocumentLinks     []DiscoveredLink
	FurtherCrawlLinks []DiscoveredLink
}

// Discoverer runs the discovery strategies against one rendered page.
type Discoverer interface {
	// Discover scans the page and returns document links and candidate
	// crawl links. A strategy failing does not fail discovery; its
	// contribution is simply empty.
	Discover(ctx context.Context, page Page) (*Discovery, error)
}

// MergeLinks appends links not already present (by URL) and returns the
// extended slice. First-seen order and first-seen metadata win.
func MergeLinks(dst []DiscoveredLink, src ...DiscoveredLink) []DiscoveredLink {
	seen := make(map[string]bool, len(dst))
	for _, l := range dst {
		seen[l.URL] = true
	}
	for _, l := range src {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		dst = append(dst, l)
	}
	return dst
}
