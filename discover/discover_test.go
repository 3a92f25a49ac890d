package discover_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/discover"
	"github.com/openfiscal/munidocs/goquery"
	"github.com/openfiscal/munidocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://calgary.ca/finance/budgets"

// fakePage serves one HTML snapshot before expansion and another after.
func fakePage(before, after string, expandCount int) *mock.Page {
	expanded := false
	return &mock.Page{
		URLFn: func() string { return pageURL },
		HTMLFn: func() (string, error) {
			if expanded {
				return after, nil
			}
			return before, nil
		},
		ExpandCollapsedFn: func(keywords []string) (int, error) {
			expanded = true
			return expandCount, nil
		},
	}
}

func newEngine() *discover.Engine {
	return discover.NewEngine(goquery.NewParser(), nil)
}

func TestEngine_DirectDocuments(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/docs/budget-2024.pdf">2024 Budget</a>
		<a href="/docs/budget-2023.pdf">2023 Budget</a>
		<a href="/about">About us</a>
	</body></html>`
	page := fakePage(html, html, 0)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	require.Len(t, d.DocumentLinks, 2)
	assert.Equal(t, munidocs.DiscoveredLink{
		URL:        "https://calgary.ca/docs/budget-2024.pdf",
		Kind:       munidocs.LinkDocument,
		Strategy:   munidocs.StrategyDirect,
		SourcePage: pageURL,
		Year:       "2024",
	}, d.DocumentLinks[0])
	assert.Equal(t, "2023", d.DocumentLinks[1].Year)
}

func TestEngine_ExpandedDocuments(t *testing.T) {
	t.Parallel()

	before := `<html><body>
		<a href="/docs/budget-2024.pdf">2024 Budget</a>
		<a href="/docs/budget-2023.pdf">2023 Budget</a>
	</body></html>`
	after := `<html><body>
		<a href="/docs/budget-2024.pdf">2024 Budget</a>
		<a href="/docs/budget-2023.pdf">2023 Budget</a>
		<a href="/docs/budget-2022.pdf">2022 Budget</a>
	</body></html>`
	page := fakePage(before, after, 1)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	require.Len(t, d.DocumentLinks, 3)
	assert.Equal(t, munidocs.StrategyDirect, d.DocumentLinks[0].Strategy)
	assert.Equal(t, munidocs.StrategyDirect, d.DocumentLinks[1].Strategy)
	assert.Equal(t, munidocs.StrategyExpanded, d.DocumentLinks[2].Strategy)
	assert.Equal(t, "https://calgary.ca/docs/budget-2022.pdf", d.DocumentLinks[2].URL)
}

func TestEngine_NoExpansionSkipsRescan(t *testing.T) {
	t.Parallel()

	html := `<a href="/docs/budget-2024.pdf">2024 Budget</a>`
	rescans := 0
	page := &mock.Page{
		URLFn: func() string { return pageURL },
		HTMLFn: func() (string, error) {
			rescans++
			return html, nil
		},
		ExpandCollapsedFn: func(keywords []string) (int, error) { return 0, nil },
	}

	_, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, 1, rescans)
}

func TestEngine_ExpansionFailureIsIsolated(t *testing.T) {
	t.Parallel()

	html := `<a href="/docs/budget-2024.pdf">2024 Budget</a>`
	page := &mock.Page{
		URLFn:  func() string { return pageURL },
		HTMLFn: func() (string, error) { return html, nil },
		ExpandCollapsedFn: func(keywords []string) (int, error) {
			return 0, errors.New("detached element")
		},
	}

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, d.DocumentLinks, 1)
}

func TestEngine_ArchiveLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/finance/previous-budgets">Previous budgets</a>
		<a href="/news/archive">News archive</a>
		<a href="/finance/budget-archive.pdf">Budget archive PDF</a>
	</body></html>`
	page := fakePage(html, html, 0)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	var archive []munidocs.DiscoveredLink
	for _, l := range d.FurtherCrawlLinks {
		if l.Strategy == munidocs.StrategyArchive {
			archive = append(archive, l)
		}
	}
	// "News archive" matches an archive keyword but no budget keyword, and
	// the PDF is a document link, not a crawl candidate.
	require.Len(t, archive, 1)
	assert.Equal(t, "https://calgary.ca/finance/previous-budgets", archive[0].URL)
	assert.Equal(t, munidocs.LinkCrawl, archive[0].Kind)
}

func TestEngine_ArchiveLinksMatchOnURL(t *testing.T) {
	t.Parallel()

	// The anchor text says nothing useful; the keywords live in the URL.
	html := `<html><body>
		<a href="/budget-archive/">More</a>
		<a href="/photo-archive/">More</a>
	</body></html>`
	page := fakePage(html, html, 0)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	var archive []munidocs.DiscoveredLink
	for _, l := range d.FurtherCrawlLinks {
		if l.Strategy == munidocs.StrategyArchive {
			archive = append(archive, l)
		}
	}
	require.Len(t, archive, 1)
	assert.Equal(t, "https://calgary.ca/budget-archive/", archive[0].URL)
}

func TestEngine_RelatedLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/finance/annual-reports">Annual reports and statements</a>
		<a href="/parks">Parks</a>
		<a href="/fiscal-plan">Plan</a>
	</body></html>`
	page := fakePage(html, html, 0)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	urls := make([]string, 0, len(d.FurtherCrawlLinks))
	for _, l := range d.FurtherCrawlLinks {
		urls = append(urls, l.URL)
	}
	// "fiscal-plan" matches on the URL even though the text does not.
	assert.Contains(t, urls, "https://calgary.ca/finance/annual-reports")
	assert.Contains(t, urls, "https://calgary.ca/fiscal-plan")
	assert.NotContains(t, urls, "https://calgary.ca/parks")
}

func TestEngine_StrategiesDeduplicate(t *testing.T) {
	t.Parallel()

	// The same listing page matches both the archive and related strategies;
	// it must appear once, tagged by the first strategy that found it.
	html := `<a href="/finance/budget-archive">Budget archive</a>`
	page := fakePage(html, html, 0)

	d, err := newEngine().Discover(context.Background(), page)
	require.NoError(t, err)

	require.Len(t, d.FurtherCrawlLinks, 1)
	assert.Equal(t, munidocs.StrategyArchive, d.FurtherCrawlLinks[0].Strategy)
}
