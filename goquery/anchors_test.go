package goquery_test

import (
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchors(t *testing.T) {
	t.Parallel()

	t.Run("ResolvesRelativeHrefs", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<a href="/documents/budget-2024.pdf">2024 Budget</a>
			<a href="archives">Budget Archives</a>
		</body></html>`

		anchors, err := goquery.Anchors(html, "https://calgary.ca/finance/budgets")
		require.NoError(t, err)
		assert.Equal(t, []munidocs.Anchor{
			{Href: "https://calgary.ca/documents/budget-2024.pdf", Text: "2024 Budget"},
			{Href: "https://calgary.ca/finance/archives", Text: "Budget Archives"},
		}, anchors)
	})

	t.Run("SkipsNonHTTPLinks", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<a href="mailto:finance@calgary.ca">Email</a>
			<a href="javascript:void(0)">Expand</a>
			<a href="tel:311">Call</a>
			<a href="/budget.pdf">Budget</a>
		</body></html>`

		anchors, err := goquery.Anchors(html, "https://calgary.ca/finance")
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.Equal(t, "https://calgary.ca/budget.pdf", anchors[0].Href)
	})

	t.Run("DedupesAndStripsFragments", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<a href="/budget.pdf">Budget</a>
			<a href="/budget.pdf#page=2">Budget again</a>
			<a href="#section">Jump</a>
		</body></html>`

		anchors, err := goquery.Anchors(html, "https://calgary.ca/finance")
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.Equal(t, "https://calgary.ca/budget.pdf", anchors[0].Href)
	})

	t.Run("NormalizesAnchorText", func(t *testing.T) {
		t.Parallel()
		html := `<a href="/a.pdf"><span>Annual</span>
			<span>Report</span></a>`

		anchors, err := goquery.Anchors(html, "https://calgary.ca/")
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.Equal(t, "Annual Report", anchors[0].Text)
	})
}

func TestSameHost(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.SameHost("https://calgary.ca/finance", "https://calgary.ca/budget.pdf"))
	assert.False(t, goquery.SameHost("https://calgary.ca/finance", "https://assets.calgary.ca/budget.pdf"))
	assert.False(t, goquery.SameHost("://bad", "https://calgary.ca/"))
}
