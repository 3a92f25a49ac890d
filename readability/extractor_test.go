package readability_test

import (
	"testing"

	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, munidocs.EINVALID, munidocs.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Budget and Financial Reports</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Budget and Financial Reports", result.Title)
}

func TestExtractor_RemovesChrome(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Financial Reports</title></head>
<body>
<nav><a href="/services">City Services Nav</a><a href="/contact">Contact Nav</a></nav>
<article><p>The annual budget and financial statements for the current fiscal year are listed below for download.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "annual budget and financial statements")
	assert.NotContains(t, result.ContentHTML, "City Services Nav")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_PreservesDocumentLinks(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Reports</title></head>
<body>
<article>
<p>Download the <a href="/docs/budget-2024.pdf">2024 Operating Budget</a> below.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "<a")
	assert.Contains(t, result.ContentHTML, "budget-2024.pdf")
}

func TestExtractor_PreservesTables(t *testing.T) {
	t.Parallel()

	// Archive pages commonly list one fiscal year per table row.
	html := `<!DOCTYPE html>
<html>
<head><title>Archive</title></head>
<body>
<article>
<p>Financial reports by year:</p>
<table>
<tr><th>Year</th><th>Document</th></tr>
<tr><td>2023</td><td><a href="/docs/2023.pdf">Annual Report</a></td></tr>
</table>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "<table")
	assert.Contains(t, result.ContentHTML, "2023.pdf")
}

func TestExtractor_PreservesHeadings(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Reports</title></head>
<body>
<article>
<h1>Financial Documents</h1>
<p>Some intro text here.</p>
<h2>Prior Year Budgets</h2>
<p>More content under the subheading.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Financial Documents")
	assert.Contains(t, result.ContentHTML, "Prior Year Budgets")
}
