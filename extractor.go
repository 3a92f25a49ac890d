package munidocs

import "context"

// TextExtractor extracts plain text from an acquired document file.
type TextExtractor interface {
	// ExtractText reads the document at path and returns up to maxChars of
	// cleaned text. An empty string with a nil error means the document has
	// no extractable text (scanned or image-only); that is an expected
	// outcome, not a failure.
	ExtractText(ctx context.Context, path string, maxChars int) (string, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Used on crawled pages before markdown conversion.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
