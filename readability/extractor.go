// Package readability provides a second-chance content extractor. Municipal
// sites are frequently old CMS installs that defeat trafilatura's content
// heuristics; go-readability's DOM scoring often still finds the listing.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/openfiscal/munidocs"
)

// Ensure Extractor implements munidocs.Extractor at compile time.
var _ munidocs.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*munidocs.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, munidocs.Errorf(munidocs.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINTERNAL, "readability extraction failed: %v", err)
	}

	return &munidocs.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
