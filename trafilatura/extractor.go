// Package trafilatura reduces crawled municipal pages to their main
// content, stripping navigation, headers, and footers before markdown
// conversion.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/openfiscal/munidocs"
	"golang.org/x/net/html"
)

// Ensure Extractor implements munidocs.Extractor at compile time.
var _ munidocs.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content as clean HTML plus its title.
func (e *Extractor) Extract(rawHTML string) (*munidocs.ExtractResult, error) {
	if rawHTML == "" {
		return nil, munidocs.Errorf(munidocs.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &munidocs.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
