// Package htmltomarkdown converts crawled page HTML to markdown for the
// page analysis step.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/openfiscal/munidocs"
)

// Ensure Converter implements munidocs.Converter at compile time.
var _ munidocs.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Tables are kept; municipal document
// listings are frequently tabular.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", munidocs.Errorf(munidocs.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
