package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of munidocs.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(ctx context.Context, path string, maxChars int) (string, error)
}

func (e *TextExtractor) ExtractText(ctx context.Context, path string, maxChars int) (string, error) {
	return e.ExtractTextFn(ctx, path, maxChars)
}

var _ munidocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of munidocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*munidocs.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*munidocs.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ munidocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of munidocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
