package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of munidocs.Classifier.
type Classifier struct {
	ClassifyDocumentFn  func(ctx context.Context, text, entityName, filename string) (*munidocs.Classification, error)
	IdentifyDocumentsFn func(ctx context.Context, markdown, pageURL string) ([]munidocs.DiscoveredLink, error)
}

func (c *Classifier) ClassifyDocument(ctx context.Context, text, entityName, filename string) (*munidocs.Classification, error) {
	return c.ClassifyDocumentFn(ctx, text, entityName, filename)
}

func (c *Classifier) IdentifyDocuments(ctx context.Context, markdown, pageURL string) ([]munidocs.DiscoveredLink, error) {
	return c.IdentifyDocumentsFn(ctx, markdown, pageURL)
}
