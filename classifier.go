package munidocs

import "context"

// Confidence expresses how sure the classifier is about a judgment.
type Confidence string

// Confidence levels, ordered high to low.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the structured judgment for one document.
type Classification struct {
	// DocumentType is a concise label, e.g. "Consolidated Financial
	// Statements" or "Annual Financial Report".
	DocumentType string

	// Year is the primary reporting year ("2023") or a fiscal-year range
	// ("2023-2024") treated as a single opaque value.
	Year string

	Confidence Confidence

	// Rationale is a brief explanation of how the type and year were
	// determined.
	Rationale string
}

// Classifier provides document understanding over extracted text.
type Classifier interface {
	// ClassifyDocument judges the type and year of a document from its
	// extracted text, with the entity name and current filename as context.
	// Transport errors and malformed responses surface as errors; callers
	// recover with a low-confidence fallback name.
	ClassifyDocument(ctx context.Context, text, entityName, filename string) (*Classification, error)

	// IdentifyDocuments scans a crawled page's markdown for links to
	// financial documents and returns them with year/type hints. Relative
	// URLs are returned as found; callers normalize against pageURL.
	IdentifyDocuments(ctx context.Context, markdown, pageURL string) ([]DiscoveredLink, error)
}
