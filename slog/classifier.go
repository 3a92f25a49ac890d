package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/openfiscal/munidocs"
)

// Ensure LoggingClassifier implements munidocs.Classifier.
var _ munidocs.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with per-call logging. Model calls are
// the slowest and most failure-prone stage, so every call is logged with its
// duration and outcome.
type LoggingClassifier struct {
	next   munidocs.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next munidocs.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// ClassifyDocument delegates to the wrapped classifier and logs the outcome.
func (c *LoggingClassifier) ClassifyDocument(ctx context.Context, text, entityName, filename string) (cls *munidocs.Classification, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"entity", entityName,
			"filename", filename,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		}
		if cls != nil {
			attrs = append(attrs,
				"documentType", cls.DocumentType,
				"year", cls.Year,
				"confidence", cls.Confidence,
			)
		}
		c.logger.Info("classify document", attrs...)
	}(time.Now())
	return c.next.ClassifyDocument(ctx, text, entityName, filename)
}

// IdentifyDocuments delegates to the wrapped classifier and logs the outcome.
func (c *LoggingClassifier) IdentifyDocuments(ctx context.Context, markdown, pageURL string) (links []munidocs.DiscoveredLink, err error) {
	defer func(begin time.Time) {
		c.logger.Info("identify documents",
			"url", pageURL,
			"chars", len(markdown),
			"found", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.IdentifyDocuments(ctx, markdown, pageURL)
}
