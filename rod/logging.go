package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/openfiscal/munidocs"
)

// Ensure LoggingRenderer implements munidocs.Renderer.
var _ munidocs.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with render timing logs.
type LoggingRenderer struct {
	next   munidocs.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next munidocs.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs the URL being rendered and delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (page munidocs.Page, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
