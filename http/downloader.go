package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openfiscal/munidocs"
)

// DefaultDownloadTimeout bounds one document download. Documents run to
// tens of megabytes on slow municipal servers.
const DefaultDownloadTimeout = 2 * time.Minute

// MaxDownloadBytes caps a single download.
const MaxDownloadBytes = 256 << 20

// Ensure Downloader implements munidocs.Downloader at compile time.
var _ munidocs.Downloader = (*Downloader)(nil)

// Downloader fetches document bytes over HTTP.
type Downloader struct {
	client *http.Client
	logger *slog.Logger
}

// NewDownloader creates a Downloader. A nil logger falls back to the
// default slog logger.
func NewDownloader(logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client: &http.Client{Timeout: DefaultDownloadTimeout},
		logger: logger,
	}
}

// Download fetches the document at url. A non-document content type is
// logged but not fatal; servers routinely mislabel PDFs.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, munidocs.Errorf(munidocs.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "pdf") && !strings.Contains(contentType, "octet-stream") {
		d.logger.Warn("unexpected content type for document", "url", url, "contentType", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, munidocs.Errorf(munidocs.EUNAVAILABLE, "empty response for %s", url)
	}
	return data, nil
}
