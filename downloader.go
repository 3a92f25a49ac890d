package munidocs

import "context"

// Downloader fetches document bytes from a URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}
