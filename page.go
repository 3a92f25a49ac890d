package munidocs

import "context"

// Anchor is a hyperlink captured from a rendered page snapshot.
type Anchor struct {
	Href string
	Text string
}

// Page is a handle to one rendered web page. Implementations hide the
// browser-automation details; discovery strategies only need a DOM snapshot
// and the ability to reveal collapsed content.
type Page interface {
	// URL returns the page's final URL after any redirects.
	URL() string

	// HTML returns the current rendered DOM as HTML. When content has been
	// expanded since the last call, the new snapshot reflects it.
	HTML() (string, error)

	// ExpandCollapsed clicks every collapsed element in the current snapshot
	// whose visible text matches any of the keywords (case-insensitive
	// substring match) and returns how many elements were expanded.
	// Individual elements that fail to expand are skipped.
	ExpandCollapsed(keywords []string) (int, error)

	// Close releases the page's browser resources.
	Close() error
}

// AnchorParser scans rendered HTML for anchors.
type AnchorParser interface {
	// Anchors returns the page's anchors with hrefs resolved against pageURL.
	Anchors(html, pageURL string) ([]Anchor, error)
}

// Renderer renders web pages for discovery. Implementations wait up to a
// bounded interval for full interactivity, then return the page with
// whatever DOM state is available rather than failing.
type Renderer interface {
	// Render navigates to the URL and returns a handle to the rendered page.
	// The context controls timeout and cancellation.
	Render(ctx context.Context, url string) (Page, error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
