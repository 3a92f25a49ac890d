// Package rod renders municipal web pages with headless Chrome. Municipal
// finance pages are frequently JavaScript-heavy, with document listings
// behind accordions and "previous years" toggles, so discovery runs against
// a real browser DOM rather than raw HTTP responses.
package rod

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/openfiscal/munidocs"
)

// DefaultLoadTimeout bounds how long Render waits for the load event before
// proceeding with whatever DOM state is available.
const DefaultLoadTimeout = 20 * time.Second

// collapsedSelectors match the collapsed-content idioms seen across
// municipal sites.
var collapsedSelectors = []string{
	`button[aria-expanded="false"]`,
	`details:not([open])`,
	`.accordion:not(.active)`,
	`[class*="collapse"]:not(.show)`,
	`[role="button"][aria-expanded="false"]`,
}

// Ensure Renderer implements munidocs.Renderer at compile time.
var _ munidocs.Renderer = (*Renderer)(nil)

// Renderer implements munidocs.Renderer over a managed headless Chrome
// browser. Safe for concurrent use.
type Renderer struct {
	manager     *BrowserManager
	loadTimeout time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLoadTimeout sets how long Render waits for the page load event.
func WithLoadTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.loadTimeout = d
	}
}

// NewRenderer creates a Renderer backed by a launched headless browser.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		manager:     manager,
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render navigates to the URL and returns a handle to the rendered page.
// A page that never fires its load event within the timeout is returned
// anyway; a partial DOM still yields usable anchors.
func (r *Renderer) Render(ctx context.Context, url string) (munidocs.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		page.Close()
		return nil, err
	}
	_ = page.Timeout(r.loadTimeout).WaitLoad()

	r.manager.IncrementPageCount()
	return &Page{page: page, url: url}, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// Ensure Page implements munidocs.Page at compile time.
var _ munidocs.Page = (*Page)(nil)

// Page is a live handle to one rendered browser page.
type Page struct {
	page *rod.Page
	url  string
}

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil || info.URL == "" {
		return p.url
	}
	return info.URL
}

func (p *Page) HTML() (string, error) {
	return p.page.HTML()
}

// ExpandCollapsed clicks open every collapsed element whose visible text
// matches one of the keywords. Elements that fail to click (detached,
// covered, gone) are skipped.
func (p *Page) ExpandCollapsed(keywords []string) (int, error) {
	expanded := 0
	for _, selector := range collapsedSelectors {
		elements, err := p.page.Elements(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			text, err := el.Text()
			if err != nil {
				continue
			}
			if !matchesKeyword(text, keywords) {
				continue
			}
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				continue
			}
			expanded++
		}
	}

	// Details elements open reliably via the DOM even when a click misses
	// the summary box.
	if res, err := p.page.Eval(`() => {
		let n = 0;
		document.querySelectorAll('details:not([open])').forEach(d => { d.open = true; n++; });
		return n;
	}`); err == nil {
		expanded += res.Value.Int()
	}

	if expanded > 0 {
		// Give triggered scripts a moment to inject the revealed content.
		p.page.WaitRequestIdle(2*time.Second, nil, nil, nil)()
	}
	return expanded, nil
}

func (p *Page) Close() error {
	return p.page.Close()
}

func matchesKeyword(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
