package mock

import (
	"context"

	"github.com/openfiscal/munidocs"
)

var _ munidocs.Page = (*Page)(nil)

// Page is a mock implementation of munidocs.Page.
type Page struct {
	URLFn             func() string
	HTMLFn            func() (string, error)
	ExpandCollapsedFn func(keywords []string) (int, error)
	CloseFn           func() error
}

func (p *Page) URL() string {
	return p.URLFn()
}

func (p *Page) HTML() (string, error) {
	return p.HTMLFn()
}

func (p *Page) ExpandCollapsed(keywords []string) (int, error) {
	return p.ExpandCollapsedFn(keywords)
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

var _ munidocs.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of munidocs.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (munidocs.Page, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (munidocs.Page, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ munidocs.AnchorParser = (*AnchorParser)(nil)

// AnchorParser is a mock implementation of munidocs.AnchorParser.
type AnchorParser struct {
	AnchorsFn func(html, pageURL string) ([]munidocs.Anchor, error)
}

func (p *AnchorParser) Anchors(html, pageURL string) ([]munidocs.Anchor, error) {
	return p.AnchorsFn(html, pageURL)
}
