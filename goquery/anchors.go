// Package goquery parses rendered HTML into the anchors the discovery
// strategies scan.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/openfiscal/munidocs"
)

// Ensure Parser implements munidocs.AnchorParser at compile time.
var _ munidocs.AnchorParser = (*Parser)(nil)

// Parser implements munidocs.AnchorParser over goquery.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Anchors(html, pageURL string) ([]munidocs.Anchor, error) {
	return Anchors(html, pageURL)
}

// Anchors returns every HTTP anchor in html with its href resolved against
// pageURL and its visible text trimmed. Fragments are stripped, and
// self-referential, non-HTTP, and unparseable hrefs are dropped. Anchors are
// deduplicated by resolved URL in document order.
func Anchors(html, pageURL string) ([]munidocs.Anchor, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, munidocs.Errorf(munidocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var anchors []munidocs.Anchor

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		anchors = append(anchors, munidocs.Anchor{
			Href: resolved,
			Text: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})

	return anchors, nil
}

// SameHost reports whether rawURL and baseURL share a host. Exact match;
// subdomains are different hosts.
func SameHost(baseURL, rawURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// resolveURL resolves href against base, strips the fragment, and filters
// links that resolve back to the base page itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
