package http_test

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	munihttp "github.com/openfiscal/munidocs/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := nethttp.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/robots.txt", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap-index.xml\n", srv.URL)
	})
	mux.HandleFunc("/sitemap-index.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<sitemap><loc>%s/sitemap-pages.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-pages.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>%[1]s/finance/budget-documents</loc></url>
	<url><loc>%[1]s/finance/annual-reports</loc></url>
	<url><loc>%[1]s/parks/trails</loc></url>
</urlset>`, srv.URL)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	srv := sitemapSite(t)
	s := munihttp.NewSitemapService(srv.Client())

	urls, err := s.DiscoverURLs(context.Background(), srv.URL, []string{"budget", "annual-report"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/finance/budget-documents",
		srv.URL + "/finance/annual-reports",
	}, urls)
}

func TestSitemapService_NoKeywordsReturnsAll(t *testing.T) {
	t.Parallel()

	srv := sitemapSite(t)
	s := munihttp.NewSitemapService(srv.Client())

	urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestSitemapService_NoSitemap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.NotFoundHandler())
	defer srv.Close()

	s := munihttp.NewSitemapService(srv.Client())

	urls, err := s.DiscoverURLs(context.Background(), srv.URL, []string{"budget"})
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapService_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	mux := nethttp.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/sitemap.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>%s/finance/fiscal-plan</loc></url>
</urlset>`, srv.URL)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	s := munihttp.NewSitemapService(srv.Client())

	urls, err := s.DiscoverURLs(context.Background(), srv.URL, []string{"fiscal"})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/finance/fiscal-plan"}, urls)
}
