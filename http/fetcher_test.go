package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/openfiscal/munidocs"
	munihttp "github.com/openfiscal/munidocs/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("<html><body>Budgets</body></html>"))
	}))
	defer srv.Close()

	f := munihttp.NewFetcher()
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Budgets")
}

func TestFetcher_FetchNonOK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.NotFound(w, r)
	}))
	defer srv.Close()

	f := munihttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Equal(t, munidocs.EUNAVAILABLE, munidocs.ErrorCode(err))
}

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	pdf := []byte("%PDF-1.4 fake document body")
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	d := munihttp.NewDownloader(nil)

	data, err := d.Download(context.Background(), srv.URL+"/budget.pdf")
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestDownloader_DownloadToleratesWrongContentType(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("%PDF-1.4 mislabeled"))
	}))
	defer srv.Close()

	d := munihttp.NewDownloader(nil)

	data, err := d.Download(context.Background(), srv.URL+"/budget.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDownloader_DownloadErrors(t *testing.T) {
	t.Parallel()

	t.Run("NotFound", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			nethttp.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := munihttp.NewDownloader(nil).Download(context.Background(), srv.URL)
		assert.Equal(t, munidocs.EUNAVAILABLE, munidocs.ErrorCode(err))
	})

	t.Run("EmptyBody", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
		defer srv.Close()

		_, err := munihttp.NewDownloader(nil).Download(context.Background(), srv.URL)
		assert.Equal(t, munidocs.EUNAVAILABLE, munidocs.ErrorCode(err))
	})
}
