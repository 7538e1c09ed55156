package pixabay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/pixa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
  "total": 4692,
  "totalHits": 500,
  "hits": [
    {
      "id": 195893,
      "pageURL": "https://pixabay.com/en/blossom-bloom-flower-195893/",
      "type": "photo",
      "tags": "blossom, bloom, flower",
      "previewURL": "https://cdn.pixabay.com/photo/2013/10/15/09/12/flower-195893_150.jpg",
      "webformatURL": "https://pixabay.com/get/35bbf209e13e39d2_640.jpg",
      "largeImageURL": "https://pixabay.com/get/ed6a99fd0a76647_1280.jpg",
      "imageWidth": 4000,
      "imageHeight": 2250,
      "views": 7671,
      "downloads": 6439,
      "likes": 5,
      "comments": 2,
      "user_id": 48777,
      "user": "Josch13"
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/api/", Key: "secret", SafeSearch: true}, nil)
}

func TestSearchPhotos_BuildsQuery(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(sampleBody))
	})

	_, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "yellow flowers", Page: 3, PerPage: 40})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"image_type":  "photo",
		"orientation": "horizontal",
		"safesearch":  "true",
		"page":        "3",
		"per_page":    "40",
		"key":         "secret",
		"q":           "yellow flowers",
	}, got)
}

func TestSearchPhotos_DecodesPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	})

	page, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})
	require.NoError(t, err)

	assert.Equal(t, 500, page.TotalHits)
	assert.Equal(t, 4692, page.Total)
	require.Len(t, page.Items, 1)
	p := page.Items[0]
	assert.Equal(t, 195893, p.ID)
	assert.Equal(t, []string{"blossom", "bloom", "flower"}, p.Tags)
	assert.Equal(t, "https://pixabay.com/get/35bbf209e13e39d2_640.jpg", p.WebformatURL)
	assert.Equal(t, "https://pixabay.com/get/ed6a99fd0a76647_1280.jpg", p.LargeImageURL)
	assert.Equal(t, 5, p.Likes)
	assert.Equal(t, 7671, p.Views)
	assert.Equal(t, 2, p.Comments)
	assert.Equal(t, 6439, p.Downloads)
}

func TestSearchPhotos_MissingTotalHits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": []}`))
	})

	page, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownTotal, page.TotalHits)
	assert.Empty(t, page.Items)
}

func TestSearchPhotos_ServerRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "[ERROR 400] Invalid or missing API key", http.StatusBadRequest)
	})

	_, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})
	require.Error(t, err)

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.ServerRejected, fe.Kind)
	assert.Equal(t, http.StatusBadRequest, fe.StatusCode)
}

func TestSearchPhotos_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.ServerRejected, fe.Kind)
	assert.Equal(t, http.StatusOK, fe.StatusCode)
}

func TestSearchPhotos_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: baseURL, Key: "secret", Timeout: time.Second}, nil)
	_, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.NoResponse, fe.Kind)
	assert.NotContains(t, err.Error(), "secret", "key must not leak into errors")
}

func TestSearchPhotos_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewClient(Options{BaseURL: srv.URL, Key: "secret", Timeout: 50 * time.Millisecond}, nil)
	_, err := c.SearchPhotos(context.Background(), domain.PageRequest{Query: "flower", Page: 1, PerPage: 40})

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.NoResponse, fe.Kind)
}

func TestSearchPhotos_RequestSetupFailed(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		req  domain.PageRequest
	}{
		{
			name: "missing key",
			opts: Options{BaseURL: "https://pixabay.com/api/"},
			req:  domain.PageRequest{Query: "flower", Page: 1, PerPage: 40},
		},
		{
			name: "bad base url",
			opts: Options{BaseURL: "::not a url", Key: "k"},
			req:  domain.PageRequest{Query: "flower", Page: 1, PerPage: 40},
		},
		{
			name: "relative base url",
			opts: Options{BaseURL: "/api/", Key: "k"},
			req:  domain.PageRequest{Query: "flower", Page: 1, PerPage: 40},
		},
		{
			name: "zero page",
			opts: Options{Key: "k"},
			req:  domain.PageRequest{Query: "flower", Page: 0, PerPage: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
			defer srv.Close()

			c := NewClient(tt.opts, nil)
			_, err := c.SearchPhotos(context.Background(), tt.req)

			var fe *domain.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, domain.RequestSetupFailed, fe.Kind)
			assert.Zero(t, calls)
		})
	}
}

func TestRedactKey(t *testing.T) {
	c := NewClient(Options{Key: "secret"}, nil)
	raw, err := c.buildURL(domain.PageRequest{Query: "owl", Page: 1, PerPage: 40})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, raw, nil)
	require.NoError(t, err)
	assert.NotContains(t, redactKey(req.URL), "secret")
	assert.Contains(t, redactKey(req.URL), "q=owl")
}
