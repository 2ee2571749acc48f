package platforms

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func fixedResponseFetcher(status int, body string) *Fetcher {
	fetcher := NewFetcher(0, 1<<20, "test")
	fetcher.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
			Header:     make(http.Header),
		}, nil
	})}
	return fetcher
}

func TestExtractYouTubeVideoID(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=share", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch", ""},
		{"https://www.youtube.com/watch?v=tooshort", ""},
		{"https://www.youtube.com/watch?v=waytoolongtobeavideoid", ""},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.rawURL)
		require.NoError(t, err, tt.rawURL)
		assert.Equal(t, tt.want, extractYouTubeVideoID(u), tt.rawURL)
	}
}

type stubVideoAPI struct {
	title, channel, thumbnail string
	err                       error
	calls                     int
}

func (s *stubVideoAPI) VideoInfo(_ context.Context, _ string) (string, string, string, error) {
	s.calls++
	return s.title, s.channel, s.thumbnail, s.err
}

func TestYouTubeHandlerUsesAPI(t *testing.T) {
	api := &stubVideoAPI{title: "Never Gonna Give You Up", channel: "Rick Astley", thumbnail: "https://i.ytimg.com/x.jpg"}
	handler := NewYouTubeHandler(NewFetcher(0, 1<<20, "test"), api)

	md, err := handler.GetMetadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "dQw4w9WgXcQ", md.TrackID)
	assert.Equal(t, "Never Gonna Give You Up", md.Title)
	assert.Equal(t, "Rick Astley", md.Author)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", md.EmbedURL)
}

func TestYouTubeHandlerRejectsMalformedID(t *testing.T) {
	handler := NewYouTubeHandler(NewFetcher(0, 1<<20, "test"), nil)
	_, err := handler.GetMetadata(context.Background(), "https://www.youtube.com/watch?v=nope")
	assert.Error(t, err)
}

func TestYouTubeHandlerScrapeFallback(t *testing.T) {
	// API errors fall through to scraping the canonical watch page.
	api := &stubVideoAPI{err: assert.AnError}
	fetcher := fixedResponseFetcher(200, `<html><head>
		<meta property="og:title" content="Scraped Title">
		<meta property="og:image" content="https://i.ytimg.com/scraped.jpg">
		<link itemprop="name" content="Scraped Channel">
	</head><body></body></html>`)

	handler := NewYouTubeHandler(fetcher, api)
	md, err := handler.GetMetadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "Scraped Title", md.Title)
	assert.Equal(t, "Scraped Channel", md.Author)
	assert.Equal(t, "https://i.ytimg.com/scraped.jpg", md.ImageURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", md.EmbedURL)
}
