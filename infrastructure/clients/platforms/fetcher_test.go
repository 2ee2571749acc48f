package platforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1<<20, "test-agent")
	body, err := fetcher.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestFetcherGetRejectsNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1<<20, "test-agent")
	_, err := fetcher.Get(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetcherGetRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 600)))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 512, "test-agent")
	_, err := fetcher.Get(context.Background(), server.URL)
	assert.ErrorContains(t, err, "exceeds")
}

func TestFetcherGetBodyExactlyAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 512)))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 512, "test-agent")
	body, err := fetcher.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, body, 512)
}

func TestFetcherResolveRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/short" {
			http.Redirect(w, r, server.URL+"/song/abc-123", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1<<20, "test-agent")
	final, err := fetcher.ResolveRedirects(context.Background(), server.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/song/abc-123", final)
}

func TestFetcherTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	fetcher := NewFetcher(20*time.Millisecond, 1<<20, "test-agent")
	_, err := fetcher.Get(context.Background(), server.URL)
	assert.Error(t, err)
}
