package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"music-contest/domain/model"
)

const spotifyOEmbedEndpoint = "https://open.spotify.com/oembed"

// SpotifyHandler resolves open.spotify.com track links through Spotify's
// public oEmbed endpoint.
type SpotifyHandler struct {
	fetcher *Fetcher
}

func NewSpotifyHandler(fetcher *Fetcher) *SpotifyHandler {
	return &SpotifyHandler{fetcher: fetcher}
}

func (h *SpotifyHandler) Name() string { return "Spotify" }

func (h *SpotifyHandler) Matches(u *url.URL) bool {
	return hostMatches(u.Hostname(), "spotify.com")
}

func (h *SpotifyHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing spotify url: %w", err)
	}

	trackID := extractSpotifyTrackID(u)
	if trackID == "" {
		return nil, fmt.Errorf("no track id in %q", rawURL)
	}
	canonical := "https://open.spotify.com/track/" + trackID

	values, err := query.Values(oembedParams{Format: "json", URL: canonical})
	if err != nil {
		return nil, fmt.Errorf("building oembed query: %w", err)
	}

	body, err := h.fetcher.Get(ctx, spotifyOEmbedEndpoint+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching spotify oembed: %w", err)
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding spotify oembed: %w", err)
	}

	title := resp.Title
	if title == "" {
		title = "Spotify Track"
	}
	author := resp.AuthorName
	if author == "" {
		author = "Spotify"
	}

	return &model.TrackMetadata{
		TrackID:  trackID,
		Title:    title,
		Author:   author,
		ImageURL: resp.ThumbnailURL,
		EmbedURL: canonical,
	}, nil
}

func extractSpotifyTrackID(u *url.URL) string {
	const prefix = "/track/"
	idx := strings.Index(u.Path, prefix)
	if idx < 0 {
		return ""
	}
	id := u.Path[idx+len(prefix):]
	if cut := strings.IndexByte(id, '/'); cut >= 0 {
		id = id[:cut]
	}
	return id
}
