package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"

	"music-contest/domain/model"
)

const soundcloudOEmbedEndpoint = "https://soundcloud.com/oembed"

type oembedParams struct {
	Format string `url:"format"`
	URL    string `url:"url"`
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SoundCloudHandler resolves soundcloud.com links through the public oEmbed
// endpoint, which needs no credentials.
type SoundCloudHandler struct {
	fetcher *Fetcher
}

func NewSoundCloudHandler(fetcher *Fetcher) *SoundCloudHandler {
	return &SoundCloudHandler{fetcher: fetcher}
}

func (h *SoundCloudHandler) Name() string { return "SoundCloud" }

func (h *SoundCloudHandler) Matches(u *url.URL) bool {
	return hostMatches(u.Hostname(), "soundcloud.com")
}

func (h *SoundCloudHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing soundcloud url: %w", err)
	}
	canonical := canonicalPage(u)

	values, err := query.Values(oembedParams{Format: "json", URL: canonical})
	if err != nil {
		return nil, fmt.Errorf("building oembed query: %w", err)
	}

	body, err := h.fetcher.Get(ctx, soundcloudOEmbedEndpoint+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching soundcloud oembed: %w", err)
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding soundcloud oembed: %w", err)
	}

	title := resp.Title
	if title == "" {
		title = "SoundCloud Track"
	}
	author := resp.AuthorName
	if author == "" {
		author = "SoundCloud"
	}

	return &model.TrackMetadata{
		TrackID:  lastPathSegment(u),
		Title:    title,
		Author:   author,
		ImageURL: resp.ThumbnailURL,
		EmbedURL: canonical,
	}, nil
}
