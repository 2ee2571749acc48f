package platforms

import (
	"context"
	"fmt"
	"net/url"

	"music-contest/domain/model"
)

// RiffusionHandler scrapes og tags from riffusion.com track pages.
type RiffusionHandler struct {
	fetcher *Fetcher
}

func NewRiffusionHandler(fetcher *Fetcher) *RiffusionHandler {
	return &RiffusionHandler{fetcher: fetcher}
}

func (h *RiffusionHandler) Name() string { return "Riffusion" }

func (h *RiffusionHandler) Matches(u *url.URL) bool {
	return hostMatches(u.Hostname(), "riffusion.com")
}

func (h *RiffusionHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing riffusion url: %w", err)
	}
	canonical := canonicalPage(u)

	body, err := h.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching riffusion page: %w", err)
	}

	og := parseOpenGraph(body)

	return &model.TrackMetadata{
		TrackID:  lastPathSegment(u),
		Title:    scrapedTitle(og, "Riffusion Music"),
		Author:   "Riffusion",
		ImageURL: og.Image,
		EmbedURL: canonical,
	}, nil
}
