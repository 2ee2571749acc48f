package platforms

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"music-contest/domain/model"
)

// UdioHandler scrapes og tags from udio.com track pages.
type UdioHandler struct {
	fetcher *Fetcher
}

func NewUdioHandler(fetcher *Fetcher) *UdioHandler {
	return &UdioHandler{fetcher: fetcher}
}

func (h *UdioHandler) Name() string { return "Udio" }

func (h *UdioHandler) Matches(u *url.URL) bool {
	return hostMatches(u.Hostname(), "udio.com")
}

func (h *UdioHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing udio url: %w", err)
	}
	canonical := canonicalPage(u)

	body, err := h.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching udio page: %w", err)
	}

	og := parseOpenGraph(body)

	return &model.TrackMetadata{
		TrackID:  lastPathSegment(u),
		Title:    scrapedTitle(og, "Udio Music"),
		Author:   "Udio",
		ImageURL: og.Image,
		EmbedURL: canonical,
	}, nil
}

func lastPathSegment(u *url.URL) string {
	path := strings.TrimRight(u.EscapedPath(), "/")
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
