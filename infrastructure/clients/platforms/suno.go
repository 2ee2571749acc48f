package platforms

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"music-contest/domain/model"
)

// SunoHandler resolves suno.com links. Suno share links redirect to a
// canonical /song/<id> page; the song page itself renders client-side, so the
// title is not scrapable and a generic one is used. The cover image lives at
// a predictable CDN path keyed by the song id.
type SunoHandler struct {
	fetcher *Fetcher
}

func NewSunoHandler(fetcher *Fetcher) *SunoHandler {
	return &SunoHandler{fetcher: fetcher}
}

func (h *SunoHandler) Name() string { return "Suno" }

func (h *SunoHandler) Matches(u *url.URL) bool {
	return hostMatches(u.Hostname(), "suno.com")
}

func (h *SunoHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	finalURL, err := h.fetcher.ResolveRedirects(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("resolving suno link: %w", err)
	}

	songID := extractSunoSongID(finalURL)
	if songID == "" {
		return nil, fmt.Errorf("no song id in %q", finalURL)
	}

	return &model.TrackMetadata{
		TrackID:  songID,
		Title:    "Suno AI Music",
		Author:   "Suno",
		ImageURL: fmt.Sprintf("https://cdn2.suno.ai/image_large_%s.jpeg", songID),
		EmbedURL: fmt.Sprintf("https://suno.com/song/%s", songID),
	}, nil
}

func extractSunoSongID(rawURL string) string {
	const marker = "suno.com/song/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return ""
	}
	id := rawURL[idx+len(marker):]
	if cut := strings.IndexAny(id, "?#/"); cut >= 0 {
		id = id[:cut]
	}
	return id
}
