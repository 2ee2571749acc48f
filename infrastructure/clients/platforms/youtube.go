package platforms

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"music-contest/domain/model"
	"music-contest/infrastructure/logger"
)

// VideoAPI is the optional YouTube Data API backend. When nil the handler
// falls back to scraping the watch page.
type VideoAPI interface {
	VideoInfo(ctx context.Context, videoID string) (title, channel, thumbnail string, err error)
}

var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeHandler resolves youtube.com and youtu.be links. All link shapes
// (watch?v=, youtu.be/, shorts/, embed/) collapse to the same canonical
// watch URL so a re-shared short cannot bypass submission dedup.
type YouTubeHandler struct {
	fetcher *Fetcher
	api     VideoAPI
}

func NewYouTubeHandler(fetcher *Fetcher, api VideoAPI) *YouTubeHandler {
	return &YouTubeHandler{fetcher: fetcher, api: api}
}

func (h *YouTubeHandler) Name() string { return "YouTube" }

func (h *YouTubeHandler) Matches(u *url.URL) bool {
	host := u.Hostname()
	return hostMatches(host, "youtube.com") || hostMatches(host, "youtu.be")
}

func (h *YouTubeHandler) GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing youtube url: %w", err)
	}

	videoID := extractYouTubeVideoID(u)
	if videoID == "" {
		return nil, fmt.Errorf("no video id in %q", rawURL)
	}
	canonical := "https://www.youtube.com/watch?v=" + videoID

	if h.api != nil {
		title, channel, thumbnail, err := h.api.VideoInfo(ctx, videoID)
		if err == nil {
			return &model.TrackMetadata{
				TrackID:  videoID,
				Title:    title,
				Author:   channel,
				ImageURL: thumbnail,
				EmbedURL: canonical,
			}, nil
		}
		logger.GetLogger().
			WithField("error", err).
			WithField("video_id", videoID).
			Warn("YouTube API lookup failed, falling back to scrape")
	}

	body, err := h.fetcher.Get(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("fetching youtube page: %w", err)
	}

	og := parseOpenGraph(body)
	author := og.Author
	if author == "" {
		author = "YouTube"
	}

	return &model.TrackMetadata{
		TrackID:  videoID,
		Title:    scrapedTitle(og, "YouTube Video"),
		Author:   author,
		ImageURL: og.Image,
		EmbedURL: canonical,
	}, nil
}

// extractYouTubeVideoID pulls the 11-character id out of any supported link
// shape, returning "" when none is present or the candidate is malformed.
func extractYouTubeVideoID(u *url.URL) string {
	var candidate string
	switch {
	case hostMatches(u.Hostname(), "youtu.be"):
		candidate = strings.Trim(u.Path, "/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		candidate = strings.TrimPrefix(u.Path, "/shorts/")
	case strings.HasPrefix(u.Path, "/embed/"):
		candidate = strings.TrimPrefix(u.Path, "/embed/")
	default:
		candidate = u.Query().Get("v")
	}
	if cut := strings.IndexAny(candidate, "/?&"); cut >= 0 {
		candidate = candidate[:cut]
	}
	if !youtubeIDPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}
