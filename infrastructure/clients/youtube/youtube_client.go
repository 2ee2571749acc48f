package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client is a read-only YouTube Data API v3 client in API-key mode. It backs
// the YouTube platform handler when an API key is configured; without one the
// handler scrapes the watch page instead.
type Client struct {
	service *youtube.Service
}

func NewYouTubeClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// VideoInfo looks up a video's snippet and returns its title, channel name
// and best available thumbnail.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (string, string, string, error) {
	resp, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", "", "", fmt.Errorf("listing video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return "", "", "", fmt.Errorf("video %s not found", videoID)
	}

	snippet := resp.Items[0].Snippet
	thumbnail := ""
	if snippet.Thumbnails != nil {
		switch {
		case snippet.Thumbnails.Maxres != nil:
			thumbnail = snippet.Thumbnails.Maxres.Url
		case snippet.Thumbnails.High != nil:
			thumbnail = snippet.Thumbnails.High.Url
		case snippet.Thumbnails.Default != nil:
			thumbnail = snippet.Thumbnails.Default.Url
		}
	}
	return snippet.Title, snippet.ChannelTitle, thumbnail, nil
}
