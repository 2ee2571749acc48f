// Package webhook delivers display payloads to the public and review channels
// through outbound webhooks. Delivery is best-effort by contract: the
// admission pipeline records failures as warnings and never rolls back a
// committed submission over them.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

type postEnvelope struct {
	ChannelID string      `json:"channel_id"`
	Kind      string      `json:"kind"`
	Payload   interface{} `json:"payload"`
}

type postResult struct {
	MessageID string `json:"message_id"`
}

// Poster implements repository.IMessagePoster over two webhook endpoints.
// Empty endpoint URLs disable the corresponding channel.
type Poster struct {
	client    *http.Client
	publicURL string
	reviewURL string
}

func NewPoster(publicURL, reviewURL string, timeout time.Duration) repository.IMessagePoster {
	return &Poster{
		client:    &http.Client{Timeout: timeout},
		publicURL: publicURL,
		reviewURL: reviewURL,
	}
}

func (p *Poster) PostReview(ctx context.Context, channelID string, payload *model.ReviewPayload) (string, error) {
	return p.post(ctx, p.reviewURL, channelID, "review", payload)
}

func (p *Poster) PostPublic(ctx context.Context, channelID string, payload *model.PublicPayload) (string, error) {
	return p.post(ctx, p.publicURL, channelID, "public", payload)
}

func (p *Poster) post(ctx context.Context, endpoint, channelID, kind string, payload interface{}) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("%s webhook not configured", kind)
	}

	body, err := json.Marshal(postEnvelope{ChannelID: channelID, Kind: kind, Payload: payload})
	if err != nil {
		return "", fmt.Errorf("encoding %s payload: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting %s message: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("posting %s message: unexpected status %d", kind, resp.StatusCode)
	}

	var result postResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding %s message id: %w", kind, err)
	}
	if result.MessageID == "" {
		return "", fmt.Errorf("%s webhook returned no message id", kind)
	}
	return result.MessageID, nil
}

// DeleteMessage removes a previously posted message from either channel. The
// endpoint is picked by channel: the review channel's messages live behind the
// review webhook, everything else behind the public one.
func (p *Poster) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	for _, endpoint := range []string{p.publicURL, p.reviewURL} {
		if endpoint == "" {
			continue
		}
		target := fmt.Sprintf("%s?channel_id=%s&message_id=%s",
			endpoint, url.QueryEscape(channelID), url.QueryEscape(messageID))

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
		if err != nil {
			return err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("deleting message %s: %w", messageID, err)
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode <= 299:
			return nil
		case resp.StatusCode == http.StatusNotFound:
			// Try the other endpoint.
		default:
			return fmt.Errorf("deleting message %s: unexpected status %d", messageID, resp.StatusCode)
		}
	}
	return fmt.Errorf("message %s not found on any channel", messageID)
}
