package repository

import (
	"context"
	"net/url"

	"music-contest/domain/model"
)

// IPlatformHandler is one provider strategy: URL matching plus bounded
// metadata extraction. GetMetadata fails on timeouts, non-success statuses,
// oversized bodies and missing identifiers; the caller decides what a failed
// fetch means for admission.
type IPlatformHandler interface {
	Name() string
	// Matches compares against the parsed host only, never the raw string, so
	// a domain hidden in the path or query cannot spoof a platform.
	Matches(u *url.URL) bool
	GetMetadata(ctx context.Context, rawURL string) (*model.TrackMetadata, error)
}

// IPlatformRegistry resolves a URL to its handler. Order is fixed at
// construction and the first match wins.
type IPlatformRegistry interface {
	Resolve(rawURL string) IPlatformHandler
	Names() []string
}

// IMessagePoster posts display payloads to the public/review channels and is
// implemented by the presentation layer. All methods are best-effort from the
// pipeline's point of view; failures become warnings, never rollbacks.
type IMessagePoster interface {
	PostReview(ctx context.Context, channelID string, payload *model.ReviewPayload) (messageID string, err error)
	PostPublic(ctx context.Context, channelID string, payload *model.PublicPayload) (messageID string, err error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// IMetadataCache shortcuts repeated metadata resolution for the same URL.
// Purely an optimization: a cold cache must behave identically.
type IMetadataCache interface {
	Get(ctx context.Context, rawURL string) (*model.TrackMetadata, error)
	Set(ctx context.Context, rawURL string, md *model.TrackMetadata) error
}

// IEventPublisher fans out accepted submissions to interested consumers.
// Implementations must be nil-safe no-ops when messaging is not configured.
type IEventPublisher interface {
	PublishSubmissionAccepted(ctx context.Context, sub *model.Submission) error
}
