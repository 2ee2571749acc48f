package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"music-contest/domain/model"
	"music-contest/domain/repository"
	"music-contest/infrastructure/logger"
)

// NewPubSub connects to the project. An empty project id means messaging is
// deliberately disabled and yields a nil client without complaint; callers
// treat an actual connection failure the same way, but get the error to log.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, nil
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}
	return client, nil
}

// EventPublisher publishes accepted submissions to a Pub/Sub topic. A nil
// client makes every publish a no-op, so messaging stays optional.
type EventPublisher struct {
	client *pubsub.Client
	topic  string
}

func NewEventPublisher(client *pubsub.Client, topic string) repository.IEventPublisher {
	return &EventPublisher{client: client, topic: topic}
}

func (p *EventPublisher) PublishSubmissionAccepted(ctx context.Context, sub *model.Submission) error {
	if p.client == nil {
		return nil
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission event: %w", err)
	}

	topic := p.client.Topic(p.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking topic %s: %w", p.topic, err)
	}
	if !exists {
		if _, err := p.client.CreateTopic(ctx, p.topic); err != nil {
			return fmt.Errorf("creating topic %s: %w", p.topic, err)
		}
		topic = p.client.Topic(p.topic)
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return fmt.Errorf("publishing submission event: %w", err)
	}

	logger.GetLogger().
		WithField("server_id", serverID).
		WithField("submission_id", sub.SubmissionID).
		Info("Submission event published")
	return nil
}
