package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music-contest/domain/model"
)

func TestNewPubSubWithoutProjectID(t *testing.T) {
	// No project id means messaging is off, not broken.
	client, err := NewPubSub(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestPublishWithoutClient(t *testing.T) {
	publisher := NewEventPublisher(nil, "submissions-accepted")

	err := publisher.PublishSubmissionAccepted(context.Background(), &model.Submission{
		SubmissionID: 1,
		ContestID:    "summer-2025",
	})
	assert.NoError(t, err)
}
