package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"music-contest/domain/model"
	"music-contest/domain/repository"
)

const (
	metadataKeyPrefix = "metadata:"
	metadataTTL       = 6 * time.Hour
)

// MetadataCache keeps resolved track metadata in Redis keyed by the submitted
// URL. With a nil client every lookup is a miss and every write a no-op, so a
// deployment without Redis behaves exactly like a cold cache.
type MetadataCache struct {
	client *redis.Client
}

func NewMetadataCache(client *redis.Client) repository.IMetadataCache {
	return &MetadataCache{client: client}
}

func (c *MetadataCache) Get(ctx context.Context, rawURL string) (*model.TrackMetadata, error) {
	if c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, metadataKeyPrefix+rawURL).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata cache: %w", err)
	}

	var md model.TrackMetadata
	if err := json.Unmarshal([]byte(raw), &md); err != nil {
		// Stale or corrupt entry, treat as a miss.
		return nil, nil
	}
	return &md, nil
}

func (c *MetadataCache) Set(ctx context.Context, rawURL string, md *model.TrackMetadata) error {
	if c.client == nil || md == nil {
		return nil
	}

	payload, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := c.client.Set(ctx, metadataKeyPrefix+rawURL, payload, metadataTTL).Err(); err != nil {
		return fmt.Errorf("writing metadata cache: %w", err)
	}
	return nil
}
