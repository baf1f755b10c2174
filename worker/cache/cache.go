package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"batchConverter/worker/progress"
)

const (
	statusKeyPrefix   = "job:status:"
	progressKeyPrefix = "job:progress:"
	entryTTL          = 10 * time.Minute
)

type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

func (c *StatusCache) SetStatus(ctx context.Context, jobID string, status string) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKeyPrefix+jobID, data, entryTTL).Err()
}

// SetProgress stores the latest snapshot only; earlier ones are overwritten.
func (c *StatusCache) SetProgress(ctx context.Context, jobID string, snap progress.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, progressKeyPrefix+jobID, data, entryTTL).Err()
}
