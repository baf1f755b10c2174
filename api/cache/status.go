package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"batchConverter/api/database"
	"batchConverter/api/models"
)

const (
	statusKeyPrefix   = "job:status:"
	progressKeyPrefix = "job:progress:"
	statusTTL         = 10 * time.Minute
)

// Store is the subset of the Redis client the status cache needs.
type Store interface {
	MGet(ctx context.Context, keys ...string) ([]string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type StatusCache struct {
	store Store
}

func NewStatusCache(store Store) *StatusCache {
	return &StatusCache{store: store}
}

// Entry is what workers publish for a job: its status and, once a file has
// been visited, the latest progress snapshot.
type Entry struct {
	Status   models.JobStatus
	Progress *models.Progress
}

// Get returns database.ErrCacheMiss when no status is cached for jobID.
func (sc *StatusCache) Get(ctx context.Context, jobID string) (*Entry, error) {
	vals, err := sc.store.MGet(ctx, statusKeyPrefix+jobID, progressKeyPrefix+jobID)
	if err != nil {
		return nil, err
	}
	if vals[0] == "" {
		return nil, database.ErrCacheMiss
	}

	var entry Entry
	if err := json.Unmarshal([]byte(vals[0]), &entry.Status); err != nil {
		entry.Status = models.JobStatus(vals[0])
	}

	if vals[1] != "" {
		var p models.Progress
		if err := json.Unmarshal([]byte(vals[1]), &p); err != nil {
			return nil, fmt.Errorf("decode progress: %w", err)
		}
		entry.Progress = &p
	}

	return &entry, nil
}

func (sc *StatusCache) Set(ctx context.Context, jobID string, status models.JobStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}

	return sc.store.Set(ctx, statusKeyPrefix+jobID, data, statusTTL)
}

func (sc *StatusCache) Delete(ctx context.Context, jobID string) error {
	return sc.store.Del(ctx, statusKeyPrefix+jobID, progressKeyPrefix+jobID)
}
