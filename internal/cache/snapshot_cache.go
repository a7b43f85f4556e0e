package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"campuspulse/internal/model"
)

const snapshotKey = "analytics:snapshot"

// SnapshotCache handles Redis storage of the precomputed analytics
// snapshot.
type SnapshotCache interface {
	Get(ctx context.Context) (*model.Snapshot, error)
	Set(ctx context.Context, snapshot *model.Snapshot) error
	Delete(ctx context.Context) error
	// Fresh reports whether a cached snapshot exists and is younger
	// than the configured TTL.
	Fresh(ctx context.Context, maxAge time.Duration) (bool, error)
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache. The TTL bounds how long a
// snapshot is served before the scheduler recomputes it.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *snapshotCache) Get(ctx context.Context) (*model.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot model.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *snapshotCache) Set(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	// Stored with double the refresh TTL so a slow recompute serves the
	// stale snapshot instead of nothing.
	return c.client.Set(ctx, snapshotKey, data, 2*c.ttl).Err()
}

func (c *snapshotCache) Delete(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey).Err()
}

func (c *snapshotCache) Fresh(ctx context.Context, maxAge time.Duration) (bool, error) {
	snapshot, err := c.Get(ctx)
	if err != nil {
		return false, err
	}
	if snapshot == nil {
		return false, nil
	}
	return time.Since(snapshot.ComputedAt) < maxAge, nil
}
