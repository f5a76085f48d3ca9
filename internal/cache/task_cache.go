package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "task:"
	keyList   = keyPrefix + "list:"
	keyCounts = keyPrefix + "counts:"
)

// TaskCache caches task list and count results in Redis. Read keys are scoped
// per actor and filter; invalidation is global, because a change to a shared
// task alters every user's visible list, so per-actor invalidation would
// serve stale reads.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// ListKey builds the cache key for a filtered list query.
func ListKey(actorID *int64, status, priority, date, sort string) string {
	return keyList + actorKey(actorID) + ":" + status + ":" + priority + ":" + date + ":" + sort
}

// GetList returns the cached list for key, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, key string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores a list result.
func (c *TaskCache) SetList(ctx context.Context, key string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// GetCounts returns the cached counts for the actor. ok is false on miss.
func (c *TaskCache) GetCounts(ctx context.Context, actorID *int64) (repo.TaskCounts, bool, error) {
	b, err := c.rdb.Get(ctx, keyCounts+actorKey(actorID)).Bytes()
	if err == redis.Nil {
		return repo.TaskCounts{}, false, nil
	}
	if err != nil {
		return repo.TaskCounts{}, false, err
	}
	var counts repo.TaskCounts
	if err := json.Unmarshal(b, &counts); err != nil {
		return repo.TaskCounts{}, false, err
	}
	return counts, true, nil
}

// SetCounts stores the actor's counts.
func (c *TaskCache) SetCounts(ctx context.Context, actorID *int64, counts repo.TaskCounts) error {
	b, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyCounts+actorKey(actorID), b, c.ttl).Err()
}

// InvalidateAll removes every task cache key. Called on any task mutation so
// reads always reflect the latest committed state.
func (c *TaskCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func actorKey(actorID *int64) string {
	if actorID == nil {
		return "all"
	}
	return strconv.FormatInt(*actorID, 10)
}
