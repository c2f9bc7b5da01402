package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sifan077/GifBoard/internal/app/model"
)

const (
	defaultVersionKey = "gifboard:gifs:version"
	defaultListPrefix = "gifboard:gifs:list:"
	defaultListTTL    = 30 * time.Second
)

// GifListCache keeps List results in Redis, one snapshot per generation.
// Every write bumps the generation counter, so a snapshot computed before a
// write lands under a key no reader will ask for again.
type GifListCache struct {
	rdb        redis.Cmdable
	versionKey string
	listPrefix string
	ttl        time.Duration
}

// NewGifListCache returns a cache whose snapshots expire after ttl.
func NewGifListCache(rdb redis.Cmdable, ttl time.Duration) *GifListCache {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &GifListCache{
		rdb:        rdb,
		versionKey: defaultVersionKey,
		listPrefix: defaultListPrefix,
		ttl:        ttl,
	}
}

// Version returns the current generation; 0 before the first write.
func (c *GifListCache) Version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", c.versionKey, err)
	}
	return v, nil
}

// Get returns the snapshot stored for version; ok is false on a miss.
func (c *GifListCache) Get(ctx context.Context, version int64) ([]model.Gif, bool, error) {
	key := c.listKey(version)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var gifs []model.Gif
	if err := json.Unmarshal(raw, &gifs); err != nil {
		return nil, false, fmt.Errorf("decode cached gifs: %w", err)
	}
	if gifs == nil {
		gifs = []model.Gif{}
	}
	return gifs, true, nil
}

// Set stores gifs as the snapshot for version. version must be the value
// read before the list was loaded.
func (c *GifListCache) Set(ctx context.Context, version int64, gifs []model.Gif) error {
	raw, err := json.Marshal(gifs)
	if err != nil {
		return fmt.Errorf("encode gifs: %w", err)
	}
	key := c.listKey(version)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate starts a new generation. Older snapshots expire on their own.
func (c *GifListCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, c.versionKey).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", c.versionKey, err)
	}
	return nil
}

func (c *GifListCache) listKey(version int64) string {
	return c.listPrefix + strconv.FormatInt(version, 10)
}
