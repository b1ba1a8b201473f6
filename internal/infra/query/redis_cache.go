package query

import (
	"context"
	"time"

	"terrimap/internal/errors"

	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces query keys in Redis.
const DefaultRedisPrefix = "terrimap:query:"

// RedisCache shares fetched collections between service instances.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache wraps a Redis client.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*geojson.FeatureCollection, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %s", key)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		// a corrupt entry behaves like a miss
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return nil, false, nil
	}

	return fc, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, fc *geojson.FeatureCollection, ttl time.Duration) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return errors.Wrapf(c.client.Set(ctx, c.prefix+key, data, ttl).Err(), "redis set %s", key)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.prefix + key
	}

	return errors.Wrap(c.client.Del(ctx, prefixed...).Err(), "redis delete")
}
