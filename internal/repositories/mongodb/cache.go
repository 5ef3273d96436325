package mongodb

import (
	"context"
	"time"
)

// Cache is the slice of the Redis client the repositories use for
// cache-aside reads. Implemented by pkg/cache.RedisCache.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
