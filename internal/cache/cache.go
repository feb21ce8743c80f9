package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a small get/set string cache. A miss returns an empty string and
// no error.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Close() error
}

// Key builds a namespaced cache key.
func Key(namespace, key string) string {
	return fmt.Sprintf("storefront:%s:%s", namespace, key)
}
