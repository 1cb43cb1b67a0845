package cache

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Cache stores completed assistant responses keyed by a transcript hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
