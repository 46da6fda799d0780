package kv

import "context"

// Store is the opaque key-value persistence capability the data layer is
// built on. Collections are read in full and rewritten in full; callers
// must not assume anything about the backing medium.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
