// Package kvstore is a thin adapter over a string-keyed JSON document store.
// Records live under prefixed keys ("product:<uuid>", "order:<uuid>") and the
// only query primitive is a prefix scan; all filtering happens in the caller.
package kvstore

import "context"

// Store is the generic get/set/delete/prefix-scan contract. Values are raw
// JSON documents; the repositories own (un)marshalling.
type Store interface {
	// Get returns the document at key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns every document whose key starts with prefix, in no
	// particular order.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
