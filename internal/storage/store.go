// Package storage provides the blob-store contract the preprocessing run
// reads raw datasets from and writes cleaned datasets to, with a Google Cloud
// Storage implementation for production and a filesystem implementation for
// local runs and tests. No retry or backoff: store failures propagate to the
// caller.
package storage

import "context"

// Store is the capability contract for named blobs within one bucket. Fetch
// wraps errors.ErrNotFound when the key is absent.
type Store interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, data []byte, contentType string) error
}
