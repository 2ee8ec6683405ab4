package domain

import "context"

// KeyValueStore abstracts the string key-value medium all bank state lives in.
// Values are opaque to the store. Get returns ErrNotFound for absent keys and
// Delete of an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
