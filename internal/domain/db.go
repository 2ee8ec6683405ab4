package domain

import "context"

// Database defines lifecycle operations for the underlying storage backend.
// Each implementation (SQLite, Redis, etc.) owns its own setup strategy,
// ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
