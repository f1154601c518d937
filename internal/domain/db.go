package domain

import "context"

// Database defines lifecycle operations for the underlying local store.
// Each implementation (SQLite today, anything relational tomorrow) owns its
// own migration files and strategy, keeping the whole backend swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
