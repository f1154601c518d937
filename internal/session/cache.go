package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/msomdec/account-store/internal/domain"
)

// Cache lazily creates the shared Holder from persisted settings. All
// operations that need the current account identifier go through the same
// Cache instance and therefore share one Holder.
type Cache struct {
	settings domain.Settings

	mu     sync.Mutex
	holder *Holder
}

// NewCache creates a Cache reading its initial value from settings.
func NewCache(settings domain.Settings) *Cache {
	return &Cache{settings: settings}
}

// Holder returns the shared holder, creating it on first call from the
// persisted current account id. Creation is single-flight: concurrent
// first callers block on the same initialization and all receive the same
// instance, and settings are read exactly once. A failed settings read is
// not cached, so a later call may retry.
func (c *Cache) Holder(ctx context.Context) (*Holder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.holder != nil {
		return c.holder, nil
	}

	id, err := c.settings.CurrentAccountID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read current account id: %w", err)
	}

	c.holder = newHolder(id)
	return c.holder, nil
}
