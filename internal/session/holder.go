// Package session provides the process-wide observable cell holding the
// identifier of the currently signed-in account, and the lazy cache that
// creates it from persisted settings exactly once.
package session

import (
	"context"
	"sync"
)

// Holder is a shared mutable cell holding the current account identifier.
// Subscribers observe every publish, conflated to the latest value: a slow
// subscriber that misses intermediate publishes sees only the most recent
// one once it catches up.
type Holder struct {
	mu   sync.Mutex
	id   int64
	subs map[uint64]chan int64
	next uint64
}

func newHolder(id int64) *Holder {
	return &Holder{
		id:   id,
		subs: make(map[uint64]chan int64),
	}
}

// Current returns the value most recently assigned to the holder.
func (h *Holder) Current() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

// Set assigns id and notifies every subscriber. Publishes are
// edge-triggered: subscribers are notified even when the value is
// unchanged, so they can re-derive state that depends on it.
func (h *Holder) Set(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.id = id
	for _, ch := range h.subs {
		// Conflate: replace a value the subscriber hasn't consumed yet.
		select {
		case <-ch:
		default:
		}
		ch <- id
	}
}

// Subscribe registers an observer. The returned channel immediately carries
// the current value, then every subsequent publish, conflated to the
// latest. The subscription ends and the channel is closed when ctx is
// cancelled.
func (h *Holder) Subscribe(ctx context.Context) <-chan int64 {
	h.mu.Lock()
	ch := make(chan int64, 1)
	ch <- h.id
	key := h.next
	h.next++
	h.subs[key] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, key)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}
