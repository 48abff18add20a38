// Package visitor keeps one contact form controller per visitor session.
package visitor

import (
	"context"
	"sync"
	"time"

	"github.com/vaibhavsidana/vaibhav-dev/internal/contact"
)

const DefaultTTL = 30 * time.Minute

type entry struct {
	controller *contact.Controller
	lastSeen   time.Time
}

// Registry maps visitor ids to their controllers. Controllers are created
// on first use and dropped once idle for longer than the TTL.
type Registry struct {
	newController func() *contact.Controller
	ttl           time.Duration
	now           func() time.Time

	mu       sync.Mutex
	visitors map[string]*entry
}

func NewRegistry(ttl time.Duration, newController func() *contact.Controller) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		newController: newController,
		ttl:           ttl,
		now:           time.Now,
		visitors:      make(map[string]*entry),
	}
}

// Controller returns the controller for id, creating it if needed.
func (r *Registry) Controller(id string) *contact.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.visitors[id]
	if !ok {
		e = &entry{controller: r.newController()}
		r.visitors[id] = e
	}
	e.lastSeen = r.now()
	return e.controller
}

// Len reports the number of live visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep drops visitors idle longer than the TTL and returns how many were
// removed. A controller still sending keeps running; its outcome just has
// nobody left to read it.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.visitors {
		if e.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := r.Sweep()
			if onSweep != nil && removed > 0 {
				onSweep(removed)
			}
		}
	}
}
