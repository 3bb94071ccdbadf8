package stream

import (
	"context"
	"fmt"
	"sync"
)

// Registry enforces single ownership of the underlying connection per
// channel key: opening a key that is already held closes the previous
// subscription before the new one starts.
type Registry struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]*Subscription)}
}

// EntityChannelKey builds the registry key for a per-entity channel.
func EntityChannelKey(entityType string, entityID int64) string {
	return fmt.Sprintf("%s/%d", entityType, entityID)
}

// TeamChannelKey builds the registry key for a team-scoped channel.
func TeamChannelKey(teamID int64) string {
	return fmt.Sprintf("team/%d", teamID)
}

// Open starts a subscription for key, tearing down any previous holder
// first so exactly one connection exists per key.
func (r *Registry) Open(ctx context.Context, key string, opts Options) *Subscription {
	r.mu.Lock()
	if old, ok := r.subs[key]; ok {
		old.Close()
	}
	sub := NewSubscription(opts)
	r.subs[key] = sub
	r.mu.Unlock()

	sub.Start(ctx)
	return sub
}

// Get returns the active subscription for key, if any.
func (r *Registry) Get(key string) (*Subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[key]
	return sub, ok
}

// Close tears down the subscription for key.
func (r *Registry) Close(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.subs[key]; ok {
		sub.Close()
		delete(r.subs, key)
	}
}

// CloseAll tears down every subscription, for shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, sub := range r.subs {
		sub.Close()
		delete(r.subs, key)
	}
}
