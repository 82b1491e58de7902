// Package registry provides the process-wide dispatch table for generated
// update procedures. The registry is an explicit instance owned by whoever
// composes the application; there is no static initialization.
//
// Keys are write-once: the first registration for a key wins and later
// duplicates report false. No removal operation exists, so readers only
// coordinate with concurrent registration during startup.
package registry

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Handler is a registered update procedure for one entity type.
type Handler func(ctx context.Context, req any) (any, error)

// Entry is one (key, handler) pair as reported by All.
type Entry struct {
	Key     string
	Handler Handler
}

// Registry maps entity keys to update handlers. Key comparison is
// case-insensitive. The zero value is not usable; call New.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	keys     map[string]string // normalized key -> registered spelling
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		keys:     make(map[string]string),
	}
}

// Register binds handler under the entity type name, or under key when one
// is given. It returns false, leaving the existing binding untouched, when
// the key is already registered under any casing or when the handler is
// nil.
func (r *Registry) Register(entityType string, h Handler, key ...string) bool {
	k := entityType
	if len(key) > 0 {
		k = key[0]
	}
	if h == nil || k == "" {
		return false
	}
	norm := strings.ToLower(k)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[norm]; ok {
		return false
	}
	r.handlers[norm] = h
	r.keys[norm] = k
	return true
}

// Invoke dispatches to the handler registered for key. An unregistered key
// is not an error: fallback is called instead. A nil fallback on an
// unregistered key yields (nil, nil).
func (r *Registry) Invoke(ctx context.Context, key string, req any, fallback Handler) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[strings.ToLower(key)]
	r.mu.RUnlock()
	if !ok {
		if fallback == nil {
			return nil, nil
		}
		return fallback(ctx, req)
	}
	return h(ctx, req)
}

// Registered reports whether key has a handler, under any casing.
func (r *Registry) Registered(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[strings.ToLower(key)]
	return ok
}

// All returns every registered entry ordered by key. Keys keep the
// spelling they were registered with.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.handlers))
	for norm, h := range r.handlers {
		entries = append(entries, Entry{Key: r.keys[norm], Handler: h})
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Key) < strings.ToLower(entries[j].Key)
	})
	return entries
}
