// Package action keeps the actions the host UI can trigger, keyed by
// numeric identifier.
package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/toolbox/internal/toolbox"
)

var _ toolbox.ActionRegistrar = (*Registry)(nil)

// ErrNotFound is returned when triggering an unregistered identifier.
var ErrNotFound = errors.New("action: not registered")

// Registry maps identifiers to actions. Registering an identifier again
// replaces the previous action.
type Registry struct {
	mu      sync.RWMutex
	actions map[toolbox.ActionID]toolbox.Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[toolbox.ActionID]toolbox.Action),
	}
}

// AddAction registers a for id.
func (r *Registry) AddAction(id toolbox.ActionID, a toolbox.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = a
}

// Remove drops the action for id.
func (r *Registry) Remove(id toolbox.ActionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, id)
}

// Has reports whether id is registered.
func (r *Registry) Has(id toolbox.ActionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[id]
	return ok
}

// Trigger runs the action for id. The action runs without the registry
// lock held, so it may register or remove actions.
func (r *Registry) Trigger(id toolbox.ActionID) error {
	r.mu.RLock()
	a, ok := r.actions[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	a.Trigger()
	return nil
}

// IDs returns the registered identifiers in ascending order.
func (r *Registry) IDs() []toolbox.ActionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]toolbox.ActionID, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Clear removes every action.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = make(map[toolbox.ActionID]toolbox.Action)
}
