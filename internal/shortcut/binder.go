package shortcut

import (
	"sort"
	"sync"

	"github.com/dshills/toolbox/internal/toolbox"
)

var _ toolbox.ShortcutBinder = (*Binder)(nil)

// Binding pairs an action identifier with its shortcut.
type Binding struct {
	ID       toolbox.ActionID
	Shortcut Shortcut
}

// Binder holds at most one shortcut per action and one action per shortcut.
// Specs are compared in canonical form, so "ctrl+s" and "<C-S>" collide.
type Binder struct {
	mu       sync.RWMutex
	byID     map[toolbox.ActionID]Shortcut
	bySpec   map[string]toolbox.ActionID
	reserved map[string]bool
}

// NewBinder creates a binder. Reserved specs are valid but never bindable;
// the host uses them for its own commands.
func NewBinder(reserved ...string) *Binder {
	b := &Binder{
		byID:     make(map[toolbox.ActionID]Shortcut),
		bySpec:   make(map[string]toolbox.ActionID),
		reserved: make(map[string]bool),
	}
	for _, spec := range reserved {
		if canon, err := Normalize(spec); err == nil {
			b.reserved[canon] = true
		}
	}
	return b
}

// Valid reports whether spec parses.
func (b *Binder) Valid(spec string) bool {
	_, err := Parse(spec)
	return err == nil
}

// AddShortcut binds spec to id, replacing id's previous shortcut. It fails
// when spec is invalid, reserved, or bound to another action.
func (b *Binder) AddShortcut(id toolbox.ActionID, spec string) bool {
	s, err := Parse(spec)
	if err != nil {
		return false
	}
	canon := s.String()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.reserved[canon] {
		return false
	}
	if owner, ok := b.bySpec[canon]; ok && owner != id {
		return false
	}

	if old, ok := b.byID[id]; ok {
		delete(b.bySpec, old.String())
	}
	b.byID[id] = s
	b.bySpec[canon] = id
	return true
}

// RemoveShortcut unbinds id.
func (b *Binder) RemoveShortcut(id toolbox.ActionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.byID[id]
	if !ok {
		return false
	}
	delete(b.byID, id)
	delete(b.bySpec, s.String())
	return true
}

// Lookup returns the action bound to spec.
func (b *Binder) Lookup(spec string) (toolbox.ActionID, bool) {
	canon, err := Normalize(spec)
	if err != nil {
		return 0, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.bySpec[canon]
	return id, ok
}

// ShortcutFor returns the shortcut bound to id.
func (b *Binder) ShortcutFor(id toolbox.ActionID) (Shortcut, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.byID[id]
	return s, ok
}

// Bindings returns all bindings ordered by action identifier.
func (b *Binder) Bindings() []Binding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Binding, 0, len(b.byID))
	for id, s := range b.byID {
		out = append(out, Binding{ID: id, Shortcut: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
