// Package settings retains parsed settings documents so they can be saved
// or rolled back after the editor changes them.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/toolbox/internal/toolbox"
	"github.com/dshills/toolbox/internal/xmltree"
)

var _ toolbox.SettingsStore = (*Store)(nil)

// ErrUnknownNode is returned for a tag the store does not hold.
var ErrUnknownNode = errors.New("settings: unknown node")

type entry struct {
	live     *xmltree.Node
	original *xmltree.Node
}

// Store keeps one document per root tag. Adding a document with a tag
// already held replaces it.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*entry
	order []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]*entry)}
}

// AddSettingsNode retains node and a snapshot of it for Rollback.
func (s *Store) AddSettingsNode(node *xmltree.Node) {
	if node == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[node.Tag()]; !ok {
		s.order = append(s.order, node.Tag())
	}
	s.nodes[node.Tag()] = &entry{live: node, original: node.Clone()}
}

// Get returns the live node for tag.
func (s *Store) Get(tag string) (*xmltree.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.nodes[tag]
	if !ok {
		return nil, false
	}
	return e.live, true
}

// Tags returns the held root tags in insertion order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Rollback restores tag's live node to the state it was added in.
func (s *Store) Rollback(tag string) (*xmltree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.nodes[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, tag)
	}
	e.live = e.original.Clone()
	return e.live, nil
}

// SaveTo writes tag's live node to path and makes it the new rollback
// point.
func (s *Store) SaveTo(tag, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.nodes[tag]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, tag)
	}
	if err := xmltree.SaveFile(e.live, path); err != nil {
		return fmt.Errorf("saving settings %s: %w", tag, err)
	}
	e.original = e.live.Clone()
	return nil
}
