package server

import (
	"sync"

	"github.com/Faultbox/diorama/pkg/diorama"
)

// Store holds the scene currently served. Readers get the shared immutable
// Scene; Regenerate swaps in a new one.
type Store struct {
	layout diorama.Layout

	mu      sync.RWMutex
	scene   *diorama.Scene
	version uint64
}

// NewStore builds the first scene from layout and seed.
func NewStore(layout diorama.Layout, seed uint64) (*Store, error) {
	s, err := diorama.Build(layout, seed)
	if err != nil {
		return nil, err
	}
	return &Store{layout: layout.Clone(), scene: s, version: 1}, nil
}

// Current returns the scene and its version. The version increases on every
// regeneration.
func (st *Store) Current() (*diorama.Scene, uint64) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.scene, st.version
}

// Regenerate rebuilds the scene with a new seed; 0 picks one from the clock.
func (st *Store) Regenerate(seed uint64) (*diorama.Scene, error) {
	s, err := diorama.Build(st.layout, seed)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.scene = s
	st.version++
	st.mu.Unlock()
	return s, nil
}
