// Package scene owns the board document: the layers keyed by id and the
// back-to-front order they are drawn in.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/inamate/board/internal/document"
)

var (
	ErrUnknownLayer   = errors.New("unknown layer")
	ErrDuplicateLayer = errors.New("duplicate layer id")
	ErrInconsistent   = errors.New("layer order does not match layers")
	// ErrFlush wraps persistence failures that happen after a mutation
	// was committed in memory.
	ErrFlush = errors.New("flush failed")
)

// Scene is the layer map plus the draw order. Order is always a
// permutation of the map's keys; earlier ids are drawn further back.
type Scene struct {
	Layers map[string]document.Layer
	Order  []string
}

func New() *Scene {
	return &Scene{
		Layers: make(map[string]document.Layer),
		Order:  []string{},
	}
}

// Clone returns a deep copy; no layer is shared with s.
func (s *Scene) Clone() *Scene {
	out := &Scene{
		Layers: make(map[string]document.Layer, len(s.Layers)),
		Order:  slices.Clone(s.Order),
	}
	for id, l := range s.Layers {
		out.Layers[id] = l.Clone()
	}
	return out
}

func (s *Scene) Len() int { return len(s.Order) }

func (s *Scene) Layer(id string) (document.Layer, bool) {
	l, ok := s.Layers[id]
	return l, ok
}

// Index returns the draw position of id, or -1.
func (s *Scene) Index(id string) int {
	return slices.Index(s.Order, id)
}

// Insert adds l on top of every other layer.
func (s *Scene) Insert(id string, l document.Layer) error {
	return s.InsertAt(id, l, len(s.Order))
}

// InsertAt adds l at draw position index, clamped to the order bounds.
func (s *Scene) InsertAt(id string, l document.Layer, index int) error {
	if _, ok := s.Layers[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLayer, id)
	}
	index = max(0, min(index, len(s.Order)))
	s.Layers[id] = l
	s.Order = slices.Insert(s.Order, index, id)
	return nil
}

// Remove deletes the given layers from both the map and the order.
// Unknown ids are ignored.
func (s *Scene) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
		delete(s.Layers, id)
	}
	s.Order = slices.DeleteFunc(s.Order, func(id string) bool { return drop[id] })
}

// Update applies fn to the layer with the given id.
func (s *Scene) Update(id string, fn func(document.Layer)) error {
	l, ok := s.Layers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	fn(l)
	return nil
}

// Validate checks that Order is a permutation of the layer ids.
func (s *Scene) Validate() error {
	if len(s.Order) != len(s.Layers) {
		return fmt.Errorf("%w: %d ids in order, %d layers", ErrInconsistent, len(s.Order), len(s.Layers))
	}
	seen := make(map[string]bool, len(s.Order))
	for _, id := range s.Order {
		if seen[id] {
			return fmt.Errorf("%w: %s listed twice", ErrInconsistent, id)
		}
		seen[id] = true
		if _, ok := s.Layers[id]; !ok {
			return fmt.Errorf("%w: %s has no layer", ErrInconsistent, id)
		}
	}
	return nil
}
