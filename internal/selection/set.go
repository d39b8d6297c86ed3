// Package selection tracks which layers are selected and implements the
// operations that act on a selection as a group: bounds, copy, paste and
// delete.
package selection

import (
	"maps"
	"slices"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/scene"
)

// Set is an unordered set of layer ids.
type Set struct {
	ids map[string]struct{}
}

func NewSet(ids ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Set) Add(ids ...string) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Replace makes ids the whole selection.
func (s *Set) Replace(ids ...string) {
	clear(s.ids)
	s.Add(ids...)
}

func (s *Set) Clear() {
	clear(s.ids)
}

func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted lexically.
func (s *Set) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// InOrder returns the selected ids that appear in order, in that order.
func (s *Set) InOrder(order []string) []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range order {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Retain drops every id that keep rejects.
func (s *Set) Retain(keep func(id string) bool) {
	maps.DeleteFunc(s.ids, func(id string, _ struct{}) bool { return !keep(id) })
}

// Prune drops ids that no longer exist in sc.
func (s *Set) Prune(sc *scene.Scene) {
	s.Retain(func(id string) bool {
		_, ok := sc.Layer(id)
		return ok
	})
}

// Equal reports whether s holds exactly ids.
func (s *Set) Equal(ids []string) bool {
	if len(ids) != len(s.ids) {
		return false
	}
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Bounds returns the union of the bounds of the given layers. ok is false
// when none of the ids resolve.
func Bounds(sc *scene.Scene, ids []string) (b document.XYWH, ok bool) {
	boxes := make([]document.XYWH, 0, len(ids))
	for _, id := range ids {
		if l, found := sc.Layer(id); found {
			boxes = append(boxes, l.Base().Bounds())
		}
	}
	if len(boxes) == 0 {
		return document.XYWH{}, false
	}
	return geometry.Union(boxes...), true
}
