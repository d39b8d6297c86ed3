package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/history"
	"github.com/inamate/board/internal/scene"
)

// Delete removes the selected layers. Apply snapshots everything Revert
// needs: the removed layers, their draw positions, the previous order and
// the previous selection.
type Delete struct {
	store *scene.Store
	sel   *Set

	removed        []removedLayer
	priorOrder     []string
	priorSelection []string
}

type removedLayer struct {
	id    string
	index int
	layer document.Layer
}

// DeleteCommand returns a command deleting whatever sel holds when it is
// applied.
func DeleteCommand(store *scene.Store, sel *Set) *Delete {
	return &Delete{store: store, sel: sel}
}

func (d *Delete) Name() string { return "delete" }

// Removed returns the ids the last Apply deleted, back to front.
func (d *Delete) Removed() []string {
	ids := make([]string, len(d.removed))
	for i, r := range d.removed {
		ids[i] = r.id
	}
	return ids
}

// PriorOrder is the draw order before the last Apply.
func (d *Delete) PriorOrder() []string { return d.priorOrder }

func (d *Delete) Apply(ctx context.Context) error {
	sc := d.store.Scene()
	d.priorOrder = append([]string(nil), sc.Order...)
	d.priorSelection = d.sel.IDs()
	d.removed = d.removed[:0]
	for i, id := range sc.Order {
		if d.sel.Has(id) {
			d.removed = append(d.removed, removedLayer{id: id, index: i, layer: sc.Layers[id].Clone()})
		}
	}

	ids := d.Removed()
	err := d.store.Mutate(ctx, func(sc *scene.Scene) error {
		sc.Remove(ids...)
		return nil
	})
	d.sel.Clear()
	return unsaved(err)
}

// Revert puts every removed layer back at its old draw position and
// restores the old selection. Positions are restored in ascending order so
// each insert lands where it was before the delete.
func (d *Delete) Revert(ctx context.Context) error {
	err := d.store.Mutate(ctx, func(sc *scene.Scene) error {
		for _, r := range d.removed {
			if err := sc.InsertAt(r.id, r.layer.Clone(), r.index); err != nil {
				return err
			}
		}
		return nil
	})
	d.sel.Replace(d.priorSelection...)
	d.sel.Prune(d.store.Scene())
	return unsaved(err)
}

// unsaved marks store errors that left the mutation committed in memory,
// so the executor keeps its undo bookkeeping in step with the scene.
func unsaved(err error) error {
	if errors.Is(err, scene.ErrFlush) {
		return fmt.Errorf("%w: %w", history.ErrNotPersisted, err)
	}
	return err
}
