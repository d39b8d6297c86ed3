package selection

import (
	"context"
	"slices"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/typeid"
)

// Clipboard holds deep copies of layers, keyed by the id they had when
// copied. Later edits to the scene do not reach it.
type Clipboard struct {
	layers map[string]document.Layer
	order  []string
}

func NewClipboard() *Clipboard {
	return &Clipboard{layers: make(map[string]document.Layer)}
}

// Copy replaces the clipboard contents with clones of the given layers.
// Ids that do not resolve are skipped. It returns the number copied.
func (c *Clipboard) Copy(sc *scene.Scene, ids []string) int {
	c.layers = make(map[string]document.Layer, len(ids))
	c.order = c.order[:0]
	for _, id := range sc.Order {
		if !slices.Contains(ids, id) {
			continue
		}
		c.layers[id] = sc.Layers[id].Clone()
		c.order = append(c.order, id)
	}
	return len(c.order)
}

func (c *Clipboard) Len() int {
	return len(c.order)
}

// Layer returns the copied layer stored under its original id.
func (c *Clipboard) Layer(id string) (document.Layer, bool) {
	l, ok := c.layers[id]
	return l, ok
}

// Center is the center of the copied layers' combined bounds.
func (c *Clipboard) Center() vec.Vec2 {
	boxes := make([]document.XYWH, 0, len(c.order))
	for _, id := range c.order {
		boxes = append(boxes, c.layers[id].Base().Bounds())
	}
	return geometry.Center(geometry.Union(boxes...))
}

// PasteCommand prepares a paste of the clipboard centered on at. The new
// layers get fresh ids and keep their relative layout; the paste selects
// them. The returned command is nil when the clipboard is empty.
func (c *Clipboard) PasteCommand(store *scene.Store, sel *Set, at vec.Vec2) *Paste {
	if c.Len() == 0 {
		return nil
	}
	delta := at.Sub(c.Center())
	p := &Paste{store: store, sel: sel}
	for _, id := range c.order {
		l := c.layers[id].Clone()
		l.Base().Translate(delta.X, delta.Y)
		p.ids = append(p.ids, typeid.NewLayerID())
		p.layers = append(p.layers, l)
	}
	return p
}

// Paste inserts a prepared set of layers on top of the scene.
type Paste struct {
	store *scene.Store
	sel   *Set

	ids    []string
	layers []document.Layer

	priorSelection []string
}

func (p *Paste) Name() string { return "paste" }

// IDs returns the ids the pasted layers are inserted under.
func (p *Paste) IDs() []string { return p.ids }

func (p *Paste) Apply(ctx context.Context) error {
	p.priorSelection = p.sel.IDs()
	err := p.store.Mutate(ctx, func(sc *scene.Scene) error {
		for i, id := range p.ids {
			if err := sc.Insert(id, p.layers[i].Clone()); err != nil {
				return err
			}
		}
		return nil
	})
	if _, ok := p.store.Scene().Layer(p.ids[0]); ok {
		p.sel.Replace(p.ids...)
	}
	return unsaved(err)
}

func (p *Paste) Revert(ctx context.Context) error {
	err := p.store.Mutate(ctx, func(sc *scene.Scene) error {
		sc.Remove(p.ids...)
		return nil
	})
	p.sel.Replace(p.priorSelection...)
	p.sel.Prune(p.store.Scene())
	return unsaved(err)
}
