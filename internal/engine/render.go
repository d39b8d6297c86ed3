package engine

import (
	"encoding/json"

	"github.com/inamate/board/internal/camera"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/selection"
)

// RenderItem is one layer handed to the renderer, in painter's order.
type RenderItem struct {
	ID       string
	Layer    document.Layer
	Selected bool
	Visible  bool
	Fill     string
	Outline  string
}

// MarshalJSON encodes the layer in its {type,data} wire form.
func (r RenderItem) MarshalJSON() ([]byte, error) {
	layer, err := document.MarshalLayer(r.Layer)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID       string          `json:"id"`
		Layer    json.RawMessage `json:"layer"`
		Selected bool            `json:"selected"`
		Visible  bool            `json:"visible"`
		Fill     string          `json:"fill"`
		Outline  string          `json:"outline"`
	}{r.ID, layer, r.Selected, r.Visible, r.Fill, r.Outline})
}

// View is everything a renderer needs to paint one frame.
type View struct {
	Items           []RenderItem   `json:"items"`
	SelectionBounds *document.XYWH `json:"selectionBounds,omitempty"`
	Net             *document.XYWH `json:"net,omitempty"`
	Camera          camera.Camera  `json:"camera"`
	Mode            Mode           `json:"mode"`
}

// Render lists every layer back to front together with the selection
// bounds and, during a rubber-band drag, the net rectangle. Layers are
// shared with the scene; renderers must not modify them.
func (e *Engine) Render() View {
	sc := e.store.Scene()
	v := View{
		Items:  make([]RenderItem, 0, len(sc.Order)),
		Camera: *e.cam,
		Mode:   e.state.Mode(),
	}
	for _, id := range sc.Order {
		l := sc.Layers[id]
		f := l.Base()
		v.Items = append(v.Items, RenderItem{
			ID:       id,
			Layer:    l,
			Selected: e.sel.Has(id),
			Visible:  document.Visible(l),
			Fill:     geometry.ComputeColor(f.Fill),
			Outline:  geometry.ComputeColor(f.Outline),
		})
	}
	if b, ok := selection.Bounds(sc, e.Selection()); ok {
		v.SelectionBounds = &b
	}
	if net, ok := e.state.(SelectionNet); ok {
		r := geometry.RectFromPoints(net.Origin, net.Current)
		v.Net = &r
	}
	return v
}
