package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/camera"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/typeid"
)

// PointerDown handles a press on the canvas. A press that lands on a layer
// is handled as OnLayerPointerDown for that layer.
func (e *Engine) PointerDown(ctx context.Context, ev PointerEvent) error {
	p := e.cam.ToScene(ev.Screen)
	e.cursor = p

	switch ev.Button {
	case ButtonPrimary:
	case ButtonSecondary:
		e.startPan(ev.Screen)
		return nil
	default:
		return nil
	}

	switch e.state.(type) {
	case Moving:
		e.startPan(ev.Screen)
		return nil
	case Inserting:
		return nil
	case Pencil:
		e.draft = [][3]float64{{p.X, p.Y, ev.Pressure}}
		return nil
	}

	if id := e.HitTest(p); id != "" {
		return e.OnLayerPointerDown(ctx, ev, id)
	}
	e.sel.Clear()
	e.state = Pressing{Origin: p}
	return nil
}

// OnLayerPointerDown handles a press on layer id. The layer becomes the
// selection unless it already belongs to it, and dragging starts.
func (e *Engine) OnLayerPointerDown(_ context.Context, ev PointerEvent, id string) error {
	switch ev.Button {
	case ButtonPrimary:
	case ButtonSecondary:
		e.startPan(ev.Screen)
		return nil
	default:
		return nil
	}
	switch e.state.(type) {
	case Pencil, Inserting:
		return nil
	case Moving:
		e.startPan(ev.Screen)
		return nil
	}
	if _, ok := e.store.Scene().Layer(id); !ok {
		return fmt.Errorf("layer pointer down: %w: %s", scene.ErrUnknownLayer, id)
	}

	p := e.cam.ToScene(ev.Screen)
	e.cursor = p
	if !e.sel.Has(id) {
		e.sel.Replace(id)
	}
	e.state = Translating{Current: p}
	return nil
}

// PointerMove advances whatever gesture is in progress.
func (e *Engine) PointerMove(ctx context.Context, ev PointerEvent) error {
	p := e.cam.ToScene(ev.Screen)
	e.cursor = p

	if e.panning {
		e.cam.Pan(ev.Screen.Sub(e.panLast))
		e.panLast = ev.Screen
		return nil
	}

	switch st := e.state.(type) {
	case Pressing:
		if math.Abs(p.X-st.Origin.X)+math.Abs(p.Y-st.Origin.Y) > NetThreshold {
			net := SelectionNet{Origin: st.Origin, Current: p}
			e.state = net
			e.updateNet(net)
		}
	case SelectionNet:
		st.Current = p
		e.state = st
		e.updateNet(st)
	case Translating:
		delta := p.Sub(st.Current)
		e.state = Translating{Current: p}
		return e.translateSelection(ctx, delta)
	case Resizing:
		return e.resize(ctx, st, p)
	case Pencil:
		e.extendStroke(p, ev.Pressure)
	}
	return nil
}

// PointerUp ends the gesture in progress.
func (e *Engine) PointerUp(ctx context.Context, ev PointerEvent) error {
	p := e.cam.ToScene(ev.Screen)
	e.cursor = p

	if e.panning {
		e.panning = false
		return nil
	}
	if ev.Button != ButtonPrimary {
		return nil
	}

	switch st := e.state.(type) {
	case None, Pressing:
		e.sel.Clear()
		e.state = None{}
	case Pencil:
		return e.commitStroke(ctx)
	case Inserting:
		e.state = None{}
		return e.insert(ctx, st, p)
	case Moving:
	default:
		e.state = None{}
	}
	return nil
}

// Wheel pans or zooms the camera.
func (e *Engine) Wheel(ev camera.WheelEvent) {
	e.cam.Wheel(ev)
}

func (e *Engine) startPan(screen vec.Vec2) {
	e.panning = true
	e.panLast = screen
}

// updateNet replaces the selection with every visible layer the net
// overlaps.
func (e *Engine) updateNet(net SelectionNet) {
	rect := geometry.RectFromPoints(net.Origin, net.Current)
	sc := e.store.Scene()
	ids := make([]string, 0, len(sc.Order))
	for _, id := range sc.Order {
		l := sc.Layers[id]
		if document.Visible(l) && geometry.RectIntersects(rect, l.Base().Bounds()) {
			ids = append(ids, id)
		}
	}
	e.sel.Replace(ids...)
}

func (e *Engine) translateSelection(ctx context.Context, delta vec.Vec2) error {
	ids := e.Selection()
	if len(ids) == 0 || (delta.X == 0 && delta.Y == 0) {
		return nil
	}
	return e.mutate(ctx, "translate", func(sc *scene.Scene) error {
		for _, id := range ids {
			sc.Layers[id].Base().Translate(delta.X, delta.Y)
		}
		return nil
	})
}

func (e *Engine) resize(ctx context.Context, st Resizing, p vec.Vec2) error {
	return e.mutate(ctx, "resize", func(sc *scene.Scene) error {
		return sc.Update(st.LayerID, func(l document.Layer) {
			l.Base().SetBounds(geometry.ResizeBounds(l.Kind(), st.Initial, st.Corner, p))
		})
	})
}

func (e *Engine) extendStroke(p vec.Vec2, pressure float64) {
	if e.draft == nil {
		return
	}
	if len(e.draft) == 1 && e.draft[0][0] == p.X && e.draft[0][1] == p.Y {
		return
	}
	e.draft = append(e.draft, [3]float64{p.X, p.Y, pressure})
}

// commitStroke turns the pending samples into a path layer. Strokes with
// fewer than two samples are dropped.
func (e *Engine) commitStroke(ctx context.Context) error {
	samples := e.draft
	e.draft = nil
	box, err := geometry.BoundingBoxFromSamples(samples)
	if errors.Is(err, geometry.ErrInsufficientSamples) {
		logger().Debug("stroke discarded", "samples", len(samples))
		return nil
	}
	if err != nil {
		return err
	}
	fill := e.lastFill
	path := document.NewPath(box.XYWH, &fill, box.Points)
	return e.mutate(ctx, "draw", func(sc *scene.Scene) error {
		return sc.Insert(typeid.NewLayerID(), path)
	})
}

// insert drops a default-sized layer of the armed kind at p and selects it.
func (e *Engine) insert(ctx context.Context, st Inserting, p vec.Vec2) error {
	b := document.XYWH{X: p.X, Y: p.Y, Width: e.insertSize, Height: e.insertSize}
	fill := e.lastFill
	var l document.Layer
	if st.Kind == document.KindImage {
		l = document.NewImage(b, st.Src)
	} else {
		var err error
		if l, err = document.New(st.Kind, b, &fill); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	id := typeid.NewLayerID()
	err := e.mutate(ctx, "insert", func(sc *scene.Scene) error {
		return sc.Insert(id, l)
	})
	if _, ok := e.store.Scene().Layer(id); ok {
		e.sel.Replace(id)
		logger().Debug("layer inserted", "id", id, "kind", st.Kind)
	}
	return err
}

// mutate runs fn through the store, logging persistence failures.
func (e *Engine) mutate(ctx context.Context, op string, fn func(*scene.Scene) error) error {
	if err := e.store.Mutate(ctx, fn); err != nil {
		logger().Warn("scene mutation failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
