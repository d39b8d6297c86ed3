// Package engine is the interaction state machine of a board. It turns
// pointer, wheel and tool events into scene mutations, consulting the
// camera for coordinates and the geometry kernel for hit-testing and
// resizing. Every handler finishes its mutation and persistence flush
// before returning.
package engine

import (
	"context"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/camera"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
	"github.com/inamate/board/internal/history"
	"github.com/inamate/board/internal/scene"
	"github.com/inamate/board/internal/selection"
)

const (
	// DefaultInsertSize is the width and height of a layer dropped by an
	// insertion tool.
	DefaultInsertSize = 100
	// NetThreshold is the scene-space Manhattan distance a press must
	// travel before it becomes a selection net.
	NetThreshold = 5
)

// Engine owns the interaction state for one board. It is not safe for
// concurrent use; callers serialize events.
type Engine struct {
	store *scene.Store
	exec  *history.Executor
	cam   *camera.Camera
	sel   *selection.Set
	clip  *selection.Clipboard

	state      State
	lastFill   document.Color
	insertSize float64

	// Freehand samples of the stroke being drawn, nil between strokes.
	draft [][3]float64

	// Camera pan tracking, independent of state.
	panning bool
	panLast vec.Vec2

	// Last pointer position in scene coordinates.
	cursor vec.Vec2
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithCamera starts the engine with the given camera instead of the
// identity view.
func WithCamera(c *camera.Camera) Option { return func(e *Engine) { e.cam = c } }

// WithLastFill sets the initial "last used" fill color.
func WithLastFill(c document.Color) Option { return func(e *Engine) { e.lastFill = c } }

// WithInsertSize overrides the size of layers dropped by insertion tools.
func WithInsertSize(size float64) Option {
	return func(e *Engine) {
		if size > 0 {
			e.insertSize = size
		}
	}
}

// WithClipboard shares a clipboard between engines.
func WithClipboard(c *selection.Clipboard) Option { return func(e *Engine) { e.clip = c } }

// New creates an engine over store. exec receives the reversible commands
// the engine produces; if nil the engine keeps its own.
func New(store *scene.Store, exec *history.Executor, opts ...Option) *Engine {
	if exec == nil {
		exec = history.NewExecutor()
	}
	e := &Engine{
		store:      store,
		exec:       exec,
		cam:        camera.New(),
		sel:        selection.NewSet(),
		clip:       selection.NewClipboard(),
		state:      None{},
		lastFill:   document.RGB(0xd3, 0xd3, 0xd3),
		insertSize: DefaultInsertSize,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// --- Queries ---

// State returns the active interaction state.
func (e *Engine) State() State { return e.state }

// Mode returns the name of the active interaction state.
func (e *Engine) Mode() Mode { return e.state.Mode() }

func (e *Engine) Camera() *camera.Camera { return e.cam }

func (e *Engine) Scene() *scene.Scene { return e.store.Scene() }

// Selection returns the selected ids in draw order.
func (e *Engine) Selection() []string {
	return e.sel.InOrder(e.store.Scene().Order)
}

// LastFill is the color new layers are created with.
func (e *Engine) LastFill() document.Color { return e.lastFill }

// Panning reports whether a camera pan drag is in progress.
func (e *Engine) Panning() bool { return e.panning }

// Cursor is the last pointer position in scene coordinates.
func (e *Engine) Cursor() vec.Vec2 { return e.cursor }

// CanUndo reports whether there is a command to revert.
func (e *Engine) CanUndo() bool { return e.exec.CanUndo() }

// HitTest returns the frontmost layer containing the scene point p, or "".
// Bounds are inclusive. Layers that paint nothing are skipped.
func (e *Engine) HitTest(p vec.Vec2) string {
	sc := e.store.Scene()
	for i := len(sc.Order) - 1; i >= 0; i-- {
		id := sc.Order[i]
		l := sc.Layers[id]
		if document.Visible(l) && geometry.Contains(l.Base().Bounds(), p) {
			return id
		}
	}
	return ""
}

// --- Tools ---

// SetMode switches tools. Any gesture in progress ends: a pan drag stops
// and an uncommitted pencil stroke is dropped.
func (e *Engine) SetMode(st State) error {
	if st == nil {
		st = None{}
	}
	switch st := st.(type) {
	case Inserting:
		if _, err := document.New(st.Kind, document.XYWH{}, nil); err != nil {
			return fmt.Errorf("set mode %s: %w", st.Mode(), err)
		}
	case Resizing:
		if _, ok := e.store.Scene().Layer(st.LayerID); !ok {
			return fmt.Errorf("set mode %s: %w: %s", st.Mode(), scene.ErrUnknownLayer, st.LayerID)
		}
		if !st.Corner.Valid() {
			return fmt.Errorf("set mode %s: invalid handle %d", st.Mode(), st.Corner)
		}
	}
	e.endGesture()
	logger().Debug("mode changed", "from", e.state.Mode(), "to", st.Mode())
	e.state = st
	return nil
}

// BeginResize starts dragging handle corner of layer id. The layer's
// current bounds become the resize origin.
func (e *Engine) BeginResize(id string, corner geometry.Side) error {
	l, ok := e.store.Scene().Layer(id)
	if !ok {
		return fmt.Errorf("begin resize: %w: %s", scene.ErrUnknownLayer, id)
	}
	return e.SetMode(Resizing{LayerID: id, Initial: l.Base().Bounds(), Corner: corner})
}

// Cancel abandons the current gesture. Mutations already applied by the
// gesture stay committed. Sticky tools stay armed; everything else returns
// to None.
func (e *Engine) Cancel() {
	e.endGesture()
	switch e.state.(type) {
	case Pencil, Moving:
	default:
		e.state = None{}
	}
}

func (e *Engine) endGesture() {
	e.panning = false
	e.draft = nil
}

// --- Document ---

// SelectAll selects every layer.
func (e *Engine) SelectAll() {
	e.sel.Replace(e.store.Scene().Order...)
}

// ClearSelection empties the selection.
func (e *Engine) ClearSelection() {
	e.sel.Clear()
}

// Select replaces the selection with the given ids. Unknown ids are
// dropped.
func (e *Engine) Select(ids ...string) {
	e.sel.Replace(ids...)
	e.sel.Prune(e.store.Scene())
}

// NewBoard replaces the scene with an empty one. The selection and the
// undo target are dropped; the clipboard survives.
func (e *Engine) NewBoard(ctx context.Context) error {
	return e.ReplaceScene(ctx, scene.New())
}

// ReplaceScene swaps in sc wholesale, e.g. a sample board. Like NewBoard
// it ends any gesture and drops the selection and the undo target, which
// refer to the old scene. sc must be consistent; if it is not, nothing
// changes.
func (e *Engine) ReplaceScene(ctx context.Context, sc *scene.Scene) error {
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("replace scene: %w", err)
	}
	e.endGesture()
	e.state = None{}
	e.sel.Clear()
	e.exec.Forget()
	if err := e.store.Replace(ctx, sc); err != nil {
		return fmt.Errorf("replace scene: %w", err)
	}
	return nil
}

// Undo reverts the most recent reversible command.
func (e *Engine) Undo(ctx context.Context) error {
	return e.exec.Undo(ctx)
}
