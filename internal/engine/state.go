package engine

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geometry"
)

// Mode names the active interaction state.
type Mode string

const (
	ModeNone         Mode = "none"
	ModePressing     Mode = "pressing"
	ModeSelectionNet Mode = "selectionNet"
	ModeTranslating  Mode = "translating"
	ModeInserting    Mode = "inserting"
	ModeResizing     Mode = "resizing"
	ModePencil       Mode = "pencil"
	ModeMoving       Mode = "moving"
)

// State is the interaction state of the canvas. Exactly one is active at a
// time; the set of implementations is closed.
type State interface {
	Mode() Mode
	state()
}

// None is the idle state.
type None struct{}

// Pressing is a primary-button press on empty canvas that has not yet
// moved far enough to become a selection net.
type Pressing struct {
	Origin vec.Vec2
}

// SelectionNet is a rubber-band drag from Origin to Current.
type SelectionNet struct {
	Origin  vec.Vec2
	Current vec.Vec2
}

// Translating drags the selection; Current is the last scene point seen.
type Translating struct {
	Current vec.Vec2
}

// Inserting arms a tool that drops a new layer of Kind on pointer-up. Src
// is the image source used when Kind is an image.
type Inserting struct {
	Kind document.Kind
	Src  string
}

// Resizing drags handle Corner of layer LayerID, starting from Initial.
type Resizing struct {
	LayerID string
	Initial document.XYWH
	Corner  geometry.Side
}

// Pencil draws freehand strokes until another tool is chosen.
type Pencil struct{}

// Moving is the sticky pan tool.
type Moving struct{}

func (None) Mode() Mode         { return ModeNone }
func (Pressing) Mode() Mode     { return ModePressing }
func (SelectionNet) Mode() Mode { return ModeSelectionNet }
func (Translating) Mode() Mode  { return ModeTranslating }
func (Inserting) Mode() Mode    { return ModeInserting }
func (Resizing) Mode() Mode     { return ModeResizing }
func (Pencil) Mode() Mode       { return ModePencil }
func (Moving) Mode() Mode       { return ModeMoving }

// ErrNotATool is returned by Tool for gesture modes, which only pointer
// input can enter.
var ErrNotATool = errors.New("mode cannot be set directly")

// Tool maps a toolbar selection onto an interaction state. kind and src
// apply to ModeInserting only; an empty mode is ModeNone.
func Tool(mode Mode, kind document.Kind, src string) (State, error) {
	switch mode {
	case ModeNone, "":
		return None{}, nil
	case ModePencil:
		return Pencil{}, nil
	case ModeMoving:
		return Moving{}, nil
	case ModeInserting:
		return Inserting{Kind: kind, Src: src}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotATool, mode)
}

func (None) state()         {}
func (Pressing) state()     {}
func (SelectionNet) state() {}
func (Translating) state()  {}
func (Inserting) state()    {}
func (Resizing) state()     {}
func (Pencil) state()       {}
func (Moving) state()       {}

// Button identifies a pointer button using DOM numbering.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent is a pointer event in screen coordinates.
type PointerEvent struct {
	Screen   vec.Vec2 `json:"screen"`
	Button   Button   `json:"button"`
	Pressure float64  `json:"pressure"`
}
