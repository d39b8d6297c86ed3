package session

import (
	"encoding/json"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/geometry"
)

type Message struct {
	Type    string          `json:"type"`
	BoardID string          `json:"boardId,omitempty"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypePointerDown      = "pointer.down"
	TypePointerMove      = "pointer.move"
	TypePointerUp        = "pointer.up"
	TypeWheel            = "wheel"
	TypeModeSet          = "mode.set"
	TypeLayerPointerDown = "layer.pointerdown"
	TypeResizeBegin      = "resize.begin"
	TypeCancel           = "cancel"
	TypeStyleSet         = "style.set"
	TypeTextSet          = "text.set"
	TypeClipboardCopy    = "clipboard.copy"
	TypeClipboardPaste   = "clipboard.paste"
	TypeSelectionAll     = "selection.all"
	TypeSelectionClear   = "selection.clear"
	TypeSelectionDelete  = "selection.delete"
	TypeZOrderFront      = "zorder.front"
	TypeZOrderBack       = "zorder.back"
	TypeBoardNew         = "board.new"
	TypeUndo             = "undo"

	// Server → client
	TypeWelcome    = "welcome"
	TypeSceneState = "scene.state"
	TypeError      = "error"
)

// LayerPointerPayload is the payload for layer.pointerdown messages.
type LayerPointerPayload struct {
	ID    string              `json:"id"`
	Event engine.PointerEvent `json:"event"`
}

// ModePayload is the payload for mode.set messages. Kind and Src apply to
// the inserting mode only.
type ModePayload struct {
	Mode engine.Mode   `json:"mode"`
	Kind document.Kind `json:"kind,omitempty"`
	Src  string        `json:"src,omitempty"`
}

// ResizePayload is the payload for resize.begin messages.
type ResizePayload struct {
	ID     string        `json:"id"`
	Corner geometry.Side `json:"corner"`
}

// StylePayload is the payload for style.set messages. Absent fields are
// left alone. Colors are CSS colors; an empty outline removes it.
type StylePayload struct {
	Fill     *string        `json:"fill,omitempty"`
	Outline  *string        `json:"outline,omitempty"`
	FontSize *float64       `json:"fontSize,omitempty"`
	HAlign   document.Align `json:"hAlign,omitempty"`
	VAlign   document.Align `json:"vAlign,omitempty"`
}

// TextPayload is the payload for text.set messages.
type TextPayload struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// PastePayload is the payload for clipboard.paste messages.
type PastePayload struct {
	Screen vec.Vec2 `json:"screen"`
}

// WelcomePayload is sent once when a session opens.
type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	BoardID   string `json:"boardId"`
}

// StatePayload is the payload for scene.state messages.
type StatePayload struct {
	engine.View
	Selection []string `json:"selection"`
	CanUndo   bool     `json:"canUndo"`
	Copied    int      `json:"copied,omitempty"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Message string `json:"message"`
}
