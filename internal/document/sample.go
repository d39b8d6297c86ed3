package document

import "github.com/inamate/board/internal/typeid"

// NewSampleBoard returns a small board used by the wasm playground when no
// snapshot exists yet. Order is back to front.
func NewSampleBoard() (map[string]Layer, []string) {
	rectID := typeid.NewLayerID()
	ellipseID := typeid.NewLayerID()
	noteID := typeid.NewLayerID()
	arrowID := typeid.NewLayerID()

	note := NewNote(XYWH{X: 420, Y: 120, Width: 180, Height: 180}, RGB(0xff, 0xf9, 0xb1).Ptr())
	note.Value = "Drag me"

	layers := map[string]Layer{
		rectID:    NewRectangle(XYWH{X: 100, Y: 100, Width: 200, Height: 120}, RGB(0x4f, 0x46, 0xe5).Ptr()),
		ellipseID: NewEllipse(XYWH{X: 160, Y: 280, Width: 140, Height: 140}, RGB(0xf4, 0x72, 0xb6).Ptr()),
		noteID:    note,
		arrowID:   NewArrow(XYWH{X: 300, Y: 160, Width: 120, Height: 40}, RGB(0x11, 0x18, 0x27).Ptr()),
	}
	return layers, []string{rectID, ellipseID, noteID, arrowID}
}
