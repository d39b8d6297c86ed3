package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/inamate/board/internal/document"
)

// Side is a bit set naming the edges a resize handle moves.
type Side int

const (
	Top Side = 1 << iota
	Bottom
	Left
	Right
)

const (
	TopLeft     = Top | Left
	TopRight    = Top | Right
	BottomLeft  = Bottom | Left
	BottomRight = Bottom | Right
)

func (s Side) Has(edge Side) bool { return s&edge != 0 }

// IsCorner reports whether s moves one horizontal and one vertical edge.
func (s Side) IsCorner() bool {
	return (s.Has(Top) || s.Has(Bottom)) && (s.Has(Left) || s.Has(Right))
}

// Valid rejects empty sets and sets naming two opposite edges.
func (s Side) Valid() bool {
	if s == 0 || s&^(Top|Bottom|Left|Right) != 0 {
		return false
	}
	return !(s.Has(Top) && s.Has(Bottom)) && !(s.Has(Left) && s.Has(Right))
}

// AspectLocked reports whether corner resizes of kind keep the original
// width/height ratio.
func AspectLocked(kind document.Kind) bool {
	switch kind {
	case document.KindImage, document.KindPentagon, document.KindHexagon, document.KindStar:
		return true
	case document.KindRectangle, document.KindEllipse, document.KindPath, document.KindText,
		document.KindNote, document.KindArrow, document.KindLine, document.KindTriangle,
		document.KindRhombus:
		return false
	}
	return false
}

// ResizeBounds computes the box a layer of the given kind takes when the
// handle for corner is dragged to point. bounds is the box at gesture start.
func ResizeBounds(kind document.Kind, bounds document.XYWH, corner Side, point vec.Vec2) document.XYWH {
	if AspectLocked(kind) && corner.IsCorner() && bounds.Width > 0 && bounds.Height > 0 {
		return resizeProportional(bounds, corner, point)
	}
	return resizeFree(bounds, corner, point)
}

// resizeFree moves every active edge to the pointer independently; the
// opposite edge stays pinned and the size is the distance between them.
func resizeFree(bounds document.XYWH, corner Side, point vec.Vec2) document.XYWH {
	result := bounds
	right := bounds.X + bounds.Width
	bottom := bounds.Y + bounds.Height

	if corner.Has(Left) {
		result.X = min(point.X, right)
		result.Width = math.Abs(right - point.X)
	}
	if corner.Has(Right) {
		result.X = min(point.X, bounds.X)
		result.Width = math.Abs(point.X - bounds.X)
	}
	if corner.Has(Top) {
		result.Y = min(point.Y, bottom)
		result.Height = math.Abs(bottom - point.Y)
	}
	if corner.Has(Bottom) {
		result.Y = min(point.Y, bounds.Y)
		result.Height = math.Abs(point.Y - bounds.Y)
	}
	return result
}

// resizeProportional derives the width from the horizontal displacement
// only and the height from the original aspect ratio, keeping the corner
// opposite the handle fixed.
func resizeProportional(bounds document.XYWH, corner Side, point vec.Vec2) document.XYWH {
	aspect := bounds.Width / bounds.Height

	anchorX := bounds.X
	if corner.Has(Left) {
		anchorX = bounds.X + bounds.Width
	}
	anchorY := bounds.Y
	if corner.Has(Top) {
		anchorY = bounds.Y + bounds.Height
	}

	width := math.Abs(point.X - anchorX)
	height := width / aspect

	result := document.XYWH{Width: width, Height: height}
	result.X = min(point.X, anchorX)
	if corner.Has(Top) {
		result.Y = anchorY - height
	} else {
		result.Y = anchorY
	}
	return result
}
