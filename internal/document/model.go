package document

import "errors"

var ErrUnknownKind = errors.New("unknown layer kind")

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindPath      Kind = "path"
	KindText      Kind = "text"
	KindNote      Kind = "note"
	KindImage     Kind = "image"
	KindArrow     Kind = "arrow"
	KindLine      Kind = "line"
	KindTriangle  Kind = "triangle"
	KindRhombus   Kind = "rhombus"
	KindPentagon  Kind = "pentagon"
	KindHexagon   Kind = "hexagon"
	KindStar      Kind = "star"
)

// Kinds lists every layer kind in a stable order.
var Kinds = []Kind{
	KindRectangle, KindEllipse, KindPath, KindText, KindNote, KindImage,
	KindArrow, KindLine, KindTriangle, KindRhombus, KindPentagon, KindHexagon, KindStar,
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignMiddle Align = "middle"
	AlignBottom Align = "bottom"
)

type Head string

const (
	HeadNone   Head = "none"
	HeadArrow  Head = "arrow"
	HeadCircle Head = "circle"
)

const DefaultFontSize = 16

// XYWH is an axis-aligned box in scene coordinates, (X, Y) being the top-left corner.
type XYWH struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Frame holds the fields every layer kind carries.
type Frame struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Fill    *Color  `json:"fill"`
	Outline *Color  `json:"outline,omitempty"`
}

func (f *Frame) Base() *Frame { return f }

func (f *Frame) Bounds() XYWH {
	return XYWH{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

func (f *Frame) SetBounds(b XYWH) {
	f.X, f.Y, f.Width, f.Height = b.X, b.Y, b.Width, b.Height
}

func (f *Frame) Translate(dx, dy float64) {
	f.X += dx
	f.Y += dy
}

// Visible reports whether the layer paints anything: a fill or an outline.
func (f *Frame) Visible() bool {
	return !f.Fill.Clear() || !f.Outline.Clear()
}

// Visible reports whether l paints anything. Images paint their source
// even without a fill or outline.
func Visible(l Layer) bool {
	if img, ok := l.(*Image); ok && img.Src != "" {
		return true
	}
	return l.Base().Visible()
}

func (f Frame) clone() Frame {
	f.Fill = f.Fill.Copy()
	f.Outline = f.Outline.Copy()
	return f
}

// Layer is one shape on the board. The set of implementations is closed:
// only the structs in this package satisfy it.
type Layer interface {
	Kind() Kind
	Base() *Frame
	Clone() Layer
	sealed()
}

type Rectangle struct {
	Frame
}

type Ellipse struct {
	Frame
}

// Path is a freehand stroke. Points are (x, y, pressure) relative to the
// path's own top-left corner, and Fill is the stroke color.
type Path struct {
	Frame
	Points [][3]float64 `json:"points"`
}

type Text struct {
	Frame
	Value    string  `json:"value"`
	FontSize float64 `json:"fontSize"`
	HAlign   Align   `json:"hAlign"`
	VAlign   Align   `json:"vAlign"`
}

type Note struct {
	Frame
	Value    string  `json:"value"`
	FontSize float64 `json:"fontSize"`
	HAlign   Align   `json:"hAlign"`
	VAlign   Align   `json:"vAlign"`
}

type Image struct {
	Frame
	Src string `json:"src"`
}

// Connector is an arrow or a plain line spanning its frame diagonally.
type Connector struct {
	Frame
	StartHead Head `json:"startHead"`
	EndHead   Head `json:"endHead"`
	kind      Kind
}

// Polygon covers the regular and irregular polygon kinds inscribed in the frame.
type Polygon struct {
	Frame
	kind Kind
}

func (*Rectangle) Kind() Kind   { return KindRectangle }
func (*Ellipse) Kind() Kind     { return KindEllipse }
func (*Path) Kind() Kind        { return KindPath }
func (*Text) Kind() Kind        { return KindText }
func (*Note) Kind() Kind        { return KindNote }
func (*Image) Kind() Kind       { return KindImage }
func (c *Connector) Kind() Kind { return c.kind }
func (p *Polygon) Kind() Kind   { return p.kind }

func (*Rectangle) sealed() {}
func (*Ellipse) sealed()   {}
func (*Path) sealed()      {}
func (*Text) sealed()      {}
func (*Note) sealed()      {}
func (*Image) sealed()     {}
func (*Connector) sealed() {}
func (*Polygon) sealed()   {}

func (r *Rectangle) Clone() Layer {
	return &Rectangle{Frame: r.Frame.clone()}
}

func (e *Ellipse) Clone() Layer {
	return &Ellipse{Frame: e.Frame.clone()}
}

func (p *Path) Clone() Layer {
	points := make([][3]float64, len(p.Points))
	copy(points, p.Points)
	return &Path{Frame: p.Frame.clone(), Points: points}
}

func (t *Text) Clone() Layer {
	c := *t
	c.Frame = t.Frame.clone()
	return &c
}

func (n *Note) Clone() Layer {
	c := *n
	c.Frame = n.Frame.clone()
	return &c
}

func (i *Image) Clone() Layer {
	return &Image{Frame: i.Frame.clone(), Src: i.Src}
}

func (c *Connector) Clone() Layer {
	out := *c
	out.Frame = c.Frame.clone()
	return &out
}

func (p *Polygon) Clone() Layer {
	return &Polygon{Frame: p.Frame.clone(), kind: p.kind}
}

func NewRectangle(b XYWH, fill *Color) *Rectangle {
	return &Rectangle{Frame: frame(b, fill)}
}

func NewEllipse(b XYWH, fill *Color) *Ellipse {
	return &Ellipse{Frame: frame(b, fill)}
}

func NewPath(b XYWH, fill *Color, points [][3]float64) *Path {
	return &Path{Frame: frame(b, fill), Points: points}
}

func NewText(b XYWH, fill *Color) *Text {
	return &Text{Frame: frame(b, fill), FontSize: DefaultFontSize, HAlign: AlignLeft, VAlign: AlignTop}
}

func NewNote(b XYWH, fill *Color) *Note {
	return &Note{Frame: frame(b, fill), FontSize: DefaultFontSize, HAlign: AlignCenter, VAlign: AlignMiddle}
}

func NewImage(b XYWH, src string) *Image {
	return &Image{Frame: frame(b, nil), Src: src}
}

func NewArrow(b XYWH, fill *Color) *Connector {
	return &Connector{Frame: frame(b, fill), StartHead: HeadNone, EndHead: HeadArrow, kind: KindArrow}
}

func NewLine(b XYWH, fill *Color) *Connector {
	return &Connector{Frame: frame(b, fill), StartHead: HeadNone, EndHead: HeadNone, kind: KindLine}
}

// NewPolygon builds a polygon layer; kind must be one of the polygon kinds.
func NewPolygon(kind Kind, b XYWH, fill *Color) (*Polygon, error) {
	switch kind {
	case KindTriangle, KindRhombus, KindPentagon, KindHexagon, KindStar:
		return &Polygon{Frame: frame(b, fill), kind: kind}, nil
	}
	return nil, ErrUnknownKind
}

// New builds a layer of any insertable kind. Images get an empty source and
// paths no samples; callers that have those use the dedicated constructors.
func New(kind Kind, b XYWH, fill *Color) (Layer, error) {
	switch kind {
	case KindRectangle:
		return NewRectangle(b, fill), nil
	case KindEllipse:
		return NewEllipse(b, fill), nil
	case KindPath:
		return NewPath(b, fill, nil), nil
	case KindText:
		return NewText(b, fill), nil
	case KindNote:
		return NewNote(b, fill), nil
	case KindImage:
		return NewImage(b, ""), nil
	case KindArrow:
		return NewArrow(b, fill), nil
	case KindLine:
		return NewLine(b, fill), nil
	case KindTriangle, KindRhombus, KindPentagon, KindHexagon, KindStar:
		return NewPolygon(kind, b, fill)
	}
	return nil, ErrUnknownKind
}

func frame(b XYWH, fill *Color) Frame {
	return Frame{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, Fill: fill.Copy()}
}
