package document

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an 8-bit RGBA color. The zero value is fully transparent.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Clear reports whether c paints nothing: absent or zero-valued.
func (c *Color) Clear() bool {
	return c == nil || *c == Color{}
}

func (c *Color) Copy() *Color {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// Ptr returns a pointer to a copy of c.
func (c Color) Ptr() *Color {
	return &c
}

// ParseOutline parses an outline color. An empty string means no outline.
func ParseOutline(s string) (*Color, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", "transparent" or a
// CSS color name such as "lightgray".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Color{}, nil
	}
	if named, ok := colornames.Map[s]; ok {
		return Color{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("parse color %q: unknown name", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: bad length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
