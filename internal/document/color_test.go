package document

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: RGB(255, 0, 0)},
		{in: "#0f0", want: RGB(0, 255, 0)},
		{in: "#00000080", want: Color{A: 0x80}},
		{in: "  LightGray ", want: RGB(211, 211, 211)},
		{in: "transparent", want: Color{}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "blurple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorClear(t *testing.T) {
	var nilColor *Color
	if !nilColor.Clear() {
		t.Error("nil color should be clear")
	}
	if !(&Color{}).Clear() {
		t.Error("zero color should be clear")
	}
	if RGB(0, 0, 0).Ptr().Clear() {
		t.Error("opaque black should not be clear")
	}
}

func TestParseOutline(t *testing.T) {
	tests := []struct {
		in      string
		want    *Color
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "  ", want: nil},
		{in: "#000", want: RGB(0, 0, 0).Ptr()},
		{in: "navy", want: RGB(0, 0, 128).Ptr()},
		{in: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutline(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutline(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) || got != nil && *got != *tt.want {
				t.Errorf("ParseOutline(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
