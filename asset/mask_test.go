package asset

import (
	"image"
	"image/color"
	"testing"
)

// maskOf builds a mask from rows of '#' (solid) and '.' (clear).
func maskOf(rows ...string) *Mask {
	w, h := len(rows[0]), len(rows)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				img.SetNRGBA(x, y, color.NRGBA{A: 0xff})
			}
		}
	}
	return newMask(img.Pix, w, h)
}

func TestMaskQueries(t *testing.T) {
	m := maskOf(
		"#..",
		".#.",
	)
	if m.Len() != 6 || m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("size = %d (%dx%d)", m.Len(), m.Width(), m.Height())
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}
	if !m.Test(0) || m.Test(1) || !m.Test(4) {
		t.Error("Test does not follow row-major order")
	}
	if m.Test(-1) || m.Test(6) {
		t.Error("out of range Test reported solid")
	}
	if !m.Solid(1, 1) || m.Solid(2, 1) || m.Solid(-1, 0) || m.Solid(3, 0) {
		t.Error("Solid disagrees with mask contents")
	}
	if w := m.Words(); len(w) != 1 || w[0] != 0b10001 {
		t.Errorf("Words = %b, want [10001]", w)
	}
	if got := m.At(0, 0); got != (color.Gray{Y: 0xff}) {
		t.Errorf("At(0,0) = %v, want white", got)
	}
	if got := m.At(1, 0); got != (color.Gray{}) {
		t.Errorf("At(1,0) = %v, want black", got)
	}
}

func TestMaskWordsIsCopy(t *testing.T) {
	m := maskOf("##")
	w := m.Words()
	w[0] = 0
	if m.Count() != 2 {
		t.Error("Words exposed the backing storage")
	}
}

func TestMaskEqual(t *testing.T) {
	a := maskOf("#.", ".#")
	if !a.Equal(maskOf("#.", ".#")) {
		t.Error("identical masks are not equal")
	}
	if a.Equal(maskOf("#..#")) {
		t.Error("masks with different shapes are equal")
	}
	if a.Equal(maskOf("##", ".#")) {
		t.Error("masks with different bits are equal")
	}
	if a.Equal(nil) {
		t.Error("mask equals nil")
	}
}

func TestMaskOverlaps(t *testing.T) {
	ring := maskOf(
		"###",
		"#.#",
		"###",
	)
	dot := maskOf("#")

	tests := []struct {
		name   string
		dx, dy int
		want   bool
	}{
		{"corner", 0, 0, true},
		{"hole", 1, 1, false},
		{"edge", 2, 1, true},
		{"outside right", 3, 0, false},
		{"outside above", 0, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ring.Overlaps(dot, tt.dx, tt.dy); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
			if got := dot.Overlaps(ring, -tt.dx, -tt.dy); got != tt.want {
				t.Errorf("reverse Overlaps(%d, %d) = %v, want %v", -tt.dx, -tt.dy, got, tt.want)
			}
		})
	}

	clear := maskOf("...", "...")
	if ring.Overlaps(clear, 0, 0) {
		t.Error("transparent mask overlaps")
	}
	if ring.Overlaps(nil, 0, 0) {
		t.Error("nil mask overlaps")
	}
}

func TestMaskEmpty(t *testing.T) {
	m := newMask(nil, 0, 0)
	if m.Len() != 0 || m.Count() != 0 || m.Test(0) {
		t.Error("empty mask is not empty")
	}
}
