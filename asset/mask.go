package asset

import (
	"image"
	"image/color"

	"github.com/bits-and-blooms/bitset"
)

// Mask is a per-pixel collision bitset. Bit i is set when pixel i, in
// row-major order, is not fully transparent.
type Mask struct {
	bits   *bitset.BitSet
	width  int
	height int
}

var _ image.Image = (*Mask)(nil)

// newMask derives the mask from a row-major NRGBA buffer. Any non-zero alpha
// counts as solid.
func newMask(pix []uint8, width, height int) *Mask {
	n := width * height
	bits := bitset.New(uint(n))
	for i := range n {
		if pix[i*4+3] != 0 {
			bits.Set(uint(i))
		}
	}
	return &Mask{bits: bits, width: width, height: height}
}

// Len returns the number of bits, width*height.
func (m *Mask) Len() int    { return m.width * m.height }
func (m *Mask) Width() int  { return m.width }
func (m *Mask) Height() int { return m.height }

// Test reports whether bit i is set. Out of range indices report false.
func (m *Mask) Test(i int) bool {
	if i < 0 || i >= m.Len() {
		return false
	}
	return m.bits.Test(uint(i))
}

// Solid reports whether the pixel at (x, y) collides. Coordinates outside
// the mask are never solid.
func (m *Mask) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits.Test(uint(y*m.width + x))
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.width == o.width && m.height == o.height && m.bits.Equal(o.bits)
}

// Words returns a copy of the backing 64-bit words, least significant bit
// first.
func (m *Mask) Words() []uint64 {
	return append([]uint64(nil), m.bits.Bytes()...)
}

// Overlaps reports whether any solid pixel of m coincides with a solid pixel
// of o when o's top-left corner is placed at (dx, dy) in m's coordinates.
// A nil o overlaps nothing.
func (m *Mask) Overlaps(o *Mask, dx, dy int) bool {
	if o == nil {
		return false
	}
	r := image.Rect(0, 0, m.width, m.height).Intersect(image.Rect(dx, dy, dx+o.width, dy+o.height))
	if r.Empty() {
		return false
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Solid(x, y) && o.Solid(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

func (m *Mask) ColorModel() color.Model { return color.GrayModel }

func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At renders solid pixels white and clear ones black.
func (m *Mask) At(x, y int) color.Color {
	if m.Solid(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}
