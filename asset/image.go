package asset

import (
	"image"
	"image/color"
)

// Image is a decoded asset: an owned, non-premultiplied 8-bit RGBA pixel
// grid and the collision mask derived from its alpha channel. Images are
// immutable; accessors hand out copies.
type Image struct {
	// pix holds the pixels in row-major order, 4 bytes per pixel (R, G, B, A).
	pix    []uint8
	width  int
	height int
	format Format
	mask   *Mask
}

var _ image.Image = (*Image)(nil)

// newImage takes ownership of src, which must start at the origin and have
// a stride of exactly 4*width.
func newImage(src *image.NRGBA, format Format) *Image {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return &Image{
		pix:    src.Pix,
		width:  w,
		height: h,
		format: format,
		mask:   newMask(src.Pix, w, h),
	}
}

func (im *Image) Width() int     { return im.width }
func (im *Image) Height() int    { return im.height }
func (im *Image) Format() Format { return im.format }
func (im *Image) Mask() *Mask    { return im.mask }

// Pix returns a copy of the pixel buffer, width*height*4 bytes long.
func (im *Image) Pix() []uint8 {
	return append([]uint8(nil), im.pix...)
}

// NRGBA returns a copy of the image as an *image.NRGBA.
func (im *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    im.Pix(),
		Stride: 4 * im.width,
		Rect:   image.Rect(0, 0, im.width, im.height),
	}
}

func (im *Image) ColorModel() color.Model { return color.NRGBAModel }

func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.width, im.height)
}

func (im *Image) At(x, y int) color.Color {
	return im.NRGBAAt(x, y)
}

// NRGBAAt returns the pixel at (x, y), or transparent black outside the
// bounds.
func (im *Image) NRGBAAt(x, y int) color.NRGBA {
	if !image.Pt(x, y).In(im.Bounds()) {
		return color.NRGBA{}
	}
	i := (y*im.width + x) * 4
	s := im.pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}
