package asset

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// normalize converts any decoded image into a freshly allocated,
// origin-based, non-premultiplied 8-bit RGBA image.
func normalize(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	switch s := src.(type) {
	case *image.NRGBA:
		for y := range h {
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], s.Pix[i:i+4*w])
		}
	case *image.NRGBA64:
		narrowNRGBA64(dst, s, b.Min)
	case *image.RGBA:
		for y := range h {
			row := dst.Pix[y*dst.Stride:]
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				p := s.Pix[i+x*4 : i+x*4+4 : i+x*4+4]
				var c color.NRGBA
				switch p[3] {
				case 0:
				case 0xff:
					c = color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
				default:
					c = color.NRGBAModel.Convert(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}).(color.NRGBA)
				}
				row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
			}
		}
	case *image.Gray:
		for y := range h {
			row := dst.Pix[y*dst.Stride:]
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				v := s.Pix[i+x]
				row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3] = v, v, v, 0xff
			}
		}
	case *image.Gray16:
		for y := range h {
			row := dst.Pix[y*dst.Stride:]
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				v := narrow(s.Pix[i+x*2], s.Pix[i+x*2+1])
				row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3] = v, v, v, 0xff
			}
		}
	case *image.Paletted:
		lut := make([]color.NRGBA, 256)
		for i, c := range s.Palette {
			if i >= len(lut) {
				break
			}
			lut[i] = toNRGBA(c)
		}
		for y := range h {
			row := dst.Pix[y*dst.Stride:]
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range w {
				// indices past the palette stay transparent black
				c := lut[s.Pix[i+x]]
				row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
			}
		}
	default:
		// 16-bit intermediate so deep sources round instead of truncating
		tmp := image.NewNRGBA64(dst.Rect)
		draw.Draw(tmp, tmp.Bounds(), src, b.Min, draw.Src)
		narrowNRGBA64(dst, tmp, image.Point{})
	}

	return dst
}

// narrowNRGBA64 fills dst from s starting at p0, rounding every channel.
func narrowNRGBA64(dst *image.NRGBA, s *image.NRGBA64, p0 image.Point) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := range h {
		row := dst.Pix[y*dst.Stride:]
		i := s.PixOffset(p0.X, p0.Y+y)
		for x := range w {
			p := s.Pix[i+x*8 : i+x*8+8 : i+x*8+8]
			row[x*4+0] = narrow(p[0], p[1])
			row[x*4+1] = narrow(p[2], p[3])
			row[x*4+2] = narrow(p[4], p[5])
			row[x*4+3] = narrow(p[6], p[7])
		}
	}
}

// narrow rounds a big-endian 16-bit channel to the nearest 8-bit value.
func narrow(hi, lo uint8) uint8 {
	return round16(uint16(hi)<<8 | uint16(lo))
}

func round16(v uint16) uint8 {
	return uint8((uint32(v) + 128) / 257)
}

func toNRGBA(c color.Color) color.NRGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return color.NRGBA{R: round16(n.R), G: round16(n.G), B: round16(n.B), A: round16(n.A)}
}
