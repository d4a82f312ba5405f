package asset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const tgaHeaderSize = 18

// TGA image types. Bit 3 marks run-length encoding.
const (
	tgaColorMapped = 1
	tgaTrueColor   = 2
	tgaGray        = 3
	tgaRLE         = 8
)

// descriptor bits
const (
	tgaAlphaBits   = 0x0f
	tgaRightToLeft = 0x10
	tgaTopToBottom = 0x20
	tgaInterleave  = 0xc0
)

var errTGAHeader = errors.New("tga: invalid header")

type tgaHeader struct {
	idLength   uint8
	cmapType   uint8
	imageType  uint8
	cmapFirst  uint16
	cmapLength uint16
	cmapDepth  uint8
	width      uint16
	height     uint16
	depth      uint8
	descriptor uint8
}

func (h tgaHeader) base() uint8 { return h.imageType &^ tgaRLE }

// parseTGAHeader reads and validates the fixed header. TGA has no magic
// number, so this doubles as the format sniffer.
func parseTGAHeader(b []byte) (tgaHeader, error) {
	if len(b) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("%w: %w", errTGAHeader, io.ErrUnexpectedEOF)
	}
	h := tgaHeader{
		idLength:   b[0],
		cmapType:   b[1],
		imageType:  b[2],
		cmapFirst:  binary.LittleEndian.Uint16(b[3:]),
		cmapLength: binary.LittleEndian.Uint16(b[5:]),
		cmapDepth:  b[7],
		width:      binary.LittleEndian.Uint16(b[12:]),
		height:     binary.LittleEndian.Uint16(b[14:]),
		depth:      b[16],
		descriptor: b[17],
	}

	switch {
	case h.cmapType > 1:
		return h, fmt.Errorf("%w: color map type %d", errTGAHeader, h.cmapType)
	case h.imageType&^(tgaRLE|3) != 0 || h.base() == 0:
		return h, fmt.Errorf("%w: image type %d", errTGAHeader, h.imageType)
	case h.width == 0 || h.height == 0:
		return h, fmt.Errorf("%w: empty image %dx%d", errTGAHeader, h.width, h.height)
	case h.descriptor&tgaInterleave != 0:
		return h, fmt.Errorf("%w: interleaved rows are not supported", errTGAHeader)
	case h.cmapType == 1 && !validTGAColorDepth(h.cmapDepth):
		return h, fmt.Errorf("%w: color map depth %d", errTGAHeader, h.cmapDepth)
	}

	switch h.base() {
	case tgaColorMapped:
		if h.cmapType != 1 || h.cmapLength == 0 || h.depth != 8 {
			return h, fmt.Errorf("%w: color-mapped image with depth %d and %d map entries", errTGAHeader, h.depth, h.cmapLength)
		}
	case tgaTrueColor:
		if !validTGAColorDepth(h.depth) {
			return h, fmt.Errorf("%w: true-color depth %d", errTGAHeader, h.depth)
		}
	case tgaGray:
		if h.depth != 8 && h.depth != 16 {
			return h, fmt.Errorf("%w: grayscale depth %d", errTGAHeader, h.depth)
		}
	}
	return h, nil
}

func validTGAColorDepth(d uint8) bool {
	return d == 15 || d == 16 || d == 24 || d == 32
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var buf [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, fmt.Errorf("tga: reading header: %w", err)
	}
	h, err := parseTGAHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: int(h.width), Height: int(h.height)}, nil
}

func decodeTGA(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("tga: %w", err)
	}
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	d := tgaDecoder{h: h, data: data, off: tgaHeaderSize + int(h.idLength)}
	if err := d.readColorMap(); err != nil {
		return nil, err
	}
	return d.readPixels()
}

type tgaDecoder struct {
	h    tgaHeader
	data []byte
	off  int
	cmap []color.NRGBA
}

func (d *tgaDecoder) next(n int) ([]byte, error) {
	if d.off+n > len(d.data) {
		return nil, io.ErrUnexpectedEOF
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *tgaDecoder) readColorMap() error {
	if d.h.cmapType == 0 {
		return nil
	}
	size := int(d.h.cmapDepth+7) / 8
	b, err := d.next(int(d.h.cmapLength) * size)
	if err != nil {
		return fmt.Errorf("tga: reading color map: %w", err)
	}
	if d.h.base() != tgaColorMapped {
		return nil
	}
	d.cmap = make([]color.NRGBA, d.h.cmapLength)
	for i := range d.cmap {
		d.cmap[i] = d.trueColor(b[i*size:(i+1)*size], d.h.cmapDepth)
	}
	return nil
}

func (d *tgaDecoder) readPixels() (image.Image, error) {
	w, h := int(d.h.width), int(d.h.height)
	size := int(d.h.depth+7) / 8
	n := w * h

	// the smallest encoding of n pixels must fit before the image is allocated
	need := n * size
	if d.h.imageType&tgaRLE != 0 {
		need = (n + 127) / 128 * (1 + size)
	}
	if have := len(d.data) - d.off; have < need {
		return nil, fmt.Errorf("tga: %d bytes of pixel data for %dx%d, need at least %d: %w", have, w, h, need, io.ErrUnexpectedEOF)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	put := func(k int, p []byte) error {
		c, err := d.pixel(p)
		if err != nil {
			return err
		}
		row, col := k/w, k%w
		if d.h.descriptor&tgaTopToBottom == 0 {
			row = h - 1 - row
		}
		if d.h.descriptor&tgaRightToLeft != 0 {
			col = w - 1 - col
		}
		img.SetNRGBA(col, row, c)
		return nil
	}

	for k := 0; k < n; {
		count, repeat := 1, false
		if d.h.imageType&tgaRLE != 0 {
			b, err := d.next(1)
			if err != nil {
				return nil, fmt.Errorf("tga: reading packet %d: %w", k, err)
			}
			count, repeat = int(b[0]&0x7f)+1, b[0]&0x80 != 0
			if k+count > n {
				return nil, fmt.Errorf("tga: packet at pixel %d overruns image", k)
			}
		}

		if repeat {
			p, err := d.next(size)
			if err != nil {
				return nil, fmt.Errorf("tga: reading pixel %d: %w", k, err)
			}
			for range count {
				if err := put(k, p); err != nil {
					return nil, err
				}
				k++
			}
			continue
		}

		for range count {
			p, err := d.next(size)
			if err != nil {
				return nil, fmt.Errorf("tga: reading pixel %d: %w", k, err)
			}
			if err := put(k, p); err != nil {
				return nil, err
			}
			k++
		}
	}
	return img, nil
}

func (d *tgaDecoder) pixel(p []byte) (color.NRGBA, error) {
	switch d.h.base() {
	case tgaColorMapped:
		i := int(p[0]) - int(d.h.cmapFirst)
		if i < 0 || i >= len(d.cmap) {
			return color.NRGBA{}, fmt.Errorf("tga: color index %d out of range", p[0])
		}
		return d.cmap[i], nil
	case tgaGray:
		if len(p) == 2 {
			return color.NRGBA{R: p[0], G: p[0], B: p[0], A: p[1]}, nil
		}
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 0xff}, nil
	default:
		return d.trueColor(p, d.h.depth), nil
	}
}

// trueColor converts a little-endian BGR(A) value of the given bit depth.
func (d *tgaDecoder) trueColor(p []byte, depth uint8) color.NRGBA {
	switch depth {
	case 15, 16:
		v := binary.LittleEndian.Uint16(p)
		c := color.NRGBA{
			R: expand5(uint8(v >> 10 & 0x1f)),
			G: expand5(uint8(v >> 5 & 0x1f)),
			B: expand5(uint8(v & 0x1f)),
			A: 0xff,
		}
		if depth == 16 && d.h.descriptor&tgaAlphaBits == 1 && v&0x8000 == 0 {
			c.A = 0
		}
		return c
	case 24:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	default:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
}

func expand5(v uint8) uint8 {
	return v<<3 | v>>2
}
