//go:build !spritemask_nogif

package asset

import (
	"fmt"
	"image/gif"
	"io"
)

func init() {
	register(codec{
		format:     GIF,
		extensions: []string{"gif"},
		match: func(b []byte) bool {
			return hasPrefix(b, "GIF87a") || hasPrefix(b, "GIF89a")
		},
		// first frame only
		decode:   gif.Decode,
		config:   gif.DecodeConfig,
		complete: gifComplete,
	})
}

// gifComplete walks the block structure up to the trailer. gif.Decode stops
// after the first frame, so it never notices a stream cut short after it.
func gifComplete(b []byte) error {
	const (
		extension  = 0x21
		descriptor = 0x2c
		trailer    = 0x3b
	)
	if len(b) < 13 {
		return fmt.Errorf("gif: header: %w", io.ErrUnexpectedEOF)
	}
	off := 13
	if flags := b[10]; flags&0x80 != 0 {
		off += 3 << (flags&0x07 + 1)
	}
	for {
		if off >= len(b) {
			return fmt.Errorf("gif: missing trailer: %w", io.ErrUnexpectedEOF)
		}
		switch b[off] {
		case trailer:
			return nil
		case extension:
			off += 2
		case descriptor:
			if off+10 > len(b) {
				return fmt.Errorf("gif: image descriptor: %w", io.ErrUnexpectedEOF)
			}
			if flags := b[off+9]; flags&0x80 != 0 {
				off += 3 << (flags&0x07 + 1)
			}
			// descriptor and LZW minimum code size
			off += 11
		default:
			return fmt.Errorf("gif: unknown block 0x%02x at offset %d", b[off], off)
		}
		// data sub-blocks up to the zero-length terminator
		for {
			if off >= len(b) {
				return fmt.Errorf("gif: data sub-block: %w", io.ErrUnexpectedEOF)
			}
			n := int(b[off])
			off += 1 + n
			if n == 0 {
				break
			}
		}
	}
}
