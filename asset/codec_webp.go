//go:build !spritemask_nowebp

package asset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/riff"
	"golang.org/x/image/webp"
)

var webpType = riff.FourCC{'W', 'E', 'B', 'P'}

func init() {
	register(codec{
		format:     WebP,
		extensions: []string{"webp"},
		match: func(b []byte) bool {
			if !hasPrefix(b, "RIFF") {
				return false
			}
			formType, _, err := riff.NewReader(bytes.NewReader(b))
			return err == nil && formType == webpType
		},
		decode:   webp.Decode,
		config:   webp.DecodeConfig,
		complete: webpComplete,
	})
}

// webpComplete checks the RIFF size field against the data length. The
// trailing pad byte of an odd-sized chunk is otherwise never read.
func webpComplete(b []byte) error {
	if len(b) < 12 {
		return fmt.Errorf("webp: RIFF header: %w", io.ErrUnexpectedEOF)
	}
	if want, have := int64(binary.LittleEndian.Uint32(b[4:8])), int64(len(b)-8); have < want {
		return fmt.Errorf("webp: RIFF declares %d bytes, have %d: %w", want, have, io.ErrUnexpectedEOF)
	}
	return nil
}
