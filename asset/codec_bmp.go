//go:build !spritemask_nobmp

package asset

import "golang.org/x/image/bmp"

func init() {
	register(codec{
		format:     BMP,
		extensions: []string{"bmp"},
		match: func(b []byte) bool {
			// "BM", file size, then two reserved words that must be zero
			return hasPrefix(b, "BM") && len(b) >= 10 && string(b[6:10]) == "\x00\x00\x00\x00"
		},
		decode: bmp.Decode,
		config: bmp.DecodeConfig,
	})
}
