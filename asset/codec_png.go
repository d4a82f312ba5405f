//go:build !spritemask_nopng

package asset

import "image/png"

func init() {
	register(codec{
		format:     PNG,
		extensions: []string{"png"},
		match: func(b []byte) bool {
			return hasPrefix(b, "\x89PNG\r\n\x1a\n")
		},
		decode: png.Decode,
		config: png.DecodeConfig,
	})
}
