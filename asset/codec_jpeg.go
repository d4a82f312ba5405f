//go:build !spritemask_nojpeg

package asset

import "image/jpeg"

func init() {
	register(codec{
		format:     JPEG,
		extensions: []string{"jpeg", "jpg"},
		match: func(b []byte) bool {
			return hasPrefix(b, "\xff\xd8\xff")
		},
		decode: jpeg.Decode,
		config: jpeg.DecodeConfig,
	})
}
