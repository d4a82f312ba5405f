//go:build !spritemask_notga

package asset

func init() {
	register(codec{
		format:     TGA,
		extensions: []string{"tga"},
		weak:       true,
		match: func(b []byte) bool {
			_, err := parseTGAHeader(b)
			return err == nil
		},
		decode: decodeTGA,
		config: decodeTGAConfig,
	})
}
