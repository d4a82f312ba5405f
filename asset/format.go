package asset

import (
	"image"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// Format names an encoded image format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TGA  Format = "tga"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

// codec is one entry of the decode table. Codecs without a magic number
// (weak) are only tried after every signature-based codec failed to match.
type codec struct {
	format     Format
	extensions []string
	weak       bool
	match      func([]byte) bool
	decode     func(io.Reader) (image.Image, error)
	config     func(io.Reader) (image.Config, error)
	// complete, when set, rejects data whose container ends early in a way
	// the decoder itself tolerates.
	complete func([]byte) error
}

// builtin holds the codecs compiled into the binary. It is filled by init
// functions in the codec_*.go files, each guarded by a build tag, and is
// read-only afterwards.
var builtin []codec

func register(c codec) {
	builtin = append(builtin, c)
	// signature codecs first, then stable by format name
	slices.SortStableFunc(builtin, func(a, b codec) int {
		switch {
		case a.weak == b.weak:
			return strings.Compare(string(a.format), string(b.format))
		case a.weak:
			return 1
		default:
			return -1
		}
	})
}

// ParseFormat maps a format name, an extension (with or without the dot) or
// a file name to a compiled-in Format.
func ParseFormat(name string) (Format, bool) {
	ext := strings.ToLower(strings.TrimSpace(name))
	if e := filepath.Ext(ext); e != "" {
		ext = e
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return "", false
	}

	for _, c := range builtin {
		if string(c.format) == ext || slices.Contains(c.extensions, ext) {
			return c.format, true
		}
	}
	return "", false
}

// Formats lists the formats compiled into the binary.
func Formats() []Format {
	return defaultDecoder.Formats()
}

// Extensions lists the file extensions of the formats compiled into the
// binary.
func Extensions() []string {
	return defaultDecoder.Extensions()
}

func hasPrefix(data []byte, sig string) bool {
	return len(data) >= len(sig) && string(data[:len(sig)]) == sig
}
