//go:build !spritemask_notiff

package asset

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/tiff"
)

func init() {
	register(codec{
		format:     TIFF,
		extensions: []string{"tif", "tiff"},
		match: func(b []byte) bool {
			return hasPrefix(b, "II*\x00") || hasPrefix(b, "MM\x00*")
		},
		decode:   tiff.Decode,
		config:   tiff.DecodeConfig,
		complete: tiffComplete,
	})
}

// tiffTypeSize is the size in bytes of one value of each TIFF field type.
var tiffTypeSize = [...]int64{
	1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1,
	7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8,
}

// tiffComplete checks that the first IFD, including the next-IFD offset and
// every value stored outside it, lies within b. tiff.Decode never reads the
// next-IFD offset, so a file missing its last bytes would otherwise decode.
func tiffComplete(b []byte) error {
	size := int64(len(b))
	if size < 8 {
		return fmt.Errorf("tiff: header: %w", io.ErrUnexpectedEOF)
	}
	var order binary.ByteOrder = binary.LittleEndian
	if b[0] == 'M' {
		order = binary.BigEndian
	}
	ifd := int64(order.Uint32(b[4:8]))
	if ifd+2 > size {
		return fmt.Errorf("tiff: IFD at %d: %w", ifd, io.ErrUnexpectedEOF)
	}
	n := int64(order.Uint16(b[ifd:]))
	if end := ifd + 2 + 12*n + 4; end > size {
		return fmt.Errorf("tiff: IFD of %d entries ends at %d past %d: %w", n, end, size, io.ErrUnexpectedEOF)
	}
	for i := range n {
		e := b[ifd+2+12*i:]
		typ := int(order.Uint16(e[2:4]))
		if typ >= len(tiffTypeSize) || tiffTypeSize[typ] == 0 {
			continue
		}
		length := tiffTypeSize[typ] * int64(order.Uint32(e[4:8]))
		if length <= 4 {
			continue
		}
		if off := int64(order.Uint32(e[8:12])); off+length > size {
			return fmt.Errorf("tiff: tag %d value ends at %d past %d: %w", order.Uint16(e[0:2]), off+length, size, io.ErrUnexpectedEOF)
		}
	}
	return nil
}
