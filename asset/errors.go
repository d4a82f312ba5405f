package asset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when no enabled codec recognises the data.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrTooLarge is returned when an image exceeds the decoder's pixel budget.
	ErrTooLarge = errors.New("image too large")
)

// DecodeError reports why a byte buffer could not be turned into an Image.
// Format is empty when no codec was selected.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("asset: decode: %v", e.Err)
	}
	return fmt.Sprintf("asset: decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
