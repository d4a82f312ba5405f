package asset

import (
	"bytes"
	"fmt"
	"image"
	"slices"
)

// Decoder turns encoded image bytes into Images. The zero value decodes
// every compiled-in format without a pixel budget. A Decoder is immutable
// and safe for concurrent use.
type Decoder struct {
	// enabled restricts the compiled-in codecs; nil enables all of them.
	enabled   map[Format]bool
	maxPixels int
}

type Option func(*Decoder)

// WithFormats limits the decoder to the given formats. Formats that are not
// compiled in stay disabled.
func WithFormats(formats ...Format) Option {
	return func(d *Decoder) {
		d.enabled = make(map[Format]bool, len(formats))
		for _, f := range formats {
			d.enabled[f] = true
		}
	}
}

// WithMaxPixels rejects images with more than n pixels before decoding their
// pixel data. n <= 0 disables the check.
func WithMaxPixels(n int) Option {
	return func(d *Decoder) {
		d.maxPixels = n
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes data with every compiled-in codec enabled.
func Decode(data []byte, hint string) (*Image, error) {
	return defaultDecoder.Decode(data, hint)
}

func (d *Decoder) isEnabled(f Format) bool {
	return d.enabled == nil || d.enabled[f]
}

// Formats lists the enabled formats in sniffing order.
func (d *Decoder) Formats() []Format {
	var res []Format
	for _, c := range builtin {
		if d.isEnabled(c.format) {
			res = append(res, c.format)
		}
	}
	return res
}

// Extensions lists the file extensions handled by the enabled codecs.
func (d *Decoder) Extensions() []string {
	var res []string
	for _, c := range builtin {
		if d.isEnabled(c.format) {
			res = append(res, c.extensions...)
		}
	}
	slices.Sort(res)
	return res
}

// Sniff returns the enabled format whose signature matches data.
func (d *Decoder) Sniff(data []byte) (Format, bool) {
	if c := d.sniff(data); c != nil {
		return c.format, true
	}
	return "", false
}

func (d *Decoder) sniff(data []byte) *codec {
	for i := range builtin {
		c := &builtin[i]
		if d.isEnabled(c.format) && c.match(data) {
			return c
		}
	}
	return nil
}

func (d *Decoder) lookup(f Format) *codec {
	for i := range builtin {
		if builtin[i].format == f && d.isEnabled(f) {
			return &builtin[i]
		}
	}
	return nil
}

// Decode decodes a complete encoded image held in data. hint is an optional
// format name, extension or file name; it is only used when no enabled codec
// recognises the content. data is neither modified nor retained.
func (d *Decoder) Decode(data []byte, hint string) (*Image, error) {
	c := d.sniff(data)
	if c == nil && hint != "" {
		if f, ok := ParseFormat(hint); ok {
			c = d.lookup(f)
		}
	}
	if c == nil {
		return nil, &DecodeError{Err: ErrUnknownFormat}
	}

	img, err := d.run(c, data)
	if err != nil {
		return nil, &DecodeError{Format: c.format, Err: err}
	}
	return newImage(img, c.format), nil
}

// run decodes and normalises data with c. Codec panics are turned into
// errors.
func (d *Decoder) run(c *codec, data []byte) (img *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("codec panic: %v", r)
		}
	}()

	if c.complete != nil {
		if err := c.complete(data); err != nil {
			return nil, err
		}
	}

	if d.maxPixels > 0 {
		conf, err := c.config(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if !withinBudget(conf.Width, conf.Height, d.maxPixels) {
			return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, conf.Width, conf.Height, d.maxPixels)
		}
	}

	src, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return normalize(src), nil
}

func withinBudget(w, h, limit int) bool {
	if w < 0 || h < 0 {
		return false
	}
	if w == 0 || h == 0 {
		return true
	}
	return w <= limit && h <= limit/w
}
