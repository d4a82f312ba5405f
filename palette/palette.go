// Package palette provides the two-colour palettes used to render collision
// masks: entry 0 paints clear pixels, entry 1 paints solid ones.
package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var builtin = map[string]color.Palette{
	"bw":    {color.NRGBA{A: 0xff}, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	"alpha": {color.NRGBA{}, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	"debug": {color.NRGBA{}, color.NRGBA{R: 0xff, B: 0xff, A: 0xff}},
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns a built-in palette by name, or the concatenation of every
// palette stored in a RIFF PAL file.
func Load(name string) (color.Palette, error) {
	if pal, ok := builtin[strings.ToLower(name)]; ok {
		return slices.Clone(pal), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-ins: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	return res, nil
}

// Mask builds the clear/solid pair from the first two entries of pal,
// replacing either entry when clear or solid is a non-empty hex colour.
func Mask(pal color.Palette, clear, solid string) (color.Palette, error) {
	if len(pal) < 2 {
		return nil, fmt.Errorf("mask palette needs at least 2 colors, got %d", len(pal))
	}
	res := color.Palette{pal[0], pal[1]}

	for i, s := range []string{clear, solid} {
		if s == "" {
			continue
		}
		c, err := ParseHex(s)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}

	if res[0] == res[1] {
		return nil, fmt.Errorf("clear and solid colors are identical: %v", res[0])
	}
	return res, nil
}

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.Color, error) {
	var c color.NRGBA
	var n int
	var err error
	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xff
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xff
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return nil, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	if err != nil {
		return nil, fmt.Errorf("could not read color %q: %w", s, err)
	} else if n < 3 {
		return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
	}
	return c, nil
}
