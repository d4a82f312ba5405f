package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"spritemask/asset"
	"spritemask/palette"
	"spritemask/parallel"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	img.SetNRGBA(2, 1, color.NRGBA{G: 0xff, A: 1})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newCmd(t *testing.T, dir string, format string) *CLICmd {
	t.Helper()
	c := &CLICmd{Scan: dir, Dest: "masks", Format: format, Palette: "debug"}
	if err := c.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return c
}

func run(c *CLICmd) error {
	worker, wait := parallel.Start(2).Funcs()
	return c.Run(worker, wait, asset.NewDecoder())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	c := newCmd(t, dir, "png")
	if c.Dest != filepath.Join(dir, "masks") {
		t.Errorf("Dest = %q, want it under the scan folder", c.Dest)
	}
	if len(c.MaskPalette) != 2 {
		t.Errorf("MaskPalette = %v", c.MaskPalette)
	}

	bad := &CLICmd{Scan: dir, Dest: "masks", Palette: "nope"}
	if err := bad.Validate(nil); err == nil {
		t.Error("unknown palette accepted")
	}
	bad = &CLICmd{Scan: dir, Dest: "masks", Palette: "bw", Solid: "#00"}
	if err := bad.Validate(nil); err == nil {
		t.Error("invalid solid color accepted")
	}
}

func TestRunWritesMasks(t *testing.T) {
	for _, format := range []string{"png", "gif", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			writePNG(t, filepath.Join(dir, "hero.png"))

			c := newCmd(t, dir, format)
			c.RGBA = true
			if err := run(c); err != nil {
				t.Fatalf("Run: %v", err)
			}

			data, err := os.ReadFile(filepath.Join(c.Dest, "hero.mask."+format))
			if err != nil {
				t.Fatalf("reading mask: %v", err)
			}
			img, err := asset.Decode(data, "")
			if err != nil {
				t.Fatalf("decoding mask: %v", err)
			}
			if img.Width() != 3 || img.Height() != 2 {
				t.Fatalf("mask size = %dx%d, want 3x2", img.Width(), img.Height())
			}
			// solid pixels are painted magenta by the debug palette
			magenta := color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
			want := []bool{true, false, false, false, false, true}
			for i, solid := range want {
				if got := img.NRGBAAt(i%3, i/3); (got == magenta) != solid {
					t.Errorf("pixel %d = %v, want solid %v", i, got, solid)
				}
			}

			if _, err := os.Stat(filepath.Join(c.Dest, "hero.rgba.png")); err != nil {
				t.Errorf("rgba image missing: %v", err)
			}
		})
	}
}

func TestRunRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hero.png"))

	c := newCmd(t, dir, "png")
	if err := run(c); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := run(c); err == nil {
		t.Error("second Run overwrote the mask")
	}
	c.Force = true
	if err := run(c); err != nil {
		t.Errorf("Run with Force: %v", err)
	}

	entries, err := os.ReadDir(c.Dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("destination holds %d files, want only the mask", len(entries))
	}
}

func TestRenderMask(t *testing.T) {
	img, err := asset.Decode(func() []byte {
		src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
		src.SetNRGBA(1, 0, color.NRGBA{A: 0xff})
		var buf bytes.Buffer
		_ = png.Encode(&buf, src)
		return buf.Bytes()
	}(), "")
	if err != nil {
		t.Fatal(err)
	}

	pal, _ := palette.Load("bw")
	dst := renderMask(img.Mask(), pal)
	if dst.ColorIndexAt(0, 0) != 0 || dst.ColorIndexAt(1, 0) != 1 {
		t.Errorf("indices = %v, want [0 1]", dst.Pix)
	}
}
