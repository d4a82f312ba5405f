package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"spritemask/asset"
	"spritemask/palette"
	"spritemask/parallel"
	"spritemask/scan"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan        string        `help:"Source folder to scan" default:"."`
	Dest        string        `help:"Destination folder for masks. Relative to scan dir if not absolute." default:"masks"`
	Format      string        `help:"Output format of mask images" enum:"png,gif,bmp,tiff" default:"png"`
	Palette     string        `help:"Mask palette: built-in name (alpha, bw, debug) or PAL file in RIFF format" default:"bw"`
	Clear       string        `help:"Color of transparent pixels (#RGB, #RGBA, #RRGGBB or #RRGGBBAA), overrides the palette"`
	Solid       string        `help:"Color of solid pixels, overrides the palette"`
	RGBA        bool          `help:"Also write the normalized RGBA image as PNG" name:"rgba" default:"false"`
	Force       bool          `help:"Overwrite existing destination files" default:"false"`
	Skip        bool          `help:"Silently skip files whose format is not recognised" default:"false"`
	MaskPalette color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := scan.Dir(c.Scan)
	if err != nil {
		return err
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	pal, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	if c.MaskPalette, err = palette.Mask(pal, c.Clear, c.Solid); err != nil {
		return err
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc, dec *asset.Decoder) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := scan.Files(c.Scan)
	if err != nil {
		return err
	}

	var processedCount, skippedCount, errCount atomic.Uint64
	for _, file := range files {
		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				data, err := os.ReadFile(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not read image", "error", err)
					return
				}

				img, err := dec.Decode(data, fileName)
				if err != nil {
					if c.Skip && errors.Is(err, asset.ErrUnknownFormat) {
						skippedCount.Add(1)
						logger.Debug("skipping unrecognised file")
						return
					}
					errCount.Add(1)
					logger.Error("could not decode image", "error", err)
					return
				}

				base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
				maskName := fmt.Sprintf("%s.mask.%s", base, c.Format)
				if err = save(renderMask(img.Mask(), c.MaskPalette), c.Format, c.Dest, maskName, c.Force); err != nil {
					errCount.Add(1)
					logger.Error("could not save mask", "dir", c.Dest, "error", err)
					return
				}
				logger.Info("exported mask", "name", maskName, "solid", img.Mask().Count(), "pixels", img.Mask().Len())

				if c.RGBA {
					rgbaName := base + ".rgba.png"
					if err = save(img, "png", c.Dest, rgbaName, c.Force); err != nil {
						errCount.Add(1)
						logger.Error("could not save image", "dir", c.Dest, "error", err)
						return
					}
				}
				processedCount.Add(1)
			}
		}(file))
	}

	wait(true)

	processed := processedCount.Load()
	skipped := skippedCount.Load()
	failed := errCount.Load()
	slog.Info("stats", "processed", processed, "skipped", skipped, "errors", failed,
		"total", processed+skipped+failed)

	if failed > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

// renderMask paints clear pixels with pal[0] and solid ones with pal[1].
func renderMask(m *asset.Mask, pal color.Palette) *image.Paletted {
	dst := image.NewPaletted(m.Bounds(), pal)
	for i := range m.Len() {
		if m.Test(i) {
			dst.Pix[i] = 1
		}
	}
	return dst
}
