package inspect

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"spritemask/asset"
	"spritemask/parallel"
	"spritemask/scan"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan string `help:"Source folder to scan" default:"."`
	Skip bool   `help:"Silently skip files whose format is not recognised" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := scan.Dir(c.Scan)
	if err != nil {
		return err
	}
	c.Scan = scanDir

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc, dec *asset.Decoder) error {
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

				solid := img.Mask().Count()
				logger.Info("decoded",
					"format", img.Format(),
					"width", img.Width(),
					"height", img.Height(),
					"solid", solid,
					"transparent", img.Mask().Len()-solid)
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
