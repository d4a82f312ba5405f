package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"spritemask/asset"
	"spritemask/export"
	"spritemask/inspect"
	"spritemask/parallel"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Workers   int      `help:"Number of files decoded concurrently, 0 for one per CPU" default:"0"`
	Formats   []string `help:"Restrict decoding to these formats (comma separated). Defaults to every compiled-in format." placeholder:"FORMAT"`
	MaxPixels int      `help:"Reject images with more pixels than this, 0 to disable" default:"67108864"`
	Verbose   bool     `help:"Enable debug logging" short:"v" default:"false"`

	Inspect inspect.CLICmd `cmd:"" help:"Decode images and report their collision mask statistics"`
	Export  export.CLICmd  `cmd:"" help:"Decode images and write their collision masks as images"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	for _, name := range c.Formats {
		if _, ok := asset.ParseFormat(name); !ok {
			return fmt.Errorf("unsupported format %q, compiled-in extensions: %s", name, strings.Join(asset.Extensions(), ", "))
		}
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("invalid max pixels: %d", c.MaxPixels)
	}
	return nil
}

func (c *CLI) decoder() *asset.Decoder {
	opts := []asset.Option{asset.WithMaxPixels(c.MaxPixels)}
	if len(c.Formats) > 0 {
		formats := make([]asset.Format, 0, len(c.Formats))
		for _, name := range c.Formats {
			f, _ := asset.ParseFormat(name)
			formats = append(formats, f)
		}
		opts = append(opts, asset.WithFormats(formats...))
	}
	return asset.NewDecoder(opts...)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("spritemask"),
		kong.Description("Decode sprite images and derive their per-pixel collision masks."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	dec := cli.decoder()
	slog.Debug("decoder ready", "formats", dec.Formats(), "extensions", dec.Extensions())

	pool := parallel.Start(cli.Workers)
	worker, wait := pool.Funcs()
	if err := kctx.Run(worker, wait, dec); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
