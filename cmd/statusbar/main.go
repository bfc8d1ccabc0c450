// Command statusbar runs a GPU-rendered status bar headlessly and
// writes the final frame to a PNG. It exercises the full pipeline:
// config, metrics polling, layout, glyph shaping, and the GPU draw
// path, presenting into an offscreen readback target.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/config"
	"github.com/gogpu/statusbar/metrics"
	"github.com/gogpu/statusbar/render"
	"github.com/gogpu/statusbar/text"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file (defaults built in)")
		output     = flag.String("output", "bar.png", "output PNG file")
		duration   = flag.Duration("duration", 3*time.Second, "how long to run before capturing")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		statusbar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*configPath, *output, *duration); err != nil {
		fmt.Fprintln(os.Stderr, "statusbar:", err)
		os.Exit(1)
	}
}

func run(configPath, output string, duration time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	face, err := loadFace(cfg.Font.Path)
	if err != nil {
		return err
	}
	engine := text.NewEngine(face)

	dev, err := render.Open()
	if err != nil {
		return err
	}
	defer dev.Close()

	target, err := render.NewOffscreenTarget(dev, cfg.Bar.Width, cfg.Bar.Height)
	if err != nil {
		return err
	}
	defer target.Close()

	rend, err := render.New(dev, target, engine,
		render.WithClearColor(statusbar.Hex(cfg.Bar.Background)),
		render.WithFontSize(cfg.Font.Size))
	if err != nil {
		return err
	}

	bridge := metrics.NewBridge(64)
	tree, bindings, err := config.Build(cfg, bridge)
	if err != nil {
		return err
	}

	bar := statusbar.New(tree, rend, engine,
		statusbar.WithSize(cfg.Bar.Width, cfg.Bar.Height),
		statusbar.WithFontSize(cfg.Font.Size))
	for _, b := range bindings {
		if err := bar.Bind(b.Key, b.ID, b.Format); err != nil {
			return fmt.Errorf("bind %s: %w", b.Key, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	bridge.Start(ctx)

	// Run closes the renderer on the way out; the offscreen target
	// keeps the last presented frame.
	if err := bar.Run(ctx, nil, bridge.Samples()); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	stats := bar.Stats()
	statusbar.Logger().Debug("captured",
		"frames", stats.FramesRendered,
		"samples", stats.SamplesApplied,
		"device", dev.Name())

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, target.Frame()); err != nil {
		return fmt.Errorf("encode %s: %w", output, err)
	}
	return nil
}

// loadFace opens the configured font file, falling back to the bundled
// Go Regular face when none is configured.
func loadFace(path string) (*text.Face, error) {
	if path == "" {
		return text.NewFace(goregular.TTF)
	}
	return text.NewFaceFromFile(path)
}
