//go:build ebiten

package main

import (
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sheikhrachel/seedlife/driver"
	"github.com/sheikhrachel/seedlife/render"
	"github.com/sheikhrachel/seedlife/utils"
)

func main() {
	cfg, err := utils.ParseArgs(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger := utils.NewLogger(os.Stderr, cfg.LogLevel)
	palette, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		log.Fatal(err)
	}

	ctrl := driver.NewFromConfig(cfg, logger)
	snap, err := ctrl.Seed()
	if err != nil {
		log.Fatal(err)
	}

	window := render.NewWindow(palette, cfg.Axis, cfg.Scale)
	runner := driver.NewRunner(ctrl, window, cfg.Interval, driver.WithRunnerLogger(logger))
	window.Attach(runner, cfg.Interval)
	if err := window.Render(driver.Frame{Snapshot: snap}); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("seedlife")
	ebiten.SetWindowSize(cfg.Axis*cfg.Scale, cfg.Axis*cfg.Scale)

	if err := ebiten.RunGame(window); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
