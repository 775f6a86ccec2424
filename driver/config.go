package driver

import (
	"log/slog"

	"github.com/sheikhrachel/seedlife/seed"
	"github.com/sheikhrachel/seedlife/utils"
)

// NewFromConfig builds a Controller and its seeded random generator from a run
// configuration.
func NewFromConfig(cfg utils.Config, log *slog.Logger) *Controller {
	gen := seed.NewGenerator(seed.NewRNG(cfg.Seed), log)

	opts := []Option{WithLogger(log), WithMaxGenerations(cfg.MaxGenerations)}
	if cfg.DetectCycles {
		opts = append(opts, WithCycleDetection(cfg.HistorySize))
	}
	if cfg.Replay {
		opts = append(opts, WithReplay())
	}

	return NewController(gen, seed.Config{
		Axis:            cfg.Axis,
		LiveProbability: cfg.LiveProbability,
		SeedSize:        cfg.SeedSize,
	}, opts...)
}
