// Package seed builds initial grids: an all-dead torus with a centered patch of noise.
package seed

import (
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seedlife/model"
	"github.com/sheikhrachel/seedlife/utils"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// Config describes how an initial grid is generated
type Config struct {
	Axis            int
	LiveProbability float64
	SeedSize        int
}

// Generator produces seed grids from an injected random source
type Generator struct {
	src Source
	log *slog.Logger
}

// NewGenerator returns a Generator drawing from src. A nil logger discards diagnostics.
func NewGenerator(src Source, log *slog.Logger) *Generator {
	if log == nil {
		log = utils.DiscardLogger()
	}
	return &Generator{src: src, log: log}
}

// Generate is GenerateSeed driven by a Config
func (g *Generator) Generate(cfg Config) (model.Grid, error) {
	return g.GenerateSeed(cfg.Axis, cfg.LiveProbability, cfg.SeedSize)
}

// GenerateNoise returns a size x size grid where every cell is independently alive with
// probability liveProbability. The probability is clamped to [0, 1].
func (g *Generator) GenerateNoise(size int, liveProbability float64) model.Grid {
	if size < 0 {
		g.log.Warn("noise size is negative, using an empty grid", "size", size)
		size = 0
	}
	p, clamped := ClampProbability(liveProbability)
	if clamped {
		g.log.Warn("live probability out of range, clamping", "requested", liveProbability, "used", p)
	}

	b := model.NewBuilder(size)
	for row := range size {
		for col := range size {
			if g.src.Float64() < p {
				b.Set(row, col, model.Alive)
			}
		}
	}
	return b.Build()
}

// GenerateSeed returns an all-dead axis x axis grid with a seedSize x seedSize noise
// patch centered at offset (axis-seedSize)/2. A seed larger than the grid is trimmed
// to fit.
func (g *Generator) GenerateSeed(axis int, liveProbability float64, seedSize int) (model.Grid, error) {
	if axis <= 0 {
		return model.Grid{}, errors.Wrap(
			&model.InvalidGridError{Axis: axis, Reason: "axis must be positive"},
			"[GenerateSeed] cannot build seed",
		)
	}
	if seedSize > axis {
		g.log.Warn("seed size is larger than axis, seed will be trimmed to fit", "seed_size", seedSize, "axis", axis)
		seedSize = axis
	}
	if seedSize < 0 {
		g.log.Warn("seed size is negative, seeding nothing", "seed_size", seedSize)
		seedSize = 0
	}

	noise := g.GenerateNoise(seedSize, liveProbability)
	offset := (axis - seedSize) / 2

	b := model.NewBuilder(axis)
	for row := range seedSize {
		for col := range seedSize {
			b.Set(row+offset, col+offset, noise.At(row, col))
		}
	}
	return b.Build(), nil
}

// ClampProbability forces p into [0, 1] and reports whether it had to. NaN maps to 0.
func ClampProbability(p float64) (float64, bool) {
	switch {
	case math.IsNaN(p):
		return 0, true
	case p < 0:
		return 0, true
	case p > 1:
		return 1, true
	}
	return p, false
}
