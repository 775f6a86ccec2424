// Package driver runs a seeded Game of Life: an explicit state machine over immutable
// grids plus the timer loop that advances it and hands each frame to a renderer.
package driver

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seedlife/engine"
	"github.com/sheikhrachel/seedlife/model"
	"github.com/sheikhrachel/seedlife/seed"
	"github.com/sheikhrachel/seedlife/utils"
)

// SeedGenerator produces initial grids
type SeedGenerator interface {
	Generate(cfg seed.Config) (model.Grid, error)
}

// Snapshot is a consistent view of a Controller at one point in time
type Snapshot struct {
	State      State
	Reason     StopReason
	Grid       model.Grid
	Generation int
	// Changed is the number of cells changed by the latest generation
	Changed int
	Config  seed.Config
}

// Controller owns the current grid and moves it through Idle, Seeding, Running and
// Stopped. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	gen SeedGenerator
	cfg seed.Config
	log *slog.Logger

	state      State
	reason     StopReason
	grid       model.Grid
	initial    model.Grid
	generation int
	changed    int

	maxGenerations int
	replay         bool
	history        *History
}

// Option configures a Controller
type Option func(*Controller)

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMaxGenerations stops the run after n generations. Zero means no limit.
func WithMaxGenerations(n int) Option {
	return func(c *Controller) { c.maxGenerations = n }
}

// WithCycleDetection stops the run when a grid repeats one of the last size grids
func WithCycleDetection(size int) Option {
	return func(c *Controller) { c.history = NewHistory(size) }
}

// WithReplay restarts from the initial seed on convergence instead of stopping
func WithReplay() Option {
	return func(c *Controller) { c.replay = true }
}

func NewController(gen SeedGenerator, cfg seed.Config, opts ...Option) *Controller {
	c := &Controller{gen: gen, cfg: cfg, log: utils.DiscardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seed replaces the grid with a fresh seed from the current configuration. Any run in
// progress is abandoned.
func (c *Controller) Seed() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.seedLocked(); err != nil {
		return c.snapshotLocked(), err
	}
	return c.snapshotLocked(), nil
}

// Start begins advancing generations, seeding first when there is no grid yet
func (c *Controller) Start() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Running:
		return c.snapshotLocked(), nil
	case Idle:
		if err := c.seedLocked(); err != nil {
			return c.snapshotLocked(), err
		}
	}
	c.transition(Running, StopNone)
	return c.snapshotLocked(), nil
}

// Stop halts a running simulation. It is a no-op in any other state.
func (c *Controller) Stop() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		c.transition(Stopped, StopUser)
	}
	return c.snapshotLocked()
}

// Toggle stops a running simulation and starts any other
func (c *Controller) Toggle() (Snapshot, error) {
	if c.Snapshot().State == Running {
		return c.Stop(), nil
	}
	return c.Start()
}

// Tick advances one generation when running. ticked is false when the controller was
// not running and nothing happened.
func (c *Controller) Tick() (snap Snapshot, ticked bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return c.snapshotLocked(), false, nil
	}

	res, err := engine.Step(c.grid)
	if err != nil {
		c.transition(Stopped, StopNone)
		return c.snapshotLocked(), true, errors.Wrapf(err, "[Tick] generation %d", c.generation)
	}
	c.changed = res.Changed

	if res.Converged() {
		if c.replay && !c.initial.Equal(c.grid) {
			c.log.Info("converged, replaying seed", "generation", c.generation)
			c.restartLocked(c.initial)
			return c.snapshotLocked(), true, nil
		}
		c.log.Info("converged", "generation", c.generation, "population", c.grid.Population())
		c.transition(Stopped, StopConverged)
		return c.snapshotLocked(), true, nil
	}

	c.grid = res.Next
	c.generation++

	if c.history != nil {
		hash := c.grid.Hash()
		if c.history.Seen(hash) {
			c.log.Info("cycle detected", "generation", c.generation)
			c.transition(Stopped, StopCycle)
			return c.snapshotLocked(), true, nil
		}
		c.history.Push(hash)
	}

	if c.maxGenerations > 0 && c.generation-1 >= c.maxGenerations {
		c.log.Info("generation limit reached", "generation", c.generation)
		c.transition(Stopped, StopLimit)
	}
	return c.snapshotLocked(), true, nil
}

// SetLiveProbability changes the density used by the next seed
func (c *Controller) SetLiveProbability(p float64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	used, clamped := seed.ClampProbability(p)
	if clamped {
		c.log.Warn("live probability out of range, clamping", "requested", p, "used", used)
	}
	c.cfg.LiveProbability = used
	return c.snapshotLocked()
}

// AdjustLiveProbability moves the density by delta, rounded to hundredths
func (c *Controller) AdjustLiveProbability(delta float64) Snapshot {
	c.mu.Lock()
	p := math.Round((c.cfg.LiveProbability+delta)*100) / 100
	c.mu.Unlock()
	return c.SetLiveProbability(p)
}

// SetSeedSize changes the patch size used by the next seed, kept within [1, axis]
func (c *Controller) SetSeedSize(n int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	used := max(1, min(n, c.cfg.Axis))
	if used != n {
		c.log.Warn("seed size out of range, clamping", "requested", n, "used", used, "axis", c.cfg.Axis)
	}
	c.cfg.SeedSize = used
	return c.snapshotLocked()
}

func (c *Controller) AdjustSeedSize(delta int) Snapshot {
	c.mu.Lock()
	n := c.cfg.SeedSize + delta
	c.mu.Unlock()
	return c.SetSeedSize(n)
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) seedLocked() error {
	grid, err := c.gen.Generate(c.cfg)
	if err != nil {
		return errors.Wrap(err, "[Seed] failed to generate seed")
	}
	c.initial = grid
	c.restartLocked(grid)
	c.transition(Seeding, StopNone)
	c.log.Debug("seeded", "axis", c.cfg.Axis, "seed_size", c.cfg.SeedSize,
		"live_probability", c.cfg.LiveProbability, "population", grid.Population())
	return nil
}

func (c *Controller) restartLocked(grid model.Grid) {
	c.grid = grid
	c.generation = 1
	c.changed = 0
	if c.history != nil {
		c.history.Clear()
		c.history.Push(grid.Hash())
	}
}

func (c *Controller) transition(to State, reason StopReason) {
	if c.state != to {
		c.log.Debug("state change", "from", c.state, "to", to, "reason", reason)
	}
	c.state = to
	c.reason = reason
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:      c.state,
		Reason:     c.reason,
		Grid:       c.grid,
		Generation: c.generation,
		Changed:    c.changed,
		Config:     c.cfg,
	}
}
