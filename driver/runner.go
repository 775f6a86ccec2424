package driver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seedlife/utils"
)

// Frame is everything a renderer needs to draw one update
type Frame struct {
	Snapshot
	Stats utils.Stats
}

// Renderer draws frames on some surface
type Renderer interface {
	Render(frame Frame) error
}

// Runner owns the repeating timer: it ticks the controller and renders after every
// generation and every user action.
type Runner struct {
	ctrl       *Controller
	renderer   Renderer
	interval   time.Duration
	exitOnStop bool
	log        *slog.Logger

	mu        sync.Mutex
	stats     *utils.Stats
	lastFrame time.Time
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// ExitOnStop makes Run return as soon as the simulation stops
func ExitOnStop() RunnerOption {
	return func(r *Runner) { r.exitOnStop = true }
}

func WithRunnerLogger(log *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

func NewRunner(ctrl *Controller, renderer Renderer, interval time.Duration, opts ...RunnerOption) *Runner {
	r := &Runner{
		ctrl:     ctrl,
		renderer: renderer,
		interval: interval,
		log:      utils.DiscardLogger(),
		stats:    utils.NewStats(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Controller returns the controller driven by the runner
func (r *Runner) Controller() *Controller {
	return r.ctrl
}

// Stats returns a copy of the statistics for the current run
func (r *Runner) Stats() utils.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.stats
}

// Dispatch applies a user action and renders the result
func (r *Runner) Dispatch(a Action) error {
	var (
		snap Snapshot
		err  error
	)
	switch a {
	case ActionSeed:
		snap, err = r.ctrl.Seed()
		r.mu.Lock()
		r.stats.Reset()
		r.lastFrame = time.Time{}
		r.mu.Unlock()
	case ActionStart:
		snap, err = r.ctrl.Start()
	case ActionStop:
		snap = r.ctrl.Stop()
	case ActionToggle:
		snap, err = r.ctrl.Toggle()
	case ActionDensityUp:
		snap = r.ctrl.AdjustLiveProbability(DensityStep)
	case ActionDensityDown:
		snap = r.ctrl.AdjustLiveProbability(-DensityStep)
	case ActionSeedSizeUp:
		snap = r.ctrl.AdjustSeedSize(SeedSizeStep)
	case ActionSeedSizeDown:
		snap = r.ctrl.AdjustSeedSize(-SeedSizeStep)
	default:
		return errors.Errorf("[Dispatch] unknown action %d", a)
	}
	if err != nil {
		return errors.Wrapf(err, "[Dispatch] action %d", a)
	}
	return r.render(snap, false)
}

// Step performs one timer tick: advance the controller and render if it was running
func (r *Runner) Step() (Snapshot, error) {
	snap, ticked, err := r.ctrl.Tick()
	if err != nil {
		return snap, err
	}
	if ticked {
		if err := r.render(snap, true); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

// Run renders the current state and then ticks every interval until ctx is done, a
// tick or render fails, or the simulation stops when ExitOnStop is set.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.render(r.ctrl.Snapshot(), false); err != nil {
		return err
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap, err := r.Step()
			if err != nil {
				return errors.Wrap(err, "[Run] tick failed")
			}
			if r.exitOnStop && snap.State == Stopped {
				r.log.Info("run finished", "reason", snap.Reason, "generation", snap.Generation)
				return nil
			}
		}
	}
}

func (r *Runner) render(snap Snapshot, advanced bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if advanced {
		now := time.Now()
		var elapsed time.Duration
		if !r.lastFrame.IsZero() {
			elapsed = now.Sub(r.lastFrame)
		}
		r.lastFrame = now
		r.stats.Update(snap.Generation, snap.Grid.Population(), snap.Changed, elapsed)
	}

	if r.renderer == nil {
		return nil
	}
	if err := r.renderer.Render(Frame{Snapshot: snap, Stats: *r.stats}); err != nil {
		return errors.Wrap(err, "[render] failed to draw frame")
	}
	return nil
}
