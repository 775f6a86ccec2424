package driver

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/seedlife/model"
	"github.com/sheikhrachel/seedlife/seed"
)

// staticGenerator hands out the same grid on every call and remembers the config
type staticGenerator struct {
	grid  model.Grid
	err   error
	calls int
	last  seed.Config
}

func (s *staticGenerator) Generate(cfg seed.Config) (model.Grid, error) {
	s.calls++
	s.last = cfg
	return s.grid, s.err
}

func build(axis int, cells ...[2]int) model.Grid {
	b := model.NewBuilder(axis)
	for _, c := range cells {
		b.Set(c[0], c[1], model.Alive)
	}
	return b.Build()
}

func blinker() model.Grid {
	return build(5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
}

func block() model.Grid {
	return build(4, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
}

// dyingPair dies out after one generation
func dyingPair() model.Grid {
	return build(5, [2]int{2, 1}, [2]int{2, 2})
}

var defaultSeedConfig = seed.Config{Axis: 5, LiveProbability: 0.2, SeedSize: 3}

func TestControllerStartsIdle(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Zero(t, snap.Grid.Axis())
}

func TestSeedMovesToSeeding(t *testing.T) {
	gen := &staticGenerator{grid: blinker()}
	c := NewController(gen, defaultSeedConfig)

	snap, err := c.Seed()
	require.NoError(t, err)
	assert.Equal(t, Seeding, snap.State)
	assert.Equal(t, 1, snap.Generation)
	assert.True(t, blinker().Equal(snap.Grid))
	assert.Equal(t, defaultSeedConfig, gen.last)
}

func TestStartFromIdleSeedsFirst(t *testing.T) {
	gen := &staticGenerator{grid: blinker()}
	c := NewController(gen, defaultSeedConfig)

	snap, err := c.Start()
	require.NoError(t, err)
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, 1, gen.calls)

	_, err = c.Start()
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls, "starting a running controller does not reseed")
}

func TestTickOnlyAdvancesWhenRunning(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)
	_, err := c.Seed()
	require.NoError(t, err)

	snap, ticked, err := c.Tick()
	require.NoError(t, err)
	assert.False(t, ticked)
	assert.Equal(t, 1, snap.Generation)

	_, err = c.Start()
	require.NoError(t, err)
	snap, ticked, err = c.Tick()
	require.NoError(t, err)
	assert.True(t, ticked)
	assert.Equal(t, 2, snap.Generation)
	assert.Equal(t, 4, snap.Changed)
	assert.Equal(t, model.Alive, snap.Grid.At(2, 1))
}

func TestStopAndResume(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)
	_, err := c.Start()
	require.NoError(t, err)

	snap := c.Stop()
	assert.Equal(t, Stopped, snap.State)
	assert.Equal(t, StopUser, snap.Reason)

	_, ticked, err := c.Tick()
	require.NoError(t, err)
	assert.False(t, ticked)

	snap, err = c.Start()
	require.NoError(t, err)
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, StopNone, snap.Reason)
}

func TestToggle(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)

	snap, err := c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Running, snap.State)

	snap, err = c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Stopped, snap.State)
}

func TestConvergenceStops(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewController(&staticGenerator{grid: block()}, defaultSeedConfig, WithLogger(log))
	_, err := c.Start()
	require.NoError(t, err)

	snap, ticked, err := c.Tick()
	require.NoError(t, err)
	assert.True(t, ticked)
	assert.Equal(t, Stopped, snap.State)
	assert.Equal(t, StopConverged, snap.Reason)
	assert.Equal(t, 1, snap.Generation, "a generation without changes is not counted")
	assert.Zero(t, snap.Changed)
	assert.True(t, block().Equal(snap.Grid))
	assert.Contains(t, buf.String(), "converged")
}

func TestExtinctionConverges(t *testing.T) {
	c := NewController(&staticGenerator{grid: dyingPair()}, defaultSeedConfig)
	_, err := c.Start()
	require.NoError(t, err)

	snap, _, err := c.Tick()
	require.NoError(t, err)
	assert.Equal(t, Running, snap.State)
	assert.Zero(t, snap.Grid.Population())

	snap, _, err = c.Tick()
	require.NoError(t, err)
	assert.Equal(t, StopConverged, snap.Reason)
	assert.Equal(t, 2, snap.Generation)
}

func TestReplayRestoresInitialSeed(t *testing.T) {
	c := NewController(&staticGenerator{grid: dyingPair()}, defaultSeedConfig, WithReplay())
	_, err := c.Start()
	require.NoError(t, err)

	_, _, err = c.Tick()
	require.NoError(t, err)
	snap, _, err := c.Tick()
	require.NoError(t, err)

	assert.Equal(t, Running, snap.State)
	assert.Equal(t, 1, snap.Generation)
	assert.True(t, dyingPair().Equal(snap.Grid))
}

func TestReplayStillStopsOnStillLifeSeed(t *testing.T) {
	c := NewController(&staticGenerator{grid: block()}, defaultSeedConfig, WithReplay())
	_, err := c.Start()
	require.NoError(t, err)

	snap, _, err := c.Tick()
	require.NoError(t, err)
	assert.Equal(t, StopConverged, snap.Reason)
}

func TestCycleDetection(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig, WithCycleDetection(5))
	_, err := c.Start()
	require.NoError(t, err)

	snap, _, err := c.Tick()
	require.NoError(t, err)
	assert.Equal(t, Running, snap.State)

	snap, _, err = c.Tick()
	require.NoError(t, err)
	assert.Equal(t, Stopped, snap.State)
	assert.Equal(t, StopCycle, snap.Reason)
	assert.Equal(t, 3, snap.Generation)
}

func TestGenerationLimit(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig, WithMaxGenerations(3))
	_, err := c.Start()
	require.NoError(t, err)

	var snap Snapshot
	for range 3 {
		snap, _, err = c.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, Stopped, snap.State)
	assert.Equal(t, StopLimit, snap.Reason)
	assert.Equal(t, 4, snap.Generation)
}

func TestSeedDuringRunResets(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)
	_, err := c.Start()
	require.NoError(t, err)
	_, _, err = c.Tick()
	require.NoError(t, err)

	snap, err := c.Seed()
	require.NoError(t, err)
	assert.Equal(t, Seeding, snap.State)
	assert.Equal(t, 1, snap.Generation)
}

func TestSeedFailure(t *testing.T) {
	gen := &staticGenerator{err: &model.InvalidGridError{Reason: "axis must be positive"}}
	c := NewController(gen, seed.Config{})

	_, err := c.Start()
	require.Error(t, err)

	var invalid *model.InvalidGridError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, Idle, c.Snapshot().State)
}

func TestSettersClamp(t *testing.T) {
	c := NewController(&staticGenerator{grid: blinker()}, defaultSeedConfig)

	assert.Equal(t, 1.0, c.SetLiveProbability(1.7).Config.LiveProbability)
	assert.Equal(t, 0.0, c.SetLiveProbability(-1).Config.LiveProbability)
	assert.InDelta(t, 0.05, c.AdjustLiveProbability(DensityStep).Config.LiveProbability, 1e-9)

	assert.Equal(t, 5, c.SetSeedSize(50).Config.SeedSize)
	assert.Equal(t, 1, c.SetSeedSize(0).Config.SeedSize)
	assert.Equal(t, 2, c.AdjustSeedSize(SeedSizeStep).Config.SeedSize)
}

func TestSettersApplyToNextSeed(t *testing.T) {
	gen := &staticGenerator{grid: blinker()}
	c := NewController(gen, defaultSeedConfig)
	c.SetLiveProbability(0.6)
	c.SetSeedSize(4)

	_, err := c.Seed()
	require.NoError(t, err)
	assert.Equal(t, seed.Config{Axis: 5, LiveProbability: 0.6, SeedSize: 4}, gen.last)
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	assert.True(t, h.Seen("a"))

	h.Push("c")
	assert.False(t, h.Seen("a"))
	assert.True(t, h.Seen("c"))

	h.Clear()
	assert.False(t, h.Seen("c"))
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "converged", StopConverged.String())
	assert.Equal(t, "", StopNone.String())
}
