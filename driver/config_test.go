package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/seedlife/utils"
)

func TestNewFromConfig(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Axis = 16
	cfg.SeedSize = 6
	cfg.LiveProbability = 1
	cfg.Seed = 99
	cfg.DetectCycles = true
	cfg.MaxGenerations = 10

	c := NewFromConfig(cfg, nil)
	snap, err := c.Seed()
	require.NoError(t, err)

	assert.Equal(t, 16, snap.Grid.Axis())
	assert.Equal(t, 36, snap.Grid.Population())
	assert.Equal(t, 6, snap.Config.SeedSize)
	assert.NotNil(t, c.history)
	assert.Equal(t, 10, c.maxGenerations)
}

func TestNewFromConfigIsDeterministicForSeed(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.Axis = 20
	cfg.Seed = 1234

	a, err := NewFromConfig(cfg, nil).Seed()
	require.NoError(t, err)
	b, err := NewFromConfig(cfg, nil).Seed()
	require.NoError(t, err)
	assert.True(t, a.Grid.Equal(b.Grid))
}
