package utils

import (
	"encoding/json"
	"flag"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	RendererTcell = "tcell"
	RendererText  = "text"

	DefaultConfigFile = "config.json"
)

// Config holds the configuration for a run
type Config struct {
	Axis            int               `json:"axis" yaml:"axis" toml:"axis"`
	LiveProbability float64           `json:"live_probability" yaml:"live_probability" toml:"live_probability"`
	SeedSize        int               `json:"seed_size" yaml:"seed_size" toml:"seed_size"`
	Interval        time.Duration     `json:"interval" yaml:"interval" toml:"interval"`
	Seed            int64             `json:"seed" yaml:"seed" toml:"seed"`
	MaxGenerations  int               `json:"max_generations" yaml:"max_generations" toml:"max_generations"`
	DetectCycles    bool              `json:"detect_cycles" yaml:"detect_cycles" toml:"detect_cycles"`
	HistorySize     int               `json:"history_size" yaml:"history_size" toml:"history_size"`
	Replay          bool              `json:"replay" yaml:"replay" toml:"replay"`
	Renderer        string            `json:"renderer" yaml:"renderer" toml:"renderer"`
	ClearScreen     bool              `json:"clear_screen" yaml:"clear_screen" toml:"clear_screen"`
	Scale           int               `json:"scale" yaml:"scale" toml:"scale"`
	Palette         map[string]string `json:"palette" yaml:"palette" toml:"palette"`
	LogLevel        string            `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile         string            `json:"log_file" yaml:"log_file" toml:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Axis:            80,
		LiveProbability: 0.2,
		SeedSize:        20,
		Interval:        200 * time.Millisecond,
		HistorySize:     5,
		Renderer:        RendererTcell,
		ClearScreen:     true,
		Scale:           8,
		Palette: map[string]string{
			"0": "#26e132", // dead
			"1": "#403A3A", // alive
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a JSON, YAML or TOML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ParseArgs loads the file named by -config and applies the remaining flags on top of
// it. When -config is not given, config.json is used if it exists and the defaults
// otherwise.
func ParseArgs(name string, args []string) (Config, error) {
	probe := flag.NewFlagSet(name, flag.ContinueOnError)
	probe.SetOutput(io.Discard)
	path := probe.String("config", DefaultConfigFile, "")
	scratch := DefaultConfig()
	scratch.Bind(probe)

	config := DefaultConfig()
	// Parse errors are reported by the second pass, which prints usage.
	if probe.Parse(args) == nil {
		explicit := false
		probe.Visit(func(f *flag.Flag) {
			if f.Name == "config" {
				explicit = true
			}
		})

		loaded, err := LoadConfig(*path)
		switch {
		case err == nil:
			config = loaded
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return loaded, err
		}
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.String("config", *path, "path to a JSON, YAML or TOML config file")
	config.Bind(flags)
	if err := flags.Parse(args); err != nil {
		return config, errors.Wrap(err, "[ParseArgs] failed to parse flags")
	}
	return config, config.Validate()
}

// Bind attaches the configuration fields to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Axis, "axis", c.Axis, "rows and columns of the square grid")
	fs.Float64Var(&c.LiveProbability, "density", c.LiveProbability, "probability that a seed cell starts alive (0-1)")
	fs.IntVar(&c.SeedSize, "seed-size", c.SeedSize, "side of the centered noise patch")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "time between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations, 0 for no limit")
	fs.BoolVar(&c.DetectCycles, "detect-cycles", c.DetectCycles, "stop when a recent state repeats")
	fs.IntVar(&c.HistorySize, "history", c.HistorySize, "number of recent states checked for cycles")
	fs.BoolVar(&c.Replay, "replay", c.Replay, "restart from the initial seed instead of stopping on convergence")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "tcell or text")
	fs.BoolVar(&c.ClearScreen, "clear", c.ClearScreen, "clear the terminal between text frames")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell in the window build")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// Validate rejects configurations the driver cannot run with. Out of range densities
// and seed sizes are clamped later and are not reported here.
func (c Config) Validate() error {
	if c.Axis <= 0 {
		return errors.Errorf("[Validate] axis must be positive, got %d", c.Axis)
	}
	if c.Interval <= 0 {
		return errors.Errorf("[Validate] interval must be positive, got %s", c.Interval)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	switch c.Renderer {
	case RendererTcell, RendererText:
	default:
		return errors.Errorf("[Validate] unknown renderer %q", c.Renderer)
	}
	return nil
}
