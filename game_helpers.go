package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/seedlife/driver"
	"github.com/sheikhrachel/seedlife/render"
	"github.com/sheikhrachel/seedlife/utils"
)

// run plays the configured game until it is cancelled, the user quits, or (in text
// mode) the simulation stops
func run(ctx context.Context, config utils.Config) (utils.Stats, error) {
	log, closeLog, err := newLogger(config)
	if err != nil {
		return utils.Stats{}, err
	}
	defer closeLog()

	ctrl := driver.NewFromConfig(config, log)
	if config.Renderer == utils.RendererText {
		return runText(ctx, config, ctrl, log, os.Stdout)
	}
	return runScreen(ctx, config, ctrl, log)
}

// newLogger picks the log destination. The tcell screen owns the terminal, so without
// a log file its logs are dropped.
func newLogger(config utils.Config) (*slog.Logger, func(), error) {
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
		}
		return utils.NewLogger(f, config.LogLevel), func() { f.Close() }, nil
	}
	if config.Renderer == utils.RendererTcell {
		return utils.DiscardLogger(), func() {}, nil
	}
	return utils.NewLogger(os.Stderr, config.LogLevel), func() {}, nil
}

// runText starts immediately and prints every generation until the run stops
func runText(ctx context.Context, config utils.Config, ctrl *driver.Controller, log *slog.Logger, out io.Writer) (utils.Stats, error) {
	runner := driver.NewRunner(ctrl, render.NewTextRenderer(out, config.ClearScreen), config.Interval,
		driver.ExitOnStop(), driver.WithRunnerLogger(log))

	if _, err := ctrl.Start(); err != nil {
		return runner.Stats(), err
	}
	err := runner.Run(ctx)
	return runner.Stats(), err
}

// runScreen draws on a tcell screen and reacts to keys until the user quits
func runScreen(ctx context.Context, config utils.Config, ctrl *driver.Controller, log *slog.Logger) (utils.Stats, error) {
	palette, err := render.ParsePalette(config.Palette)
	if err != nil {
		return utils.Stats{}, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return utils.Stats{}, errors.Wrap(err, "[runScreen] creating screen")
	}
	if err = screen.Init(); err != nil {
		return utils.Stats{}, errors.Wrap(err, "[runScreen] initializing screen")
	}
	defer screen.Fini()

	runner := driver.NewRunner(ctrl, render.NewScreenRenderer(screen, palette), config.Interval,
		driver.WithRunnerLogger(log))
	if _, err = ctrl.Seed(); err != nil {
		return runner.Stats(), err
	}

	err = playScreen(ctx, screen, runner)
	return runner.Stats(), err
}

// playScreen runs the timer loop and the input loop side by side. Either one ending
// stops the other.
func playScreen(ctx context.Context, screen tcell.Screen, runner *driver.Runner) error {
	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	eg.Go(func() error {
		defer cancel()
		return runner.Run(ctx)
	})
	eg.Go(func() error {
		defer cancel()
		return pollInput(ctx, screen, runner)
	})
	eg.Go(func() error {
		<-ctx.Done()
		// wake PollEvent so the input loop can see the cancellation
		screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	return eg.Wait()
}

// pollInput turns key presses into runner actions until quit or cancellation
func pollInput(ctx context.Context, screen tcell.Screen, runner *driver.Runner) error {
	for {
		ev := screen.PollEvent()
		if ctx.Err() != nil || ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			action, ok, quit := keyAction(ev)
			if quit {
				return nil
			}
			if !ok {
				continue
			}
			if err := runner.Dispatch(action); err != nil {
				return err
			}
		}
	}
}

// keyAction maps a key press to a driver action. quit is set for q, Esc and Ctrl+C.
func keyAction(ev *tcell.EventKey) (action driver.Action, ok bool, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyEnter:
		return driver.ActionStart, true, false
	case tcell.KeyRune:
	default:
		return 0, false, false
	}

	switch ev.Rune() {
	case 'q':
		return 0, false, true
	case 's':
		return driver.ActionStart, true, false
	case ' ', 'x':
		return driver.ActionStop, true, false
	case 'r':
		return driver.ActionSeed, true, false
	case '+', '=':
		return driver.ActionDensityUp, true, false
	case '-':
		return driver.ActionDensityDown, true, false
	case ']':
		return driver.ActionSeedSizeUp, true, false
	case '[':
		return driver.ActionSeedSizeDown, true, false
	}
	return 0, false, false
}
