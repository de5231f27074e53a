package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/config"
	"github.com/spokedu77-ops/flowrunner/engine"
	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/terminal"
)

var (
	configFlag    = flag.String("config", "", "TOML config file (default: "+config.DefaultPath+" when present)")
	debugFlag     = flag.Bool("debug", false, "Log to logs/"+logFileName+" and show the status line")
	levelFlag     = flag.Int("level", 0, "Jump straight into a level (1-4)")
	headlessFlag  = flag.Bool("headless", false, "Run without a terminal on a simulated clock")
	durationFlag  = flag.Duration("duration", 0, "Headless run length (default: the whole session)")
	fpsFlag       = flag.Int("fps", 0, "Frame rate override")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mFLOWRUNNER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)

	logger := logrus.New()
	if logFile := setupLogging(logger, cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.LogLevel())

	if *headlessFlag {
		rep, err := runHeadless(cfg, *durationFlag, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Headless run failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(rep)
		return
	}

	if err := run(cfg, terminal.ParseColorMode(*colorModeFlag), logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// applyFlags layers command line overrides on top of file and environment settings
func applyFlags(cfg *config.Config) {
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *levelFlag > 0 {
		cfg.Engine.StartLevel = *levelFlag
	}
	if *fpsFlag > 0 {
		cfg.Engine.FPS = *fpsFlag
	}
	cfg.Normalize()
}

// run drives an interactive session until the player quits or a signal arrives
func run(cfg config.Config, mode terminal.ColorMode, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()

	view := terminal.NewView(screen, mode)
	view.SetDebugVisible(cfg.Log.Debug)

	s, err := newSession(cfg, view, view, audio.NewSpeakerOutput(), engine.NewWallClock(), log)
	if err != nil {
		return err
	}
	defer s.engine.Dispose()

	if cfg.Engine.StartLevel > 0 {
		if err := s.begin(cfg.Engine.StartLevel); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}

	events := make(chan tcell.Event, 64)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(cfg.FrameInterval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if quit := handleAction(s.engine, view.HandleEvent(ev), screen, log); quit {
				return nil
			}

		case now := <-ticker.C:
			s.engine.Update(now.Sub(last).Seconds())
			last = now
		}
	}
}

// handleAction applies a host level action and reports whether to quit
func handleAction(e *engine.Engine, a terminal.Action, screen tcell.Screen, log logrus.FieldLogger) bool {
	switch a.Kind {
	case terminal.ActionQuit:
		return true
	case terminal.ActionLevel:
		if a.Level > parameter.LevelCount {
			return false
		}
		if err := e.JumpToLevel(a.Level); err != nil && !errors.Is(err, engine.ErrDisposed) {
			log.WithError(err).Warn("level jump failed")
		}
	case terminal.ActionResize:
		w, h := screen.Size()
		e.Resize(w, h)
	}
	return false
}
