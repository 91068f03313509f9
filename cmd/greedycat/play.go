package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/platform/tui"
	"github.com/vovakirdan/greedycat/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode, or pick one from the menu",
	Long: `Start playing. With a mode, the game starts right away and quits
when you leave it; without one, a menu lets you pick modes and browse
the scoreboard until you quit.

Controls:
  Arrows/WASD  - Steer the cat
  Space        - Dash
  F/X          - Attack the boss
  P/Esc        - Pause
  R            - Restart
  B            - Back to menu (when paused or over)
  Ctrl+S       - Save a screenshot to ~/.greedycat/screenshots
  Q/Ctrl+C     - Quit

Examples:
  greedycat play
  greedycat play zen
  greedycat play hardcore --profile desktop
  greedycat play classic --log-file ./greedycat.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is busy)")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	if len(args) == 1 {
		checkMode(cfg, args[0])
	}

	// Logs would scribble over the game, so they go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out, "greedycat")

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runner := tui.NewRunner(cfg, store, logger, flagSeed)
	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx) //nolint:errcheck // Stopped below; cancellation is the only error
	defer func() {
		cancel()
		<-runner.Done()
	}()

	settings, fixed := profileSettings()
	if len(args) == 1 {
		if !fixed {
			settings = tui.FitSettings(width, height)
		}
		err = tui.Run(runner, args[0], settings, width, height)
	} else {
		var grid *core.Settings
		if fixed {
			grid = &settings
		}
		err = tui.RunApp(cfg, store, runner, grid, width, height)
	}
	if err != nil {
		cancel()
		<-runner.Done()
		fail("%v", err)
	}
}
