package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
	"github.com/vovakirdan/secret-passage/internal/platform/tui"
	"github.com/vovakirdan/secret-passage/internal/reveal"
	"github.com/vovakirdan/secret-passage/internal/storage"
)

var (
	flagConfig   string
	flagWatch    bool
	flagNoReveal bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the rooms",
	Long: `Start a run through the room sequence.

Controls:
  Left/A, Right/D   - Move
  Space/Up/W        - Jump
  Space/Esc/Enter   - Close the secret overlay
  R                 - Restart (after the last room)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Finding the secret opens the companion page configured under reveal.url
in the browser. Use --no-reveal to only record the access code.

Examples:
  passage play
  passage play --config ./my-passage.yaml
  passage play --rooms ./rooms --watch
  passage play --seed 42 --no-reveal`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload rooms when files in --rooms change")
	playCmd.Flags().BoolVar(&flagNoReveal, "no-reveal", false, "Never open the browser")
}

func runPlay(_ *cobra.Command, _ []string) {
	pcfg, err := config.LoadPassage(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rooms, err := loadRooms(flagRooms, pcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rooms: %v\n", err)
		os.Exit(1)
	}

	game, err := passage.New(pcfg, rooms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := newLogger(flagLogPath, flagVerbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		Logger:        logger,
		Hold:          time.Duration(pcfg.Input.HoldMS) * time.Millisecond,
		ScreenshotDir: filepath.Join(filepath.Dir(expandHome(flagDBPath)), "screenshots"),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		opts.Runs = store
	}

	var opener reveal.Opener
	if !flagNoReveal {
		opener = reveal.NewBrowserOpener()
	}
	var codes reveal.Store
	if store != nil {
		codes = store
	}
	revealer := reveal.New(codes, opener, pcfg.Reveal.URL, logger)
	opts.Revealer = revealer

	if flagWatch {
		if flagRooms == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs --rooms, ignoring")
		} else {
			watcher, watchErr := levels.NewWatcher(levels.NewLoader(flagRooms))
			if watchErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", flagRooms, watchErr)
			} else {
				defer watcher.Close()
				opts.Watcher = watcher
			}
		}
	}

	runErr := tui.Run(game, cfg, opts)

	// Let pending reveals record their codes before the store closes
	revealer.Wait()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
