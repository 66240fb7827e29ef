package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger opens the log file. The terminal belongs to the game while it
// runs, so nothing is logged to stderr. An empty path discards logs.
func newLogger(path string, verbose bool) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "passage",
		Level:           level,
	})
	return logger, f, nil
}

// loadRooms returns the rooms in dir, or the built-in rooms when dir is
// empty, validated against the player's body.
func loadRooms(dir string, cfg config.PassageConfig) ([]levels.Definition, error) {
	var (
		defs []levels.Definition
		err  error
	)
	if dir == "" {
		defs, err = levels.Defaults()
	} else {
		defs, err = levels.NewLoader(dir).LoadAll()
	}
	if err != nil {
		return nil, err
	}
	if err := levels.ValidateAll(defs, cfg.Player.Width, cfg.Player.Height); err != nil {
		return nil, err
	}
	return defs, nil
}
