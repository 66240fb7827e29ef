// Package levels provides room definitions for the platformer: the YAML
// file format, the embedded default rooms, directory loading, validation
// and live reload. It depends on core but the simulation does not depend on
// any file format.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/secret-passage/internal/core"
)

//go:embed data/*.yaml
var defaultRooms embed.FS

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// MovingDef describes a kinematic platform.
type MovingDef struct {
	Rect      core.Rect
	StartX    float64
	EndX      float64
	Speed     float64
	Direction int
}

// DecorationKind selects how visual-only geometry is drawn.
type DecorationKind string

const (
	DecorationLedge    DecorationKind = "ledge"
	DecorationFakeWall DecorationKind = "fake_wall"
)

// Decoration is geometry that is drawn but never collides.
type Decoration struct {
	Rect core.Rect
	Kind DecorationKind
}

// Definition is a complete room: geometry, triggers and spawn point.
type Definition struct {
	ID          string
	Name        string
	Order       int
	Spawn       Point
	Flag        *Point // Visual goal marker, optional
	Goal        core.Rect
	Secret      core.Rect
	Platforms   []core.Rect
	Moving      []MovingDef
	Decorations []Decoration
	FilePath    string
}

// Loader handles loading room files from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new room loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all room files.
// Unlike a best-effort scan, a file that fails to parse aborts the load so
// a broken room never silently drops out of the sequence.
func (l *Loader) LoadAll() ([]Definition, error) {
	var defs []Definition

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		def, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: loading %s: %w", l.Root, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("levels: no room files in %s", l.Root)
	}

	if err := checkUniqueIDs(defs); err != nil {
		return nil, err
	}
	Sort(defs)
	return defs, nil
}

// LoadFile loads a single room file.
func (l *Loader) LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	def, err := ParseYAML(data)
	if err != nil {
		return Definition{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	def.FilePath = path
	return def, nil
}

// Defaults returns the rooms shipped with the game, in play order.
func Defaults() ([]Definition, error) {
	var defs []Definition

	err := fs.WalkDir(defaultRooms, "data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := defaultRooms.ReadFile(path)
		if err != nil {
			return err
		}
		def, err := ParseYAML(data)
		if err != nil {
			return fmt.Errorf("parsing embedded %s: %w", path, err)
		}
		def.FilePath = path
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: loading embedded rooms: %w", err)
	}

	Sort(defs)
	return defs, nil
}

// Sort orders definitions by Order, then ID, for a deterministic sequence.
func Sort(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Order != defs[j].Order {
			return defs[i].Order < defs[j].Order
		}
		return defs[i].ID < defs[j].ID
	})
}

// checkUniqueIDs rejects two files declaring the same room.
func checkUniqueIDs(defs []Definition) error {
	seen := make(map[string]string, len(defs))
	for _, d := range defs {
		if prev, ok := seen[d.ID]; ok {
			return ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("room %q defined in both %s and %s", d.ID, prev, d.FilePath),
			}
		}
		seen[d.ID] = d.FilePath
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
