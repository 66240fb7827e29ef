package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/secret-passage/internal/core"
)

// YAMLRoom represents the YAML structure for a room file.
type YAMLRoom struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Order       int              `yaml:"order"`
	Spawn       YAMLPoint        `yaml:"spawn"`
	Flag        *YAMLPoint       `yaml:"flag,omitempty"`
	Goal        YAMLRect         `yaml:"goal"`
	Secret      YAMLRect         `yaml:"secret"`
	Platforms   []YAMLRect       `yaml:"platforms"`
	Moving      []YAMLMoving     `yaml:"moving,omitempty"`
	Decorations []YAMLDecoration `yaml:"decorations,omitempty"`
}

// YAMLPoint is a position in world units.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLRect is an axis-aligned rectangle in world units.
type YAMLRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLMoving is a kinematic platform: its initial rectangle plus its patrol.
type YAMLMoving struct {
	YAMLRect  `yaml:",inline"`
	StartX    float64 `yaml:"start_x"`
	EndX      float64 `yaml:"end_x"`
	Speed     float64 `yaml:"speed"`
	Direction int     `yaml:"direction,omitempty"` // 1 or -1, default 1
}

// YAMLDecoration is visual-only geometry.
type YAMLDecoration struct {
	YAMLRect `yaml:",inline"`
	Kind     string `yaml:"kind,omitempty"`
}

func (r YAMLRect) rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}

// ParseYAML parses a YAML room file. It only checks the file's syntax and
// enumerations; geometry is checked by Validate.
func ParseYAML(data []byte) (Definition, error) {
	var yr YAMLRoom
	if err := yaml.Unmarshal(data, &yr); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	def := Definition{
		ID:     yr.ID,
		Name:   yr.Name,
		Order:  yr.Order,
		Spawn:  Point{X: yr.Spawn.X, Y: yr.Spawn.Y},
		Goal:   yr.Goal.rect(),
		Secret: yr.Secret.rect(),
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	if yr.Flag != nil {
		def.Flag = &Point{X: yr.Flag.X, Y: yr.Flag.Y}
	}

	for _, p := range yr.Platforms {
		def.Platforms = append(def.Platforms, p.rect())
	}

	for i, m := range yr.Moving {
		dir := m.Direction
		switch dir {
		case 0:
			dir = 1
		case 1, -1:
		default:
			return Definition{}, fmt.Errorf("moving platform %d: direction must be 1 or -1, got %d", i, dir)
		}
		def.Moving = append(def.Moving, MovingDef{
			Rect:      m.rect(),
			StartX:    m.StartX,
			EndX:      m.EndX,
			Speed:     m.Speed,
			Direction: dir,
		})
	}

	for i, d := range yr.Decorations {
		kind := DecorationKind(d.Kind)
		switch kind {
		case "":
			kind = DecorationLedge
		case DecorationLedge, DecorationFakeWall:
		default:
			return Definition{}, fmt.Errorf("decoration %d: unknown kind %q", i, d.Kind)
		}
		def.Decorations = append(def.Decorations, Decoration{Rect: d.rect(), Kind: kind})
	}

	return def, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
