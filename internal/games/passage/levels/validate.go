package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/secret-passage/internal/core"
)

// ValidationError contains details about a rejected room.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a room definition against the player's body size.
// Checks:
//   - the room has an ID
//   - every rectangle has positive width and height
//   - kinematic patrols are well-formed
//   - the spawn body does not start inside a solid platform
//   - neither trigger is buried inside a single solid platform
func Validate(def Definition, playerW, playerH float64) error {
	if def.ID == "" {
		return ValidationError{Code: "EMPTY_ID", Message: "room has no id"}
	}

	if err := validateRects(def); err != nil {
		return err
	}

	for i, m := range def.Moving {
		if m.StartX > m.EndX || m.Speed <= 0 {
			return ValidationError{
				Code:    "BAD_RANGE",
				Message: fmt.Sprintf("room %s: moving platform %d has range [%v, %v] at speed %v", def.ID, i, m.StartX, m.EndX, m.Speed),
			}
		}
	}

	body := core.NewRect(def.Spawn.X, def.Spawn.Y, playerW, playerH)
	for _, s := range solids(def) {
		if body.Intersects(s) {
			return ValidationError{
				Code:    "SPAWN_BLOCKED",
				Message: fmt.Sprintf("room %s: spawn (%v, %v) overlaps platform %+v", def.ID, def.Spawn.X, def.Spawn.Y, s),
			}
		}
	}

	for _, s := range solids(def) {
		if s.ContainsRect(def.Goal) {
			return ValidationError{
				Code:    "GOAL_UNREACHABLE",
				Message: fmt.Sprintf("room %s: goal %+v is inside platform %+v", def.ID, def.Goal, s),
			}
		}
		if s.ContainsRect(def.Secret) {
			return ValidationError{
				Code:    "SECRET_UNREACHABLE",
				Message: fmt.Sprintf("room %s: secret %+v is inside platform %+v", def.ID, def.Secret, s),
			}
		}
	}

	return nil
}

// ValidateAll validates a room sequence. All problems are reported together.
func ValidateAll(defs []Definition, playerW, playerH float64) error {
	if len(defs) == 0 {
		return ValidationError{Code: "NO_ROOMS", Message: "room sequence is empty"}
	}
	var errs []error
	for _, d := range defs {
		if err := Validate(d, playerW, playerH); err != nil {
			errs = append(errs, err)
		}
	}
	if err := checkUniqueIDs(defs); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validateRects(def Definition) error {
	check := func(what string, r core.Rect) error {
		if r.Valid() {
			return nil
		}
		return ValidationError{
			Code:    "BAD_RECT",
			Message: fmt.Sprintf("room %s: %s has non-positive size %vx%v", def.ID, what, r.W, r.H),
		}
	}

	if err := check("goal", def.Goal); err != nil {
		return err
	}
	if err := check("secret", def.Secret); err != nil {
		return err
	}
	for i, p := range def.Platforms {
		if err := check(fmt.Sprintf("platform %d", i), p); err != nil {
			return err
		}
	}
	for i, m := range def.Moving {
		if err := check(fmt.Sprintf("moving platform %d", i), m.Rect); err != nil {
			return err
		}
	}
	for i, d := range def.Decorations {
		if err := check(fmt.Sprintf("decoration %d", i), d.Rect); err != nil {
			return err
		}
	}
	return nil
}

// solids returns every rectangle the player can collide with at load time.
func solids(def Definition) []core.Rect {
	out := make([]core.Rect, 0, len(def.Platforms)+len(def.Moving))
	out = append(out, def.Platforms...)
	for _, m := range def.Moving {
		out = append(out, m.Rect)
	}
	return out
}
