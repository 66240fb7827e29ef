package core

// Color represents a foreground color role for a screen cell.
// The platform layer maps each role to an ANSI 256-color code.
type Color uint8

// Color roles used by the renderer.
const (
	ColorDefault  Color = iota
	ColorPlatform       // static ledges and ground
	ColorMoving         // kinematic platforms
	ColorDecor          // decorative, non-colliding ledges
	ColorHidden         // fake wall, almost background
	ColorPlayer         // the knight
	ColorFlag           // goal marker
	ColorHUD            // room title, hints
	ColorOverlay        // overlay frame and body text
	ColorTitle          // overlay title
	ColorCode           // access code
	ColorParticle       // ambient dust
)
