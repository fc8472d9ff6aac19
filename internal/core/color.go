package core

// Color represents a foreground color for a screen cell.
// The platform layer maps it to ANSI 256-color codes.
type Color uint8

// Colors used by the game.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// ParseColor maps a color name (as used in sprite sheets) to a Color.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	switch name {
	case "green":
		return ColorGreen
	case "bright_green":
		return ColorBrightGreen
	case "yellow":
		return ColorYellow
	case "bright_yellow":
		return ColorBrightYellow
	case "red":
		return ColorRed
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	case "orange":
		return ColorOrange
	case "gray", "grey":
		return ColorGray
	default:
		return ColorDefault
	}
}
