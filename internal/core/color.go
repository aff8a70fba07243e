package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for tiles and interface elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tilePalette orders colors so neighbouring varieties stay distinguishable.
var tilePalette = []Color{
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorMagenta,
}

// VarietyColor returns the display color for a tile variety.
// Varieties beyond the palette wrap around.
func VarietyColor(variety int) Color {
	if variety < 0 {
		variety = -variety
	}
	return tilePalette[variety%len(tilePalette)]
}
