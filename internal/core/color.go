package core

import "strings"

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by sprites, obstacles and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightMagenta
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_magenta": ColorBrightMagenta,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor resolves a palette name as used in sprite files.
// Unknown names resolve to ColorDefault with ok == false.
func ParseColor(name string) (c Color, ok bool) {
	c, ok = colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
