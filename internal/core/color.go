package core

// Color is a foreground color for a screen cell.
type Color uint8

// Palette for the world view and the HUD.
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
	ColorOrange
	ColorGray
	ColorBrown
)

// ansiCodes are ANSI 256-color indexes; ColorDefault has none.
var ansiCodes = [...]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorBlue:         "4",
	ColorMagenta:      "5",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightBlue:   "12",
	ColorOrange:       "208",
	ColorGray:         "245",
	ColorBrown:        "130",
}

// ANSI returns the 256-color index of c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) < len(ansiCodes) {
		return ansiCodes[c]
	}
	return ""
}
