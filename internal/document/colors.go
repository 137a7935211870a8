package document

import (
	"encoding/json"
	"strings"
)

// Color is a stroke color.
type Color string

const (
	ColorBlack    Color = "Black"
	ColorRed      Color = "Red"
	ColorGreen    Color = "Green"
	ColorDarkBlue Color = "DarkBlue"
	ColorOrange   Color = "Orange"
)

// Colors lists the stroke palette in sidebar order.
func Colors() []Color {
	return []Color{ColorBlack, ColorRed, ColorGreen, ColorDarkBlue, ColorOrange}
}

func ParseColor(s string) Color {
	for _, c := range Colors() {
		if string(c) == s {
			return c
		}
	}
	return ColorBlack
}

// CSS returns the color as a CSS color keyword.
func (c Color) CSS() string {
	return strings.ToLower(string(ParseColor(string(c))))
}

// BackgroundColor is an optional fill color; the zero value means no fill.
type BackgroundColor string

const (
	BackgroundNone    BackgroundColor = ""
	BackgroundMagenta BackgroundColor = "Magenta"
	BackgroundBlue    BackgroundColor = "Blue"
	BackgroundCyan    BackgroundColor = "Cyan"
	BackgroundYellow  BackgroundColor = "Yellow"
)

// BackgroundColors lists the fill palette, None first.
func BackgroundColors() []BackgroundColor {
	return []BackgroundColor{BackgroundNone, BackgroundMagenta, BackgroundBlue, BackgroundCyan, BackgroundYellow}
}

func ParseBackgroundColor(s string) BackgroundColor {
	for _, c := range BackgroundColors() {
		if string(c) == s {
			return c
		}
	}
	return BackgroundNone
}

func (b BackgroundColor) IsSet() bool {
	return ParseBackgroundColor(string(b)) != BackgroundNone
}

func (b BackgroundColor) CSS() string {
	return strings.ToLower(string(ParseBackgroundColor(string(b))))
}

// MarshalJSON encodes BackgroundNone as null.
func (b BackgroundColor) MarshalJSON() ([]byte, error) {
	if !b.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(string(b))
}
