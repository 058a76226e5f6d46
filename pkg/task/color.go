package task

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is one entry of the fixed palette offered to users.
type Color struct {
	Key   string
	Label string
	Hex   string
	RGBA  color.RGBA
}

var palette = []Color{
	{Key: "blue", Label: "آبی", Hex: "#0000ff", RGBA: color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}},
	{Key: "green", Label: "سبز", Hex: "#008000", RGBA: color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}},
	{Key: "red", Label: "قرمز", Hex: "#ff0000", RGBA: color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}},
	{Key: "orange", Label: "نارنجی", Hex: "#ffa500", RGBA: color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}},
	{Key: "purple", Label: "بنفش", Hex: "#800080", RGBA: color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}},
	{Key: "yellow", Label: "زرد", Hex: "#ffff00", RGBA: color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}},
	{Key: "cyan", Label: "فیروزه‌ای", Hex: "#00ffff", RGBA: color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}},
	{Key: "magenta", Label: "ارغوانی", Hex: "#ff00ff", RGBA: color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}},
}

// DefaultColor is preselected for new tasks.
var DefaultColor = palette[0]

// Palette returns the selectable colors in display order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

// ResolveColor finds a palette entry by key (case-insensitive) or by its Persian label.
// Anything else is rejected; there is no fallback color.
func ResolveColor(name string) (Color, error) {
	name = strings.TrimSpace(name)
	for _, c := range palette {
		if strings.EqualFold(c.Key, name) || c.Label == name {
			return c, nil
		}
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
