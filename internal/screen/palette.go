// Package screen provides the off-screen cell buffer that all views render
// into, plus the double-buffered frame that flushes changed rows to a
// physical monitor device. Drawing never touches the device directly.
package screen

// Color is an index into the fixed 16-color monitor palette.
type Color uint8

const (
	White Color = iota
	Orange
	Magenta
	LightBlue
	Yellow
	Lime
	Pink
	Gray
	LightGray
	Cyan
	Purple
	Blue
	Brown
	Green
	Red
	Black

	// PaletteSize is the number of colors a monitor can display.
	PaletteSize = 16
)

var colorNames = [PaletteSize]string{
	"white", "orange", "magenta", "lightblue", "yellow", "lime", "pink",
	"gray", "lightgray", "cyan", "purple", "blue", "brown", "green", "red",
	"black",
}

// String returns the lowercase palette name, e.g. "lightblue".
func (c Color) String() string {
	if int(c) >= PaletteSize {
		return "invalid"
	}
	return colorNames[c]
}

// ParseColor resolves a palette name from config options. The second return
// is false for unknown names.
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return White, false
}
