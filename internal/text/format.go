// Package text holds the small formatting helpers shared by views: width
// fitting, centering and compact number formatting for narrow monitor rows.
package text

import (
	"fmt"
	"strings"
	"time"
)

// Truncate fits s into width runes, replacing the tail with ".." when it
// does not fit. Widths below 3 degrade to a hard cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-2]) + ".."
}

// Pad right-pads s with spaces to exactly width runes, truncating if needed.
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// PadLeft left-pads s with spaces to exactly width runes.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// Center centers s in width runes. Odd leftover space goes to the right.
func Center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// CompactNumber renders n with a metric suffix so large counts fit in a few
// cells: 950 -> "950", 1200 -> "1.2K", 3400000 -> "3.4M". Values keep one
// decimal below 10 of a unit and none above.
func CompactNumber(n int64) string {
	neg := ""
	if n < 0 {
		neg = "-"
		n = -n
	}
	switch {
	case n >= 1_000_000_000_000:
		return neg + compactScaled(n, 1_000_000_000_000, "T")
	case n >= 1_000_000_000:
		return neg + compactScaled(n, 1_000_000_000, "G")
	case n >= 1_000_000:
		return neg + compactScaled(n, 1_000_000, "M")
	case n >= 1_000:
		return neg + compactScaled(n, 1_000, "K")
	default:
		return neg + fmt.Sprintf("%d", n)
	}
}

func compactScaled(n, unit int64, suffix string) string {
	whole := n / unit
	if whole >= 10 {
		return fmt.Sprintf("%d%s", whole, suffix)
	}
	tenth := (n % unit) * 10 / unit
	if tenth == 0 {
		return fmt.Sprintf("%d%s", whole, suffix)
	}
	return fmt.Sprintf("%d.%d%s", whole, tenth, suffix)
}

// Percent renders a 0..1 fraction as "42%". Out-of-range input clamps.
func Percent(frac float64) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return fmt.Sprintf("%d%%", int(frac*100+0.5))
}

// ShortDuration renders d in the largest two useful units: "1h02m", "3m05s",
// "12s". Sub-second durations render as "0s".
func ShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// StripPrefix removes a registry namespace ("minecraft:iron_ingot" ->
// "iron_ingot"). Names without a namespace pass through.
func StripPrefix(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// TitleCase turns a registry-style name into a display label:
// "iron_ingot" -> "Iron Ingot".
func TitleCase(name string) string {
	parts := strings.Split(StripPrefix(name), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
