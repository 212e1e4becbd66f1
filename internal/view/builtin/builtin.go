// Package builtin holds the stock view definitions shipped with craftmon: a
// representative set covering every rendering strategy. Content views beyond
// these live out of tree and register the same way.
package builtin

import (
	"fmt"
	"strings"

	"craftmon/internal/view"
)

// Register adds every builtin view to the registry.
func Register(reg *view.Registry) error {
	for _, def := range []*view.Definition{
		MEItems(),
		Crafting(),
		Energy(),
		Fluids(),
		Status(),
	} {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("register builtin: %w", err)
		}
	}
	return nil
}

// barString renders an inline text progress bar for strategies that only
// emit lines, e.g. "[####----]".
func barString(frac float64, width int) string {
	if width < 2 {
		return ""
	}
	inner := width - 2
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(inner) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", inner-filled) + "]"
}
