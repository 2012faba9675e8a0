// Package colors resolves free-text color names to a swatch the console can render.
package colors

import (
	"regexp"
	"strings"

	"golang.org/x/image/colornames"
)

// Neutral is shown for anything that is not a color.
const Neutral = "#6b7280"

var (
	reHex     = regexp.MustCompile(`^#([A-Fa-f0-9]{3}){1,2}$`)
	reHexA    = regexp.MustCompile(`^#([A-Fa-f0-9]{4}|[A-Fa-f0-9]{8})$`)
	reRGB     = regexp.MustCompile(`^rgb\((\d{1,3}),\s*(\d{1,3}),\s*(\d{1,3})\)$`)
	reRGBA    = regexp.MustCompile(`^rgba\((\d{1,3}),\s*(\d{1,3}),\s*(\d{1,3}),\s*(0|1|0\.\d+)\)$`)
	reHSL     = regexp.MustCompile(`^hsl\((\d{1,3}),\s*(\d{1,3})%,\s*(\d{1,3})%\)$`)
	reHSLA    = regexp.MustCompile(`^hsla\((\d{1,3}),\s*(\d{1,3})%,\s*(\d{1,3})%,\s*(0|1|0\.\d+)\)$`)
	reBareHex = regexp.MustCompile(`^[0-9A-Fa-f]{3}$|^[0-9A-Fa-f]{6}$`)

	keywords = map[string]bool{"transparent": true, "currentcolor": true}
)

// Valid reports whether s is a CSS color expression or a CSS named color.
func Valid(s string) bool {
	switch {
	case reHex.MatchString(s), reHexA.MatchString(s):
		return true
	case reRGB.MatchString(s), reRGBA.MatchString(s):
		return true
	case reHSL.MatchString(s), reHSLA.MatchString(s):
		return true
	}
	name := strings.ToLower(s)
	if keywords[name] {
		return true
	}
	_, ok := colornames.Map[name]
	return ok
}

// Display maps a stored color name to something renderable:
// the name itself when valid, "#"+name for bare hex, otherwise Neutral.
func Display(name string) string {
	if Valid(name) {
		return name
	}
	if reBareHex.MatchString(name) {
		return "#" + name
	}
	return Neutral
}
