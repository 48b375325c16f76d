// Package theme derives the site palette from the time of day. The engine is
// created once per program run and handed to every page by pointer.
package theme

import (
	"fmt"
	"strings"
	"time"
)

// Theme is one of the three discrete palettes.
type Theme int

const (
	Dark Theme = iota
	Time
	Light
)

// Themes lists every palette in toggle order.
var Themes = []Theme{Dark, Time, Light}

func (t Theme) String() string {
	switch t {
	case Dark:
		return "dark"
	case Time:
		return "time"
	case Light:
		return "light"
	default:
		return fmt.Sprintf("theme(%d)", int(t))
	}
}

// Valid reports whether t is one of the known palettes.
func (t Theme) Valid() bool {
	return t >= Dark && t <= Light
}

// ParseTheme accepts "dark", "time" or "light" (case-insensitive).
func ParseTheme(value string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark":
		return Dark, nil
	case "time":
		return Time, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q: want dark, time or light", value)
	}
}

// Resolution is the outcome of mapping a time of day onto the palettes.
type Resolution struct {
	Theme Theme
	Label string
}

type band struct {
	from  int // minutes since midnight, inclusive
	theme Theme
	label string
}

// bands must stay sorted by from and start at 0.
var bands = []band{
	{from: 0, theme: Dark, label: "night"},
	{from: 5 * 60, theme: Time, label: "dawn"},
	{from: 8 * 60, theme: Light, label: "morning"},
	{from: 12 * 60, theme: Light, label: "afternoon"},
	{from: 17 * 60, theme: Time, label: "dusk"},
	{from: 20 * 60, theme: Dark, label: "night"},
}

// Resolve maps the wall-clock time of t onto a palette and a label. Only the
// hour and minute in t's own location matter.
func Resolve(t time.Time) Resolution {
	minute := t.Hour()*60 + t.Minute()
	current := bands[0]
	for _, b := range bands[1:] {
		if minute < b.from {
			break
		}
		current = b
	}
	return Resolution{Theme: current.theme, Label: current.label}
}
