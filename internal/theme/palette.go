package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the colour set and derived styles for one theme. Main is the
// page background colour and Alt the ink drawn on top of it.
type Palette struct {
	Theme  Theme
	Main   lipgloss.Color
	Alt    lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color

	Base       lipgloss.Style
	Panel      lipgloss.Style
	Heading    lipgloss.Style
	Subtle     lipgloss.Style
	Active     lipgloss.Style
	Inactive   lipgloss.Style
	Underlined lipgloss.Style
	Nav        lipgloss.Style
	Popup      lipgloss.Style
	PopupTitle lipgloss.Style
	Key        lipgloss.Style
}

var swatches = map[Theme][4]string{
	// main, alt, accent, muted
	Dark:  {"#0e1618", "#e9e4d4", "#7fb7be", "#6b7a7d"},
	Time:  {"#2a1c2e", "#f6d9a8", "#f28f6b", "#9c7f8f"},
	Light: {"#f5f0e1", "#1d2729", "#2f6f78", "#8a8f84"},
}

// PaletteFor builds the palette for t. Unknown themes fall back to Dark.
func PaletteFor(t Theme) Palette {
	if !t.Valid() {
		t = Dark
	}
	sw := swatches[t]
	main, alt, accent, muted := lipgloss.Color(sw[0]), lipgloss.Color(sw[1]), lipgloss.Color(sw[2]), lipgloss.Color(sw[3])

	base := lipgloss.NewStyle().Foreground(alt).Background(main)
	return Palette{
		Theme:  t,
		Main:   main,
		Alt:    alt,
		Accent: accent,
		Muted:  muted,

		Base:       base,
		Panel:      base.Border(lipgloss.RoundedBorder()).BorderForeground(alt).BorderBackground(main),
		Heading:    base.Bold(true),
		Subtle:     base.Italic(true).Foreground(muted),
		Active:     lipgloss.NewStyle().Bold(true).Foreground(main).Background(alt),
		Inactive:   base,
		Underlined: base.Underline(true).Foreground(accent),
		Nav:        base.Bold(true).Foreground(accent),
		Popup:      base.Border(lipgloss.RoundedBorder()).BorderForeground(accent).BorderBackground(main).Padding(1, 2),
		PopupTitle: base.Bold(true).Foreground(accent),
		Key:        lipgloss.NewStyle().Bold(true).Foreground(main).Background(accent).Padding(0, 1),
	}
}
