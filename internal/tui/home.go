package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/lockdam/internal/theme"
)

const homeMargin = 2

// homeView renders the landing page and the click zones of its links.
func (m *model) homeView(pal theme.Palette) ([]string, []hitZone) {
	width := m.layout.windowWidth - 2*homeMargin
	if width < minWrapWidth {
		width = minWrapWidth
	}
	textWidth := width
	if textWidth > 76 {
		textWidth = 76
	}
	project := m.site.Project
	margin := pal.Base.Render(strings.Repeat(" ", homeMargin))
	var lines []string
	add := func(s string) {
		lines = append(lines, margin+s)
	}

	add("")
	add(spread(pal.Base.Render(project.Title+":"), pal.Subtle.Render(project.Author), width, pal.Base))
	add(spread(pal.Heading.Render(project.Subtitle), pal.Subtle.Render(project.Course), width, pal.Base))
	add(spread("", pal.Subtle.Render(project.Term), width, pal.Base))
	add("")
	add(centre(pal.Heading.Render(m.engine.CurrentTime().Format("15:04")), width, pal))
	add("")
	place := fmt.Sprintf("%s at %s", m.engine.TimeOfDay(), project.Place)
	add(spread(pal.Base.Render("it's currently"), pal.Base.Render(place), width, pal.Base))
	add("")
	for _, line := range wrapLines(m.site.Home.Blurb, textWidth, pal.Base, "") {
		add(line)
	}
	if m.site.Home.Prompt != "" {
		add("")
		for _, line := range wrapLines(m.site.Home.Prompt, textWidth, pal.Subtle, "") {
			add(line)
		}
	}
	add("")

	var zones []hitZone
	for i, link := range homeLinks {
		label := fmt.Sprintf(" %d  %s", i+1, link.label)
		row := fitPlain(label, textWidth-2) + "→ "
		style := pal.Inactive
		if i == m.homeFocus {
			style = pal.Active
		}
		zones = append(zones, hitZone{row: len(lines), col: homeMargin, width: ansi.StringWidth(row), height: 1, index: i})
		add(style.Render(row))
	}
	add("")
	add(m.inlineLegend(pal))
	return lines, zones
}

func (m *model) inlineLegend(pal theme.Palette) string {
	current := m.engine.Mode().String()
	parts := []string{pal.Heading.Render("Theme Select (t):")}
	for _, mode := range themeModes {
		if mode == current {
			parts = append(parts, pal.Nav.Render("● "+titleCase(mode)))
		} else {
			parts = append(parts, pal.Subtle.Render("○ "+titleCase(mode)))
		}
	}
	return strings.Join(parts, pal.Base.Render("  "))
}

func centre(s string, width int, pal theme.Palette) string {
	gap := (width - ansi.StringWidth(s)) / 2
	if gap <= 0 {
		return s
	}
	return pal.Base.Render(strings.Repeat(" ", gap)) + s
}
