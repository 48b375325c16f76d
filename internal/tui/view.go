package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/lockdam/internal/theme"
)

func (m *model) View() string {
	if !m.mounted {
		return "Loading…"
	}
	pal := m.palette()
	var frame []string
	if m.route == RouteHome {
		frame, _ = m.homeView(pal)
		body := m.layout.windowHeight - footerHeight
		for len(frame) < body {
			frame = append(frame, "")
		}
		if len(frame) > body && body >= 0 {
			frame = frame[:body]
		}
		frame = append(frame, m.footer(pal))
	} else {
		frame = m.pageView(pal)
	}
	frame = normalizeFrame(frame, m.layout.windowWidth, m.layout.windowHeight, pal)

	switch {
	case m.gating():
		frame = scrim(frame, pal, m.onboard.ScrimOpacity())
		for _, box := range m.onboardingBoxes(pal) {
			frame = overlay(frame, box.lines, box.x, box.y, pal.Base)
		}
	case m.closerOpen:
		if box, ok := m.closerBox(pal); ok {
			frame = scrim(frame, pal, closerScrim)
			frame = overlay(frame, box.lines, box.x, box.y, pal.Base)
		}
	}
	return strings.Join(frame, "\n")
}

// pageView renders header, sidebar, body and footer of a reading page.
func (m *model) pageView(pal theme.Palette) []string {
	p := m.page
	frame := []string{m.header(pal)}
	side, _ := m.sidebar(pal)
	body := p.visible()
	sep := lipgloss.NewStyle().Foreground(pal.Muted).Background(pal.Main).Render("│")
	for row := 0; row < m.layout.bodyHeight; row++ {
		left := ""
		if row < len(side) {
			left = side[row]
		}
		right := ""
		if row < len(body) {
			right = body[row]
		}
		line := fitLine(left, m.layout.sidebarWidth, pal.Base) + sep +
			pal.Base.Render("  ") + fitLine(right, m.layout.bodyWidth-2, pal.Base)
		frame = append(frame, line)
	}
	return append(frame, m.footer(pal))
}

func (m *model) header(pal theme.Palette) string {
	left := pal.Nav.Render(returnHomeLabel)
	right := pal.Subtle.Render(fmt.Sprintf("%s · %s · %s %s",
		pageTitle(m.route), m.engine.Resolved(), m.engine.CurrentTime().Format("15:04"), m.engine.TimeOfDay()))
	return spread(left, right, m.layout.windowWidth, pal.Base)
}

func (m *model) footer(pal theme.Palette) string {
	legend := pal.Subtle.Render(m.keyLegend())
	status := ""
	switch {
	case m.errorMessage != "":
		status = pal.Underlined.Render(m.errorMessage)
	case m.infoMessage != "":
		status = pal.Base.Render(m.infoMessage)
	case m.jobs.Running(jobKindExcerpt) > 0:
		status = pal.Subtle.Render("working…")
	}
	return spread(legend, status, m.layout.windowWidth, pal.Base)
}

func (m *model) keyLegend() string {
	if m.gating() {
		return "tab focus · enter/x dismiss · 1-9 dismiss · q quit"
	}
	if m.closerOpen {
		return "esc/enter close"
	}
	switch m.route {
	case RouteHome:
		return "1-3 open · ↑↓ enter select · t theme · q quit"
	case RouteLitReview:
		return "esc home · ↑↓ scroll · [ ] sections · 1-9 jump · o excerpt · t theme · q quit"
	case RouteArtifacts:
		return "esc home · ↑↓ scroll · [ ] items · l look closer · t theme · q quit"
	default:
		return "esc home · ↑↓ scroll · [ ] sections · 1-9 jump · t theme · q quit"
	}
}

func pageTitle(route Route) string {
	switch route {
	case RouteAbout:
		return "About Project"
	case RouteLitReview:
		return "Literature Review"
	case RouteArtifacts:
		return "Artifacts"
	default:
		return "Home"
	}
}

// normalizeFrame pads or clips frame to exactly width×height cells.
func normalizeFrame(frame []string, width, height int, pal theme.Palette) []string {
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(frame) {
			line = frame[i]
		}
		out[i] = fitLine(line, width, pal.Base)
	}
	return out
}
