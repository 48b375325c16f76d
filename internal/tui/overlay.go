package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/csheth/lockdam/internal/onboarding"
	"github.com/csheth/lockdam/internal/theme"
)

// popupBox is a rendered popup and where it sits on screen.
type popupBox struct {
	index int
	x, y  int
	lines []string
	width int
}

func (b popupBox) zone() hitZone {
	return hitZone{row: b.y, col: b.x, width: b.width, height: len(b.lines), index: b.index}
}

func popupWidth(screen int) int {
	w := screen - 4
	if w > popupMaxWidth {
		w = popupMaxWidth
	}
	if w < minWrapWidth {
		w = minWrapWidth
	}
	return w
}

// renderPopup draws a bordered note. Width is the outer width.
func renderPopup(pal theme.Palette, title, description, hint string, width int, focused bool) string {
	style := pal.Popup.Width(width - 2)
	if !focused {
		style = style.BorderForeground(pal.Muted)
	}
	inner := width - 2 - style.GetHorizontalPadding()
	parts := wrapLines(title, inner, pal.PopupTitle, "")
	parts = append(parts, "")
	parts = append(parts, wrapLines(description, inner, pal.Base, "")...)
	if hint != "" {
		parts = append(parts, "", pal.Subtle.Render(hint))
	}
	return style.Render(strings.Join(parts, "\n"))
}

// onboardingBoxes lays out every undismissed onboarding popup.
func (m *model) onboardingBoxes(pal theme.Palette) []popupBox {
	width := popupWidth(m.layout.windowWidth)
	focused := m.onboard.Focused()
	var boxes []popupBox
	for i, popup := range m.onboard.Popups() {
		if popup.Dismissed {
			continue
		}
		hint := fmt.Sprintf("%d / enter / click to dismiss", i+1)
		block := renderPopup(pal, popup.Title, popup.Description, hint, width, i == focused)
		lines := blockLines(block)
		boxWidth := lipgloss.Width(block)
		x, y, _ := m.onboard.Placement(i, m.layout.windowWidth, m.layout.windowHeight, boxWidth, len(lines))
		boxes = append(boxes, popupBox{index: i, x: x, y: y, lines: lines, width: boxWidth})
	}
	return boxes
}

// popupZones lists clickable popups, topmost first.
func (m *model) popupZones() []hitZone {
	boxes := m.onboardingBoxes(m.palette())
	zones := make([]hitZone, 0, len(boxes))
	for i := len(boxes) - 1; i >= 0; i-- {
		zones = append(zones, boxes[i].zone())
	}
	return zones
}

// closerBox lays out the artifact collection's "Look a Little Closer" popup
// at a position drawn once per collection.
func (m *model) closerBox(pal theme.Palette) (popupBox, bool) {
	collection, ok := m.currentCollection()
	if !ok {
		return popupBox{}, false
	}
	width := popupWidth(m.layout.windowWidth)
	block := renderPopup(pal, collection.Title, collection.Description, "esc / enter / click to close", width, true)
	lines := blockLines(block)
	boxWidth := lipgloss.Width(block)
	pos := m.positions.At(closerKey + ":" + collection.Slug)
	x, y := onboarding.Place(pos, m.layout.windowWidth, m.layout.windowHeight, boxWidth, len(lines))
	return popupBox{x: x, y: y, lines: lines, width: boxWidth}, true
}

// scrim dims a frame toward the page background. Styling underneath is
// dropped and every cell is recoloured with the blended ink.
func scrim(frame []string, pal theme.Palette, opacity float64) []string {
	if opacity <= 0 {
		return frame
	}
	if opacity > 1 {
		opacity = 1
	}
	ink := blend(string(pal.Alt), string(pal.Main), opacity)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ink)).Background(pal.Main)
	out := make([]string, len(frame))
	for i, line := range frame {
		out[i] = style.Render(ansi.Strip(line))
	}
	return out
}

// blend mixes from toward to by t in RGB space.
func blend(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendRgb(b, t).Clamped().Hex()
}

// overlay draws box onto frame with its top-left cell at (x, y).
func overlay(frame []string, box []string, x, y int, pad lipgloss.Style) []string {
	out := append([]string(nil), frame...)
	for i, line := range box {
		row := y + i
		if row < 0 || row >= len(out) {
			continue
		}
		bg := out[row]
		left := ansi.Truncate(bg, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += pad.Render(strings.Repeat(" ", x-w))
		}
		right := ansi.TruncateLeft(bg, x+ansi.StringWidth(line), "")
		out[row] = left + line + right
	}
	return out
}
