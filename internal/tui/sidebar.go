package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/lockdam/internal/theme"
)

const (
	returnHomeLabel = "← Return Home"
	closerLabel     = "◎ Look a Little Closer"
	// closerZone marks the sidebar button that opens the artifact popup.
	closerZone = -1
)

var themeModes = []string{"auto", "dark", "time", "light"}

// sidebar renders the left column of the current page. Zone rows are relative
// to the top of the column.
func (m *model) sidebar(pal theme.Palette) ([]string, []hitZone) {
	if m.page == nil {
		return nil, nil
	}
	var lines []string
	var zones []hitZone
	switch m.page.route {
	case RouteAbout:
		lines, zones = m.aboutSidebar(pal)
	case RouteLitReview:
		lines, zones = m.litReviewSidebar(pal)
	case RouteArtifacts:
		lines, zones = m.artifactsSidebar(pal)
	}
	legend := m.themeLegend(pal)
	for len(lines) < m.layout.bodyHeight-len(legend) {
		lines = append(lines, "")
	}
	return append(lines, legend...), zones
}

func (m *model) aboutSidebar(pal theme.Palette) ([]string, []hitZone) {
	active := m.page.tracker.Active()
	width := m.layout.sidebarWidth - 2
	lines := []string{""}
	var zones []hitZone

	for start := 0; start < len(m.site.About); start += 3 {
		var row strings.Builder
		row.WriteString(pal.Base.Render(" "))
		col := 1
		for i := start; i < start+3 && i < len(m.site.About); i++ {
			cell := fmt.Sprintf("(%d)", i+1)
			style := pal.Inactive
			if i == active {
				style = pal.Active
			}
			row.WriteString(style.Render(cell))
			row.WriteString(pal.Base.Render(" "))
			zones = append(zones, hitZone{row: len(lines), col: col, width: len(cell), height: 1, index: i})
			col += len(cell) + 1
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, "")

	for i, section := range m.site.About {
		label := ansi.Truncate(fmt.Sprintf("%d. %s", i+1, section.Title), width, "…")
		style := pal.Inactive
		if i == active {
			style = pal.Underlined
		}
		zones = append(zones, hitZone{row: len(lines), col: 0, width: m.layout.sidebarWidth, height: 1, index: i})
		lines = append(lines, pal.Base.Render(" ")+style.Render(label))
	}
	return lines, zones
}

func (m *model) litReviewSidebar(pal theme.Palette) ([]string, []hitZone) {
	active := m.page.tracker.Active()
	width := m.layout.sidebarWidth - 2
	books := m.site.LitReview.Books
	lines := []string{""}
	var zones []hitZone

	shelfTop := len(lines)
	lines = append(lines, renderShelf(pal, m.page.shelf, active)...)
	for i := range m.page.shelf {
		zones = append(zones, hitZone{row: shelfTop, col: 1 + i*spineWidth, width: spineWidth, height: shelfRows, index: i})
	}
	lines = append(lines, "")

	for i, book := range books {
		label := ansi.Truncate(fmt.Sprintf("%d. %s by %s", i+1, book.Title, book.Author), width, "…")
		style := pal.Inactive
		if i == active {
			style = pal.Underlined
		}
		zones = append(zones, hitZone{row: len(lines), col: 0, width: m.layout.sidebarWidth, height: 1, index: i})
		lines = append(lines, pal.Base.Render(" ")+style.Render(label))
	}
	return lines, zones
}

// renderShelf draws one spine per book, bottom-aligned, numbered on the
// bottom row. The active spine is filled.
func renderShelf(pal theme.Palette, heights []int, active int) []string {
	rows := make([]string, shelfRows)
	for y := 0; y < shelfRows; y++ {
		var row strings.Builder
		row.WriteString(pal.Base.Render(" "))
		for i, h := range heights {
			top := shelfRows - h
			label := strconv.Itoa((i + 1) % 10)
			var cell string
			switch {
			case y < top:
				cell = pal.Base.Render("   ")
			case i == active && y == shelfRows-1:
				cell = pal.Active.Render(" " + label + " ")
			case i == active:
				cell = pal.Active.Render("   ")
			case y == top:
				cell = pal.Inactive.Render("┌─┐")
			case y == shelfRows-1:
				cell = pal.Inactive.Render("│" + label + "│")
			default:
				cell = pal.Inactive.Render("│ │")
			}
			row.WriteString(cell)
		}
		rows[y] = row.String()
	}
	return rows
}

func (m *model) artifactsSidebar(pal theme.Palette) ([]string, []hitZone) {
	width := m.layout.sidebarWidth - 2
	collection, ok := m.currentCollection()
	lines := []string{"", pal.Base.Render(" ") + pal.Subtle.Render("Artifact Collection:")}
	if !ok {
		return lines, nil
	}
	active := m.page.tracker.Active()
	var zones []hitZone

	lines = append(lines, pal.Base.Render(" ")+pal.Heading.Render(ansi.Truncate(collection.Title, width, "…")), "")
	zones = append(zones, hitZone{row: len(lines), col: 0, width: m.layout.sidebarWidth, height: 1, index: closerZone})
	lines = append(lines, pal.Base.Render(" ")+pal.Nav.Render(closerLabel)+pal.Subtle.Render(" (l)"), "")

	for i, item := range collection.Items {
		style := pal.Inactive
		if i == active {
			style = pal.Active
		}
		label := ansi.Truncate(item.Name, width-3, "…")
		zones = append(zones, hitZone{row: len(lines), col: 0, width: m.layout.sidebarWidth, height: 1, index: i})
		lines = append(lines, pal.Base.Render(" ")+style.Render(fitPlain(label+" ", width-1)+"→"))
	}
	if len(m.site.Artifacts) > 1 {
		lines = append(lines, "", pal.Base.Render(" ")+pal.Subtle.Render("c: next collection"))
	}
	return lines, zones
}

// themeLegend lists the toggle positions with the current one marked.
func (m *model) themeLegend(pal theme.Palette) []string {
	current := m.engine.Mode().String()
	lines := []string{pal.Base.Render(" ") + pal.Heading.Render("Theme Select (t):")}
	for _, mode := range themeModes {
		mark := "○"
		style := pal.Subtle
		if mode == current {
			mark = "●"
			style = pal.Nav
		}
		lines = append(lines, pal.Base.Render("  ")+style.Render(mark+" "+titleCase(mode)))
	}
	return append(lines, "")
}

func fitPlain(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
