package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/lockdam/internal/scroll"
)

// pageLayout splits the window into header, sidebar, body and footer.
type pageLayout struct {
	windowWidth  int
	windowHeight int
	sidebarWidth int
	bodyWidth    int
	bodyHeight   int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	side := width * sidebarPercent / 100
	if side < minSidebarWidth {
		side = minSidebarWidth
	}
	body := width - side - gutterWidth
	if body < minBodyWidth {
		body = minBodyWidth
	}
	l.sidebarWidth = side
	l.bodyWidth = body
	usable := height - headerHeight - footerHeight
	if usable < 3 {
		usable = 3
	}
	l.bodyHeight = usable
}

// wrapWidth is the text width inside the body column.
func (l pageLayout) wrapWidth() int {
	w := l.bodyWidth - bodyPadding
	if w < minWrapWidth {
		w = minWrapWidth
	}
	return w
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

// WriteLine writes s followed by a newline.
func (cb *contentBuilder) WriteLine(s string) {
	cb.WriteString(s)
	cb.WriteRune('\n')
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// sectionSpan is a section's line range inside a page body.
type sectionSpan struct {
	start  int
	height int
}

// pageBody is a reading page's content before padding: an intro block and
// one block of lines per section.
type pageBody struct {
	intro    []string
	sections [][]string
}

// render lays the body out for a container clientHeight lines tall, padding
// sections so every sidebar jump settles on the section it targeted.
func (b pageBody) render(clientHeight int, blank string) ([]string, []sectionSpan) {
	heights := make([]int, len(b.sections))
	for i, lines := range b.sections {
		heights[i] = len(lines)
	}
	extra, trailing := scroll.Pad(heights, clientHeight)

	cb := &contentBuilder{}
	for _, line := range b.intro {
		cb.WriteLine(line)
	}
	spans := make([]sectionSpan, len(b.sections))
	for i, lines := range b.sections {
		spans[i].start = cb.Line()
		for _, line := range lines {
			cb.WriteLine(line)
		}
		for j := 0; j < extra[i]; j++ {
			cb.WriteLine(blank)
		}
		spans[i].height = heights[i] + extra[i]
	}
	for j := 0; j < trailing; j++ {
		cb.WriteLine(blank)
	}
	content := strings.TrimSuffix(cb.String(), "\n")
	if content == "" {
		return []string{}, spans
	}
	return strings.Split(content, "\n"), spans
}

// wrapLines word-wraps text to width and styles each resulting line.
func wrapLines(text string, width int, style lipgloss.Style, indent string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	wrapped := wordwrap.String(text, width-len(indent))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = style.Render(indent + line)
	}
	return lines
}

// blockLines splits a rendered multi-line block.
func blockLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// fitLine truncates or pads s to exactly width cells; pad renders the fill.
func fitLine(s string, width int, pad lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	if w < width {
		return s + pad.Render(strings.Repeat(" ", width-w))
	}
	return s
}

// spread places left and right on one line of width cells.
func spread(left, right string, width int, pad lipgloss.Style) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return fitLine(left+pad.Render(" ")+right, width, pad)
	}
	return left + pad.Render(strings.Repeat(" ", gap)) + right
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
