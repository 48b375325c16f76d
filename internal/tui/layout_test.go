package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name                   string
		width, height          int
		side, body, bodyHeight int
	}{
		{name: "regular", width: 100, height: 30, side: 27, body: 72, bodyHeight: 28},
		{name: "narrow sidebar floor", width: 60, height: 30, side: 24, body: 35, bodyHeight: 28},
		{name: "body floor", width: 40, height: 30, side: 24, body: 30, bodyHeight: 28},
		{name: "short window", width: 100, height: 4, side: 27, body: 72, bodyHeight: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newPageLayout()
			l.Update(tc.width, tc.height)
			if l.sidebarWidth != tc.side || l.bodyWidth != tc.body || l.bodyHeight != tc.bodyHeight {
				t.Fatalf("layout = side %d body %d height %d, want %d %d %d",
					l.sidebarWidth, l.bodyWidth, l.bodyHeight, tc.side, tc.body, tc.bodyHeight)
			}
		})
	}
}

func TestWrapWidthFloor(t *testing.T) {
	l := pageLayout{bodyWidth: 72}
	if got := l.wrapWidth(); got != 68 {
		t.Fatalf("wrapWidth = %d, want 68", got)
	}
	l.bodyWidth = 10
	if got := l.wrapWidth(); got != minWrapWidth {
		t.Fatalf("wrapWidth = %d, want %d", got, minWrapWidth)
	}
}

func TestPageBodyRenderPadsShortSections(t *testing.T) {
	body := pageBody{
		intro:    []string{"intro", ""},
		sections: [][]string{{"a", "a", "a"}, make([]string, 12)},
	}
	lines, spans := body.render(10, "")
	want := []sectionSpan{{start: 2, height: 6}, {start: 8, height: 12}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v", spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
	if len(lines) != 20 {
		t.Fatalf("rendered %d lines, want 20", len(lines))
	}
	if lines[0] != "intro" || lines[2] != "a" {
		t.Fatalf("unexpected line order: %q", lines[:3])
	}
}

func TestPageBodyRenderAddsTrailingPadding(t *testing.T) {
	body := pageBody{sections: [][]string{{"one", "one"}, {"two", "two"}}}
	lines, spans := body.render(10, "~")
	if spans[1].start != 6 || spans[1].height != 6 {
		t.Fatalf("last span = %+v", spans[1])
	}
	if len(lines) != 16 {
		t.Fatalf("rendered %d lines, want 16", len(lines))
	}
	maxTop := len(lines) - 10
	if maxTop < spans[1].start {
		t.Fatalf("last section cannot reach the top: max offset %d < start %d", maxTop, spans[1].start)
	}
	if lines[len(lines)-1] != "~" {
		t.Fatalf("padding line = %q", lines[len(lines)-1])
	}
}

func TestPageBodyRenderEmpty(t *testing.T) {
	lines, spans := pageBody{}.render(10, "")
	if len(lines) != 0 || len(spans) != 0 {
		t.Fatalf("empty body rendered %d lines, %d spans", len(lines), len(spans))
	}
}

func TestFitLine(t *testing.T) {
	pad := lipgloss.NewStyle()
	if got := fitLine("abc", 5, pad); got != "abc  " {
		t.Fatalf("fitLine pad = %q", got)
	}
	if got := fitLine("abcdef", 4, pad); got != "abcd" {
		t.Fatalf("fitLine cut = %q", got)
	}
	if got := fitLine("abc", 0, pad); got != "" {
		t.Fatalf("fitLine zero = %q", got)
	}
}

func TestSpread(t *testing.T) {
	pad := lipgloss.NewStyle()
	if got := spread("left", "right", 12, pad); got != "left   right" {
		t.Fatalf("spread = %q", got)
	}
	got := spread("left side", "right side", 12, pad)
	if ansi.StringWidth(got) != 12 || !strings.HasPrefix(got, "left side ") {
		t.Fatalf("crowded spread = %q", got)
	}
}

func TestWrapLinesIndent(t *testing.T) {
	lines := wrapLines("the river keeps moving past the lock", 12, lipgloss.NewStyle(), "  ")
	if len(lines) < 3 {
		t.Fatalf("wrapped into %d lines", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "  ") || ansi.StringWidth(line) > 12 {
			t.Fatalf("line %q escapes the indent or width", line)
		}
	}
	if wrapLines("   ", 12, lipgloss.NewStyle(), "") != nil {
		t.Fatal("blank text should wrap to nothing")
	}
}

func TestPreviewText(t *testing.T) {
	if got := previewText("short", 10); got != "short" {
		t.Fatalf("previewText = %q", got)
	}
	if got := previewText("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("previewText = %q", got)
	}
}

func TestHitAtPrefersFirstZone(t *testing.T) {
	zones := []hitZone{
		{row: 2, col: 4, width: 6, height: 3, index: 7},
		{row: 0, col: 0, width: 20, height: 10, index: 1},
	}
	if idx, ok := hitAt(zones, 5, 3); !ok || idx != 7 {
		t.Fatalf("hitAt = %d, %v", idx, ok)
	}
	if idx, ok := hitAt(zones, 0, 0); !ok || idx != 1 {
		t.Fatalf("hitAt = %d, %v", idx, ok)
	}
	if _, ok := hitAt(zones, 30, 30); ok {
		t.Fatal("hitAt matched outside every zone")
	}
}
