package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/lockdam/internal/theme"
)

func TestOverlayReplacesCells(t *testing.T) {
	frame := []string{"..........", "..........", ".........."}
	out := overlay(frame, []string{"XY", "ZW"}, 3, 1, lipgloss.NewStyle())
	want := []string{"..........", "...XY.....", "...ZW....."}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, out[i], want[i])
		}
	}
	if frame[1] != ".........." {
		t.Fatalf("input frame modified: %q", frame[1])
	}

	clipped := overlay(frame, []string{"AB", "CD"}, 0, 2, lipgloss.NewStyle())
	if len(clipped) != 3 || clipped[2] != "AB........" {
		t.Fatalf("clipped overlay = %q", clipped)
	}
}

func TestOverlayPadsShortRows(t *testing.T) {
	out := overlay([]string{"ab"}, []string{"XY"}, 4, 0, lipgloss.NewStyle())
	if out[0] != "ab  XY" {
		t.Fatalf("overlay = %q", out[0])
	}
}

func TestScrimKeepsText(t *testing.T) {
	pal := theme.PaletteFor(theme.Dark)
	frame := []string{pal.Heading.Render("Lock and Dam"), "plain"}
	if got := scrim(frame, pal, 0); strings.Join(got, "\n") != strings.Join(frame, "\n") {
		t.Fatalf("zero opacity changed the frame: %q", got)
	}

	out := scrim(frame, pal, 0.5)
	if len(out) != len(frame) {
		t.Fatalf("scrim returned %d rows", len(out))
	}
	for i := range frame {
		if ansi.Strip(out[i]) != ansi.Strip(frame[i]) {
			t.Fatalf("row %d text = %q, want %q", i, ansi.Strip(out[i]), ansi.Strip(frame[i]))
		}
	}
}

func TestBlend(t *testing.T) {
	cases := []struct {
		from, to string
		t        float64
		want     string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"not-a-colour", "#ffffff", 0.5, "not-a-colour"},
	}
	for _, tc := range cases {
		if got := blend(tc.from, tc.to, tc.t); got != tc.want {
			t.Fatalf("blend(%s, %s, %v) = %s, want %s", tc.from, tc.to, tc.t, got, tc.want)
		}
	}
}

func TestPopupWidthBounded(t *testing.T) {
	if got := popupWidth(200); got != popupMaxWidth {
		t.Fatalf("popupWidth(200) = %d", got)
	}
	if got := popupWidth(40); got > 40 {
		t.Fatalf("popupWidth(40) = %d", got)
	}
}

func TestRenderPopupShowsCopy(t *testing.T) {
	pal := theme.PaletteFor(theme.Light)
	box := ansi.Strip(renderPopup(pal, "Welcome", "Scroll to read the river.", "enter to dismiss", 30, true))
	for _, want := range []string{"Welcome", "Scroll to read", "enter to dismiss"} {
		if !strings.Contains(box, want) {
			t.Fatalf("popup missing %q:\n%s", want, box)
		}
	}
}
