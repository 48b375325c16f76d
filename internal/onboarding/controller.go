// Package onboarding runs the first-visit popups: a fixed set of notes placed
// at random but stable positions that must all be dismissed before the page
// underneath accepts input.
package onboarding

import (
	"math/rand/v2"
	"strconv"
)

const (
	// DefaultCompactWidth is the terminal width below which onboarding is
	// skipped.
	DefaultCompactWidth = 80
	// DefaultMaxScrim is the scrim opacity before anything is dismissed.
	DefaultMaxScrim = 0.7
)

// Note is the static copy for one popup.
type Note struct {
	Title       string
	Description string
}

// Popup is a note plus its session state.
type Popup struct {
	Title       string
	Description string
	Position    Position
	Dismissed   bool
}

// Options tunes a Controller.
type Options struct {
	// Seen starts the session with onboarding already completed.
	Seen         bool
	CompactWidth int
	MaxScrim     float64
}

// Controller tracks which popups were dismissed. Dismissal is one-way.
type Controller struct {
	popups       []Popup
	dismissed    int
	seenAtStart  bool
	compactWidth int
	maxScrim     float64
	mounted      bool
	disabled     bool
	focus        int
}

// New draws every popup position once from rng.
func New(notes []Note, rng *rand.Rand, opts Options) *Controller {
	positions := NewPositioner(rng)
	popups := make([]Popup, len(notes))
	for i, note := range notes {
		popups[i] = Popup{
			Title:       note.Title,
			Description: note.Description,
			Position:    positions.At(strconv.Itoa(i)),
		}
	}
	compact := opts.CompactWidth
	if compact <= 0 {
		compact = DefaultCompactWidth
	}
	maxScrim := opts.MaxScrim
	if maxScrim <= 0 || maxScrim > 1 {
		maxScrim = DefaultMaxScrim
	}
	return &Controller{
		popups:       popups,
		seenAtStart:  opts.Seen,
		compactWidth: compact,
		maxScrim:     maxScrim,
	}
}

// Mount activates the overlay for a screen of the given width. A compact
// screen skips onboarding for the rest of the session.
func (c *Controller) Mount(width int) {
	c.mounted = true
	c.Resize(width)
}

// Resize reacts to a terminal resize.
func (c *Controller) Resize(width int) {
	if width < c.compactWidth {
		c.disabled = true
	}
}

// Popups returns a copy of every popup.
func (c *Controller) Popups() []Popup {
	out := make([]Popup, len(c.popups))
	copy(out, c.popups)
	return out
}

// Total is the number of popups.
func (c *Controller) Total() int {
	return len(c.popups)
}

// DismissedCount is how many popups have been dismissed.
func (c *Controller) DismissedCount() int {
	return c.dismissed
}

// Dismiss marks popup index dismissed and reports whether that changed
// anything. Repeats and out-of-range indexes are no-ops.
func (c *Controller) Dismiss(index int) bool {
	if index < 0 || index >= len(c.popups) || c.popups[index].Dismissed {
		return false
	}
	c.popups[index].Dismissed = true
	c.dismissed++
	if c.focus == index {
		c.FocusNext()
	}
	return true
}

// HasSeen reports whether onboarding is complete for this session.
func (c *Controller) HasSeen() bool {
	return c.seenAtStart || c.dismissed == len(c.popups)
}

// Active reports whether popups are on screen.
func (c *Controller) Active() bool {
	return c.mounted && !c.disabled && !c.HasSeen()
}

// Gating reports whether the page underneath must ignore input.
func (c *Controller) Gating() bool {
	return c.Active()
}

// ScrimOpacity fades from MaxScrim toward zero as popups are dismissed.
func (c *Controller) ScrimOpacity() float64 {
	if !c.Active() || len(c.popups) == 0 {
		return 0
	}
	remaining := len(c.popups) - c.dismissed
	return c.maxScrim * float64(remaining) / float64(len(c.popups))
}

// Focused returns the popup that enter/space act on, or -1 when none remain.
func (c *Controller) Focused() int {
	if c.dismissed == len(c.popups) {
		return -1
	}
	return c.focus
}

// FocusNext moves focus to the next undismissed popup.
func (c *Controller) FocusNext() {
	c.moveFocus(1)
}

// FocusPrev moves focus to the previous undismissed popup.
func (c *Controller) FocusPrev() {
	c.moveFocus(-1)
}

func (c *Controller) moveFocus(delta int) {
	n := len(c.popups)
	if n == 0 || c.dismissed == n {
		return
	}
	idx := c.focus
	for i := 0; i < n; i++ {
		idx = ((idx+delta)%n + n) % n
		if !c.popups[idx].Dismissed {
			c.focus = idx
			return
		}
	}
}

// Placement returns the top-left cell for popup index drawn as a boxW×boxH
// box on a width×height screen.
func (c *Controller) Placement(index, width, height, boxW, boxH int) (x, y int, ok bool) {
	if index < 0 || index >= len(c.popups) {
		return 0, 0, false
	}
	x, y = Place(c.popups[index].Position, width, height, boxW, boxH)
	return x, y, true
}
