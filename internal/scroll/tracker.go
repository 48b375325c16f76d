package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tracker owns a page's active section index. It does nothing until Mount
// and drops scroll events and stale settle messages after Unmount.
type Tracker struct {
	debounce   *Debouncer
	active     int
	mounted    bool
	recomputed int
}

// NewTracker returns an unmounted tracker with active index 0.
func NewTracker(owner uint64, window time.Duration, timer TimerFunc) *Tracker {
	return &Tracker{debounce: NewDebouncer(owner, window, timer)}
}

// Mount enables the tracker once the container can be measured.
func (t *Tracker) Mount() {
	t.mounted = true
}

// Unmount detaches the tracker and cancels any pending window.
func (t *Tracker) Unmount() {
	t.mounted = false
	t.debounce.Cancel()
}

// Mounted reports whether scroll events are being observed.
func (t *Tracker) Mounted() bool {
	return t.mounted
}

// Active returns the current section index.
func (t *Tracker) Active() int {
	return t.active
}

// SetActive records index as active. Negative values are ignored.
func (t *Tracker) SetActive(index int) {
	if index < 0 {
		return
	}
	t.active = index
}

// OnScroll notes a scroll event and returns the debounce timer command.
func (t *Tracker) OnScroll() tea.Cmd {
	if !t.mounted {
		return nil
	}
	return t.debounce.Schedule()
}

// Settle handles a debounce message. It returns true when the message closed
// the current window and the active index changed as a result.
func (t *Tracker) Settle(msg SettleMsg, geom Geometry) bool {
	if !t.mounted || !t.debounce.Settled(msg) {
		return false
	}
	return t.Recompute(geom)
}

// Recompute re-reads geometry immediately and reports whether the active
// index changed.
func (t *Tracker) Recompute(geom Geometry) bool {
	if !t.mounted || geom == nil || !geom.Ready() {
		return false
	}
	t.recomputed++
	prev := t.active
	if count := geom.SectionCount(); count > 0 && t.active >= count {
		t.active = count - 1
	}
	t.active = ActiveIndex(geom, t.active)
	return t.active != prev
}

// Recomputations counts how many times geometry was actually read.
func (t *Tracker) Recomputations() int {
	return t.recomputed
}
