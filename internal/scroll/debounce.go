package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWindow is the quiet period after the last scroll event before the
// active section is recomputed.
const DefaultWindow = 50 * time.Millisecond

// TimerFunc delivers msg after d. Production code uses TeaTimer; tests pass a
// function that returns the message immediately.
type TimerFunc func(d time.Duration, msg tea.Msg) tea.Cmd

// TeaTimer schedules msg with tea.Tick.
func TeaTimer(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// SettleMsg fires when a debounce window elapses.
type SettleMsg struct {
	Owner uint64
	Seq   uint64
}

// Debouncer collapses a burst of events into one trailing call. Every
// Schedule supersedes the ones before it; only the newest SettleMsg is
// accepted.
type Debouncer struct {
	owner   uint64
	window  time.Duration
	timer   TimerFunc
	seq     uint64
	pending bool
}

// NewDebouncer returns a debouncer whose messages are tagged with owner.
func NewDebouncer(owner uint64, window time.Duration, timer TimerFunc) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	if timer == nil {
		timer = TeaTimer
	}
	return &Debouncer{owner: owner, window: window, timer: timer}
}

// Schedule restarts the quiet window.
func (d *Debouncer) Schedule() tea.Cmd {
	d.seq++
	d.pending = true
	return d.timer(d.window, SettleMsg{Owner: d.owner, Seq: d.seq})
}

// Settled consumes msg and reports whether it closes the current window.
func (d *Debouncer) Settled(msg SettleMsg) bool {
	if msg.Owner != d.owner || !d.pending || msg.Seq != d.seq {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops any pending window.
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

// Pending reports whether a window is open.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Window returns the configured quiet period.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
