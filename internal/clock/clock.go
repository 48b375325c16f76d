// Package clock supplies wall-clock time to the theme engine and lets tests
// substitute a controllable source.
package clock

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is how often the program samples the clock.
const DefaultInterval = time.Second

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

// Now returns time.Now.
func (Real) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock parked at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the parked time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// TickMsg carries one clock sample into the program.
type TickMsg struct {
	Time time.Time
}

// Every schedules a single TickMsg after interval. The receiver re-arms it.
func Every(interval time.Duration, c Clock) tea.Cmd {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if c == nil {
		c = Real{}
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Time: c.Now()}
	})
}
