package theme

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/lockdam/internal/clock"
	"github.com/csheth/lockdam/internal/logger"
)

// Options configures an Engine.
type Options struct {
	Interval time.Duration
	Mode     Mode
	Logger   *logger.Logger
}

// Engine holds the process-wide theme state. It is only touched from the
// Bubble Tea update loop, so it carries no locks.
type Engine struct {
	clock    clock.Clock
	interval time.Duration
	log      *logger.Logger

	mode     Mode
	now      time.Time
	resolved Theme
	label    string
	closed   bool
}

// NewEngine samples c once and resolves the starting palette.
func NewEngine(c clock.Clock, opts Options) *Engine {
	if c == nil {
		c = clock.Real{}
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = clock.DefaultInterval
	}
	mode := opts.Mode
	if mode == nil {
		mode = Auto()
	}
	e := &Engine{
		clock:    c,
		interval: interval,
		log:      opts.Logger,
		mode:     mode,
	}
	e.apply(c.Now())
	return e
}

// Tick advances the engine to now. Manual mode keeps its palette; the label
// keeps following the clock either way. Ticks after Close are ignored.
func (e *Engine) Tick(now time.Time) {
	if e == nil || e.closed {
		return
	}
	e.apply(now)
}

// TickCmd arms the next clock sample, or returns nil once closed.
func (e *Engine) TickCmd() tea.Cmd {
	if e == nil || e.closed {
		return nil
	}
	return clock.Every(e.interval, e.clock)
}

// Resolved returns the palette currently in effect.
func (e *Engine) Resolved() Theme {
	if e == nil {
		return Dark
	}
	return e.resolved
}

// TimeOfDay returns the label for the current time ("dawn", "night", …).
func (e *Engine) TimeOfDay() string {
	if e == nil {
		return ""
	}
	return e.label
}

// CurrentTime returns the last clock sample.
func (e *Engine) CurrentTime() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.now
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode {
	if e == nil {
		return Auto()
	}
	return e.mode
}

// IsManual reports whether a user selection overrides the clock.
func (e *Engine) IsManual() bool {
	_, manual := ManualTheme(e.Mode())
	return manual
}

// SetManualOverride pins the palette to *t, or returns to clock-driven
// resolution when t is nil.
func (e *Engine) SetManualOverride(t *Theme) {
	if e == nil {
		return
	}
	if t == nil {
		e.setMode(Auto())
		return
	}
	e.setMode(Manual(*t))
}

// Cycle steps the toggle control: auto → dark → time → light → auto.
func (e *Engine) Cycle() Mode {
	if e == nil {
		return Auto()
	}
	current, manual := ManualTheme(e.mode)
	switch {
	case !manual:
		e.setMode(Manual(Dark))
	case current == Light:
		e.setMode(Auto())
	default:
		e.setMode(Manual(current + 1))
	}
	return e.mode
}

// Close ends the engine's lifecycle; further ticks have no effect.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.closed = true
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	return e == nil || e.closed
}

func (e *Engine) setMode(m Mode) {
	e.mode = m
	e.log.WithFields(map[string]any{"mode": m.String()}).Debug("theme mode changed")
	e.apply(e.now)
}

func (e *Engine) apply(now time.Time) {
	e.now = now
	resolution := Resolve(now)
	e.label = resolution.Label
	next := resolution.Theme
	if pinned, manual := ManualTheme(e.mode); manual {
		next = pinned
	}
	if next != e.resolved {
		e.log.WithFields(map[string]any{"from": e.resolved.String(), "to": next.String()}).Debug("theme resolved")
	}
	e.resolved = next
}
