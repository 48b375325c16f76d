package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/lockdam/internal/scroll"
	"github.com/csheth/lockdam/internal/theme"
)

// readingPage is one mounted instance of a scrollable page. Every visit gets
// a fresh instance with its own id, so timers left over from an earlier visit
// are recognised and dropped.
type readingPage struct {
	id       uint64
	route    Route
	viewport viewport.Model
	tracker  *scroll.Tracker
	animator *scroll.Animator
	nav      *scroll.Navigator

	lines   []string
	spans   []sectionSpan
	laidOut bool
	theme   theme.Theme

	// shelf holds the Literature Review spine heights, drawn once.
	shelf []int
}

func newReadingPage(id uint64, route Route, debounce time.Duration, timer scroll.TimerFunc, shelf []int) *readingPage {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	tracker := scroll.NewTracker(id, debounce, timer)
	animator := scroll.NewAnimator(id, timer)
	return &readingPage{
		id:       id,
		route:    route,
		viewport: vp,
		tracker:  tracker,
		animator: animator,
		nav:      scroll.NewNavigator(tracker, animator),
		shelf:    shelf,
	}
}

// setBody installs freshly laid out content, keeping the scroll offset where
// the new content allows.
func (p *readingPage) setBody(lines []string, spans []sectionSpan, width, height int, t theme.Theme) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.lines = lines
	p.spans = spans
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.SetYOffset(p.viewport.YOffset)
	p.laidOut = true
	p.theme = t
}

func (p *readingPage) Ready() bool {
	return p.laidOut && p.viewport.Height > 0
}

func (p *readingPage) ScrollTop() int {
	return p.viewport.YOffset
}

func (p *readingPage) ClientHeight() int {
	return p.viewport.Height
}

func (p *readingPage) ScrollHeight() int {
	return p.viewport.TotalLineCount()
}

func (p *readingPage) SectionCount() int {
	return len(p.spans)
}

func (p *readingPage) Section(index int) (scroll.Rect, bool) {
	if index < 0 || index >= len(p.spans) {
		return scroll.Rect{}, false
	}
	span := p.spans[index]
	return scroll.Rect{Top: span.start - p.viewport.YOffset, Height: span.height}, true
}

func (p *readingPage) maxOffset() int {
	limit := p.viewport.TotalLineCount() - p.viewport.Height
	if limit < 0 {
		return 0
	}
	return limit
}

// scrollTo moves to an absolute offset on the user's behalf: any jump in
// flight is abandoned and the move counts as a scroll event.
func (p *readingPage) scrollTo(offset int) tea.Cmd {
	p.animator.Interrupt()
	return p.setOffset(offset)
}

func (p *readingPage) scrollBy(delta int) tea.Cmd {
	return p.scrollTo(p.viewport.YOffset + delta)
}

func (p *readingPage) setOffset(offset int) tea.Cmd {
	if offset < 0 {
		offset = 0
	}
	if limit := p.maxOffset(); offset > limit {
		offset = limit
	}
	if offset == p.viewport.YOffset {
		return nil
	}
	p.viewport.SetYOffset(offset)
	return p.tracker.OnScroll()
}

// jump starts a sidebar navigation to section index.
func (p *readingPage) jump(index int) tea.Cmd {
	_, cmd, ok := p.nav.ScrollTo(index, p)
	if !ok {
		return nil
	}
	return cmd
}

// step applies one animation frame. Each frame that moves the view is a
// scroll event like any other.
func (p *readingPage) step(msg scroll.FrameMsg) tea.Cmd {
	offset, next, ok := p.animator.Step(msg)
	if !ok {
		return nil
	}
	return tea.Batch(p.setOffset(offset), next)
}

func (p *readingPage) settle(msg scroll.SettleMsg) bool {
	return p.tracker.Settle(msg, p)
}

// relaid schedules the debounced recompute that follows a layout change.
func (p *readingPage) relaid() tea.Cmd {
	if !p.tracker.Mounted() {
		p.tracker.Mount()
	}
	return p.tracker.OnScroll()
}

func (p *readingPage) teardown() {
	p.tracker.Unmount()
	p.animator.Interrupt()
}

// visible returns exactly ClientHeight lines starting at the scroll offset.
func (p *readingPage) visible() []string {
	out := make([]string, p.viewport.Height)
	start := p.viewport.YOffset
	for i := range out {
		if idx := start + i; idx >= 0 && idx < len(p.lines) {
			out[i] = p.lines[idx]
		}
	}
	return out
}
