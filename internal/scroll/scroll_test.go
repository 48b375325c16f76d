package scroll

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeometry lays sections out back to back from offset start.
type fakeGeometry struct {
	ready     bool
	scrollTop int
	client    int
	start     int
	heights   []int
	missing   map[int]bool
}

func uniform(n, height, client int) *fakeGeometry {
	heights := make([]int, n)
	for i := range heights {
		heights[i] = height
	}
	return &fakeGeometry{ready: true, client: client, heights: heights}
}

func (g *fakeGeometry) Ready() bool       { return g.ready }
func (g *fakeGeometry) ScrollTop() int    { return g.scrollTop }
func (g *fakeGeometry) ClientHeight() int { return g.client }
func (g *fakeGeometry) SectionCount() int { return len(g.heights) }
func (g *fakeGeometry) ScrollHeight() int {
	total := g.start
	for _, h := range g.heights {
		total += h
	}
	return total
}

func (g *fakeGeometry) top(index int) int {
	top := g.start
	for i := 0; i < index; i++ {
		top += g.heights[i]
	}
	return top
}

func (g *fakeGeometry) Section(index int) (Rect, bool) {
	if index < 0 || index >= len(g.heights) || g.missing[index] {
		return Rect{}, false
	}
	return Rect{Top: g.top(index) - g.scrollTop, Height: g.heights[index]}, true
}

// immediate delivers timer messages without waiting.
func immediate(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func TestActiveIndexScenario(t *testing.T) {
	t.Parallel()

	geom := uniform(6, 200, 600)
	geom.scrollTop = 500
	require.Equal(t, 4, ActiveIndex(geom, 0))
}

func TestActiveIndexMidpointContainment(t *testing.T) {
	t.Parallel()

	geom := &fakeGeometry{ready: true, client: 37, start: 11, heights: []int{5, 40, 19, 3, 64, 22}}
	for offset := 0; offset <= geom.ScrollHeight(); offset++ {
		geom.scrollTop = offset
		middle := offset + geom.client/2
		got := ActiveIndex(geom, -1)
		if got == -1 {
			for i := range geom.heights {
				top := geom.top(i)
				require.False(t, top <= middle && middle < top+geom.heights[i], "offset %d: section %d contains midpoint", offset, i)
			}
			continue
		}
		top := geom.top(got)
		require.LessOrEqual(t, top, middle, "offset %d", offset)
		require.Less(t, middle, top+geom.heights[got], "offset %d", offset)
	}
}

func TestActiveIndexRetainsPreviousWithoutMatch(t *testing.T) {
	t.Parallel()

	geom := uniform(3, 10, 20)
	geom.scrollTop = 40 // midpoint 50, past the last section
	assert.Equal(t, 2, ActiveIndex(geom, 2))
	assert.Equal(t, 1, ActiveIndex(geom, 1))

	geom.ready = false
	geom.scrollTop = 0
	assert.Equal(t, 1, ActiveIndex(geom, 1), "unmeasured layout keeps previous index")
	assert.Equal(t, 1, ActiveIndex(nil, 1))
}

func TestActiveIndexSkipsUnmeasuredSections(t *testing.T) {
	t.Parallel()

	geom := uniform(3, 10, 10)
	geom.scrollTop = 10
	geom.missing = map[int]bool{1: true}
	assert.Equal(t, 0, ActiveIndex(geom, 0))
}

func TestDebounceCollapsesBurst(t *testing.T) {
	t.Parallel()

	geom := uniform(6, 200, 600)
	tracker := NewTracker(7, 0, immediate)
	tracker.Mount()

	var msgs []tea.Msg
	for _, offset := range []int{100, 300, 500, 650, 700} {
		geom.scrollTop = offset
		msgs = append(msgs, tracker.OnScroll()())
	}
	changed := 0
	for _, msg := range msgs {
		if tracker.Settle(msg.(SettleMsg), geom) {
			changed++
		}
	}
	require.Equal(t, 1, tracker.Recomputations())
	require.Equal(t, 1, changed)
	require.Equal(t, 5, tracker.Active(), "reflects only the final offset 700 (midpoint 1000)")
}

func TestDebouncerIgnoresForeignAndCancelled(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(1, 0, immediate)
	require.Equal(t, DefaultWindow, d.Window())

	msg := d.Schedule()().(SettleMsg)
	require.True(t, d.Pending())
	require.False(t, d.Settled(SettleMsg{Owner: 2, Seq: msg.Seq}))

	d.Cancel()
	require.False(t, d.Pending())
	require.False(t, d.Settled(msg))

	msg = d.Schedule()().(SettleMsg)
	require.True(t, d.Settled(msg))
	require.False(t, d.Settled(msg), "a window closes once")
}

func TestTrackerIgnoresEventsWhileUnmounted(t *testing.T) {
	t.Parallel()

	geom := uniform(6, 200, 600)
	geom.scrollTop = 500
	tracker := NewTracker(1, 0, immediate)
	require.Nil(t, tracker.OnScroll())
	require.False(t, tracker.Recompute(geom))
	require.Equal(t, 0, tracker.Active())

	tracker.Mount()
	msg := tracker.OnScroll()().(SettleMsg)
	tracker.Unmount()
	require.False(t, tracker.Settle(msg, geom), "settle after teardown is dropped")
	require.Equal(t, 0, tracker.Active())
}

func TestTrackerClampsWhenSectionsShrink(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(1, 0, immediate)
	tracker.Mount()
	tracker.SetActive(5)
	tracker.SetActive(-3)
	require.Equal(t, 5, tracker.Active())

	geom := uniform(2, 10, 10)
	geom.scrollTop = 100 // nothing contains the midpoint
	tracker.Recompute(geom)
	require.Equal(t, 1, tracker.Active())
}

func TestTrackerStaleAfterLayoutChange(t *testing.T) {
	t.Parallel()

	geom := uniform(4, 20, 20)
	geom.scrollTop = 40
	tracker := NewTracker(1, 0, immediate)
	tracker.Mount()
	tracker.Recompute(geom)
	require.Equal(t, 2, tracker.Active())

	// Content shrinks so the midpoint now lies past every section: the
	// previous index is kept rather than reset.
	geom.heights = []int{30, 5, 5, 5}
	tracker.Recompute(geom)
	require.Equal(t, 2, tracker.Active())

	// Once the viewport reaches a section again the tracker recovers.
	geom.scrollTop = 0
	tracker.Recompute(geom)
	require.Equal(t, 0, tracker.Active())
}

func TestTargetHandlesRangeAndReadiness(t *testing.T) {
	t.Parallel()

	geom := uniform(6, 200, 600)
	geom.scrollTop = 321
	target, ok := Target(3, geom)
	require.True(t, ok)
	require.Equal(t, 600, target, "independent of current scroll offset")

	_, ok = Target(6, geom)
	require.False(t, ok)
	_, ok = Target(-1, geom)
	require.False(t, ok)

	target, ok = Target(5, geom)
	require.True(t, ok)
	require.Equal(t, 600, target, "clamped to scrollHeight - clientHeight")

	geom.ready = false
	_, ok = Target(1, geom)
	require.False(t, ok)
}

func runAnimation(t *testing.T, a *Animator, geom *fakeGeometry, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd().(FrameMsg)
		offset, next, ok := a.Step(msg)
		require.True(t, ok)
		geom.scrollTop = offset
		cmd = next
	}
}

func TestNavigatorMarksActiveImmediately(t *testing.T) {
	t.Parallel()

	geom := uniform(6, 200, 600)
	geom.scrollTop = 900
	tracker := NewTracker(1, 0, immediate)
	tracker.Mount()
	animator := NewAnimator(1, immediate)
	nav := NewNavigator(tracker, animator)

	target, cmd, ok := nav.ScrollTo(2, geom)
	require.True(t, ok)
	require.Equal(t, 400, target)
	require.Equal(t, 2, tracker.Active(), "active before the animation finishes")
	require.True(t, animator.Animating())

	runAnimation(t, animator, geom, cmd)
	require.Equal(t, 400, geom.scrollTop)
	require.False(t, animator.Animating())
}

func TestNavigatorIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	geom := uniform(3, 200, 600)
	tracker := NewTracker(1, 0, immediate)
	tracker.Mount()
	tracker.SetActive(1)
	nav := NewNavigator(tracker, NewAnimator(1, immediate))

	_, cmd, ok := nav.ScrollTo(9, geom)
	require.False(t, ok)
	require.Nil(t, cmd)
	require.Equal(t, 1, tracker.Active())
}

func TestNavigatorIdempotent(t *testing.T) {
	t.Parallel()

	once := uniform(6, 200, 600)
	twice := uniform(6, 200, 600)

	run := func(geom *fakeGeometry, calls int) int {
		tracker := NewTracker(1, 0, immediate)
		tracker.Mount()
		animator := NewAnimator(1, immediate)
		nav := NewNavigator(tracker, animator)
		var cmd tea.Cmd
		for i := 0; i < calls; i++ {
			_, cmd, _ = nav.ScrollTo(3, geom)
		}
		runAnimation(t, animator, geom, cmd)
		return tracker.Active()
	}

	require.Equal(t, run(once, 1), run(twice, 2))
	require.Equal(t, once.scrollTop, twice.scrollTop)
}

func TestNavigatorConvergesWithTrackerOnPaddedLayout(t *testing.T) {
	t.Parallel()

	heights := []int{3, 25, 1, 8, 14, 2}
	client := 20
	extra, trailing := Pad(heights, client)
	padded := make([]int, len(heights))
	for i := range heights {
		padded[i] = heights[i] + extra[i]
	}
	padded[len(padded)-1] += trailing

	for index := range heights {
		geom := &fakeGeometry{ready: true, client: client, start: 4, heights: append([]int(nil), padded...)}
		tracker := NewTracker(1, 0, immediate)
		tracker.Mount()
		animator := NewAnimator(1, immediate)
		nav := NewNavigator(tracker, animator)

		_, cmd, ok := nav.ScrollTo(index, geom)
		require.True(t, ok)
		runAnimation(t, animator, geom, cmd)
		settle := tracker.OnScroll()().(SettleMsg)
		tracker.Settle(settle, geom)
		require.Equal(t, index, tracker.Active(), "section %d", index)
	}
}

func TestAnimatorInterruptDropsFrames(t *testing.T) {
	t.Parallel()

	a := NewAnimator(3, immediate)
	require.Nil(t, a.Start(10, 10))

	cmd := a.Start(0, 300)
	msg := cmd().(FrameMsg)
	a.Interrupt()
	require.False(t, a.Animating())
	_, _, ok := a.Step(msg)
	require.False(t, ok)

	cmd = a.Start(0, 50)
	stale := msg
	_, _, ok = a.Step(stale)
	require.False(t, ok, "frames from a replaced animation are ignored")
	_, _, ok = a.Step(FrameMsg{Owner: 4, Seq: cmd().(FrameMsg).Seq})
	require.False(t, ok)
	require.Equal(t, 50, a.Target())
}

func TestPadGuaranteesMinimumHeights(t *testing.T) {
	t.Parallel()

	extra, trailing := Pad([]int{2, 30, 9}, 20)
	require.Equal(t, []int{9, 0, 2}, extra)
	require.Equal(t, 9, trailing)

	extra, trailing = Pad(nil, 20)
	require.Empty(t, extra)
	require.Zero(t, trailing)
}
