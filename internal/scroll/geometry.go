// Package scroll keeps a page's sidebar in step with its scroll position:
// it decides which section sits under the middle of the visible region,
// debounces that decision, and animates programmatic jumps between sections.
package scroll

// Rect is a section's vertical extent measured relative to the visible top of
// the scroll container, the way a browser reports a bounding rect.
type Rect struct {
	Top    int
	Height int
}

// Geometry measures a scroll container and its sections. Implementations
// report Ready() == false until layout has happened.
type Geometry interface {
	Ready() bool
	ScrollTop() int
	ClientHeight() int
	ScrollHeight() int
	SectionCount() int
	Section(index int) (Rect, bool)
}

// ActiveIndex returns the first section whose span contains the midpoint of
// the visible region. When nothing matches, or the geometry is not measurable
// yet, prev is returned unchanged.
func ActiveIndex(geom Geometry, prev int) int {
	if geom == nil || !geom.Ready() {
		return prev
	}
	scrollTop := geom.ScrollTop()
	middle := scrollTop + geom.ClientHeight()/2
	for i := 0; i < geom.SectionCount(); i++ {
		rect, ok := geom.Section(i)
		if !ok {
			continue
		}
		top := rect.Top + scrollTop
		if top <= middle && middle < top+rect.Height {
			return i
		}
	}
	return prev
}

// Target returns the scroll offset that aligns section index with the top of
// the container, clamped to the scrollable range.
func Target(index int, geom Geometry) (int, bool) {
	if geom == nil || !geom.Ready() {
		return 0, false
	}
	if index < 0 || index >= geom.SectionCount() {
		return 0, false
	}
	rect, ok := geom.Section(index)
	if !ok {
		return 0, false
	}
	target := rect.Top + geom.ScrollTop()
	maxTop := geom.ScrollHeight() - geom.ClientHeight()
	if maxTop < 0 {
		maxTop = 0
	}
	if target > maxTop {
		target = maxTop
	}
	if target < 0 {
		target = 0
	}
	return target, true
}

// MinSectionHeight is the smallest section height for which a section scrolled
// to the top of the container also contains the container's midpoint.
func MinSectionHeight(clientHeight int) int {
	if clientHeight < 0 {
		clientHeight = 0
	}
	return clientHeight/2 + 1
}

// Pad returns how many blank lines to add after each section, plus the
// trailing padding that lets the last section reach the top of the container.
// With this padding a jump to any section settles on that same section.
func Pad(heights []int, clientHeight int) (extra []int, trailing int) {
	minHeight := MinSectionHeight(clientHeight)
	extra = make([]int, len(heights))
	for i, h := range heights {
		if h < minHeight {
			extra[i] = minHeight - h
		}
	}
	if n := len(heights); n > 0 {
		last := heights[n-1] + extra[n-1]
		if clientHeight > last {
			trailing = clientHeight - last
		}
	}
	return extra, trailing
}
