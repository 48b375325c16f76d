package scroll

import tea "github.com/charmbracelet/bubbletea"

// Navigator performs sidebar jumps: it marks the target section active right
// away and animates the container to the section's top.
type Navigator struct {
	tracker  *Tracker
	animator *Animator
}

// NewNavigator ties a navigator to the page's tracker and animator.
func NewNavigator(tracker *Tracker, animator *Animator) *Navigator {
	return &Navigator{tracker: tracker, animator: animator}
}

// ScrollTo starts a jump to section index. ok is false, and nothing changes,
// when the index is out of range or the section has not been measured.
func (n *Navigator) ScrollTo(index int, geom Geometry) (target int, cmd tea.Cmd, ok bool) {
	target, ok = Target(index, geom)
	if !ok {
		return 0, nil, false
	}
	n.tracker.SetActive(index)
	return target, n.animator.Start(geom.ScrollTop(), target), true
}
