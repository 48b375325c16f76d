package scroll

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const (
	animationFPS    = 60
	maxAnimFrames   = 120
	settleThreshold = 0.5
)

// FrameMsg advances a running scroll animation by one frame.
type FrameMsg struct {
	Owner uint64
	Seq   uint64
}

// Animator eases a scroll offset toward a target with a critically damped
// spring.
type Animator struct {
	owner  uint64
	timer  TimerFunc
	spring harmonica.Spring
	frame  time.Duration

	pos       float64
	velocity  float64
	target    float64
	frames    int
	seq       uint64
	animating bool
}

// NewAnimator returns an idle animator whose frames are tagged with owner.
func NewAnimator(owner uint64, timer TimerFunc) *Animator {
	if timer == nil {
		timer = TeaTimer
	}
	return &Animator{
		owner:  owner,
		timer:  timer,
		spring: harmonica.NewSpring(harmonica.FPS(animationFPS), 9.0, 1.0),
		frame:  time.Second / animationFPS,
	}
}

// Start begins easing from one offset to another, replacing any animation in
// flight. It returns nil when there is nowhere to go.
func (a *Animator) Start(from, to int) tea.Cmd {
	a.seq++
	if from == to {
		a.animating = false
		return nil
	}
	a.pos = float64(from)
	a.velocity = 0
	a.target = float64(to)
	a.frames = 0
	a.animating = true
	return a.next()
}

// Step consumes a frame. ok is false for frames from an interrupted or
// replaced animation; otherwise offset is the position to show and next is
// the following frame, nil once the target is reached.
func (a *Animator) Step(msg FrameMsg) (offset int, next tea.Cmd, ok bool) {
	if !a.animating || msg.Owner != a.owner || msg.Seq != a.seq {
		return 0, nil, false
	}
	a.pos, a.velocity = a.spring.Update(a.pos, a.velocity, a.target)
	a.frames++
	arrived := math.Abs(a.pos-a.target) < settleThreshold && math.Abs(a.velocity) < settleThreshold
	if arrived || a.frames >= maxAnimFrames {
		a.pos = a.target
		a.velocity = 0
		a.animating = false
		return int(a.target), nil, true
	}
	return int(math.Round(a.pos)), a.next(), true
}

// Interrupt abandons the current animation, leaving the offset where it is.
func (a *Animator) Interrupt() {
	if !a.animating {
		return
	}
	a.seq++
	a.animating = false
}

// Animating reports whether an animation is in flight.
func (a *Animator) Animating() bool {
	return a.animating
}

// Target returns the goal of the current or most recent animation.
func (a *Animator) Target() int {
	return int(a.target)
}

func (a *Animator) next() tea.Cmd {
	return a.timer(a.frame, FrameMsg{Owner: a.owner, Seq: a.seq})
}
