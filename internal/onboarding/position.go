package onboarding

import "math/rand/v2"

// Popups are centred somewhere in the middle band of the screen so they
// never touch an edge.
const (
	MinPercent = 20.0
	MaxPercent = 80.0
)

// Position is a popup's centre as percentages of the viewport.
type Position struct {
	Top  float64
	Left float64
}

// NewRand returns a deterministic source for seed, or a random one for 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomPosition draws both coordinates independently from [20, 80).
func RandomPosition(rng *rand.Rand) Position {
	span := MaxPercent - MinPercent
	return Position{
		Top:  MinPercent + rng.Float64()*span,
		Left: MinPercent + rng.Float64()*span,
	}
}

// Positioner hands out one random position per key and remembers it, so
// re-rendering never moves a popup.
type Positioner struct {
	rng   *rand.Rand
	cache map[string]Position
}

// NewPositioner draws from rng.
func NewPositioner(rng *rand.Rand) *Positioner {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Positioner{rng: rng, cache: map[string]Position{}}
}

// At returns the position for key, drawing it on first use.
func (p *Positioner) At(key string) Position {
	if pos, ok := p.cache[key]; ok {
		return pos
	}
	pos := RandomPosition(p.rng)
	p.cache[key] = pos
	return pos
}

// Place converts pos into the top-left cell of a boxW×boxH box centred on it,
// clamped so the box stays on a width×height screen.
func Place(pos Position, width, height, boxW, boxH int) (x, y int) {
	x = int(pos.Left/100*float64(width)) - boxW/2
	y = int(pos.Top/100*float64(height)) - boxH/2
	return clamp(x, 0, width-boxW), clamp(y, 0, height-boxH)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
