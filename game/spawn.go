package game

import "math/rand"

// DefaultMaxAttempts bounds the rejection sampling in PickAwayFrom and PickAwayFromAll.
const DefaultMaxAttempts = 10

// Placer picks random spawn positions inside screen bounds.
//
// Placement is best-effort: when the screen is crowded the Pick functions
// report ok=false and callers skip spawning for that tick.
type Placer struct {
	rng         *rand.Rand
	MaxAttempts int
}

// NewPlacer creates a placer drawing from rng.
func NewPlacer(rng *rand.Rand) *Placer {
	return &Placer{rng: rng, MaxAttempts: DefaultMaxAttempts}
}

// PickLocation returns a uniformly random point inside bounds.
func (p *Placer) PickLocation(bounds Bounds) Point {
	return Point{
		X: randomBetween(p.rng, bounds.Left, bounds.Right),
		Y: randomBetween(p.rng, bounds.Top, bounds.Bottom),
	}
}

// PickAwayFrom samples locations until one is at least minDistance from point.
func (p *Placer) PickAwayFrom(bounds Bounds, point Point, minDistance float64) (Point, bool) {
	for attempt := 0; attempt < p.attempts(); attempt++ {
		location := p.PickLocation(bounds)
		if Distance(location, point) >= minDistance {
			return location, true
		}
	}
	return Point{}, false
}

// PickAwayFromAll returns a location at least minDistance from every point in
// existing. Candidates are sampled away from the first point only and then
// checked against the whole list.
func (p *Placer) PickAwayFromAll(bounds Bounds, existing []Point, minDistance float64) (Point, bool) {
	if len(existing) == 0 {
		return p.PickLocation(bounds), true
	}

	for attempt := 0; attempt < p.attempts(); attempt++ {
		location, ok := p.PickAwayFrom(bounds, existing[0], minDistance)
		if !ok {
			continue
		}
		if !hasCloseNeighbor(location, existing, minDistance) {
			return location, true
		}
	}
	return Point{}, false
}

func (p *Placer) attempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func hasCloseNeighbor(location Point, points []Point, minDistance float64) bool {
	for _, point := range points {
		if Distance(location, point) < minDistance {
			return true
		}
	}
	return false
}

func randomBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
