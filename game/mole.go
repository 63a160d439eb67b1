package game

import (
	"math"
	"math/rand"
)

// Mood is a mole's escalation state. It only moves forward.
type Mood int

const (
	MoodHappy Mood = iota
	MoodAngry
	MoodDone
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodAngry:
		return "angry"
	case MoodDone:
		return "done"
	}
	return "unknown"
}

const (
	angryAfterHits = 1
	doneAfterHits  = 5
)

// MoleOptions configures a new mole.
type MoleOptions struct {
	Position   Point // top-left corner
	Width      float64
	Height     float64
	Image      Image
	AngryImage Image
	Aggression float64
	Speed      float64
	Bounds     Bounds

	RecoilShrink float64
	AngryLunge   float64
	GrowInStep   float64
	SpawnShrink  float64

	Rand *rand.Rand
}

// Mole is a target that pops out of the ground, bounces around while happy and
// charges the screen once it has been whacked twice.
type Mole struct {
	pos            Point
	width, height  float64
	originalHeight float64

	image      Image
	angryImage Image

	mood       Mood
	hitCount   uint
	aggression float64
	speed      float64
	bounds     Bounds

	bounceX, bounceY float64
	chargeX          float64

	recoil, lunge, growStep float64
}

// NewMole creates a mole at the start of its grow-in animation.
func NewMole(opts MoleOptions) *Mole {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	shrink := opts.SpawnShrink
	if shrink <= 0 || shrink > 1 {
		shrink = 0.1
	}
	growStep := opts.GrowInStep
	if growStep <= 0 {
		growStep = 1
	}

	return &Mole{
		pos:            opts.Position,
		originalHeight: opts.Height,
		width:          opts.Width * shrink,
		height:         opts.Height * shrink,
		image:          opts.Image,
		angryImage:     opts.AngryImage,
		aggression:     opts.Aggression,
		speed:          opts.Speed,
		bounds:         opts.Bounds,
		bounceX:        rng.Float64()*15 + 15,
		bounceY:        rng.Float64()*5 + 5,
		chargeX:        rng.Float64()*2.5 + 2.5,
		recoil:         opts.RecoilShrink,
		lunge:          opts.AngryLunge,
		growStep:       growStep,
	}
}

// Whack hit-tests at against the current bounding box and escalates the mood
// on a hit. Done moles ignore whacks.
func (m *Mole) Whack(at Point) bool {
	if m.mood == MoodDone {
		return false
	}
	if !PointInBox(at.X, at.Y, m.Box()) {
		return false
	}

	m.hitCount++
	m.resize(-m.recoil)

	if m.hitCount > angryAfterHits && m.mood == MoodHappy {
		m.mood = MoodAngry
		m.resize(-m.lunge)
		if m.angryImage != nil {
			m.image = m.angryImage
		}
	}
	if m.hitCount > doneAfterHits {
		m.mood = MoodDone
	}
	return true
}

// Advance moves the mole one tick.
func (m *Mole) Advance(frame Frame) {
	count := float64(frame.Count)

	var dx, dy float64
	if m.mood == MoodAngry {
		m.resize(m.aggression)
		dx = math.Cos(count/m.chargeX) / 5
		dy = math.Cos(count/5) / 20
	} else {
		dx = math.Cos(count/m.bounceX) / 20
		dy = math.Cos(count/m.bounceY) / 20
	}
	m.move(dx, dy, frame.MotionScale)

	// grow back out of the ground
	if m.height < m.originalHeight {
		m.pos.Y -= m.growStep
		m.height += m.growStep
		m.width += m.growStep
	}
}

// Draw renders the mole's current image into its box.
func (m *Mole) Draw(s Surface) {
	if m.image == nil {
		return
	}
	s.DrawImage(m.image, m.Box())
}

func (m *Mole) move(dx, dy, scale float64) {
	m.pos.X = Clamp(m.pos.X+dx*m.speed*scale, m.bounds.Left, m.bounds.Right)
	m.pos.Y = Clamp(m.pos.Y+dy*m.speed*scale, m.bounds.Top, m.bounds.Bottom)
}

func (m *Mole) resize(d float64) {
	m.width = math.Max(m.width+d, 1)
	m.height = math.Max(m.height+d, 1)
}

// Box returns the current bounding box.
func (m *Mole) Box() Box {
	return Box{
		Top:    m.pos.Y,
		Bottom: m.pos.Y + m.height,
		Left:   m.pos.X,
		Right:  m.pos.X + m.width,
	}
}

func (m *Mole) Position() Point         { return m.pos }
func (m *Mole) Width() float64          { return m.width }
func (m *Mole) Height() float64         { return m.height }
func (m *Mole) OriginalHeight() float64 { return m.originalHeight }
func (m *Mole) Mood() Mood              { return m.mood }
func (m *Mole) HitCount() uint          { return m.hitCount }
func (m *Mole) Image() Image            { return m.image }
