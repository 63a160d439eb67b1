package game

import "image/color"

// Bounds describes the playable screen.
type Bounds struct {
	Top, Bottom, Left, Right float64
	CenterX, CenterY         float64
	// Scale normalizes sizes and motion across screen sizes. Always > 0.
	Scale float64
}

// NewBounds computes screen bounds for a width x height surface.
func NewBounds(width, height int, scaleFactor float64) Bounds {
	w := float64(max(width, 1))
	h := float64(max(height, 1))
	if scaleFactor <= 0 {
		scaleFactor = 0.003
	}
	return Bounds{
		Top:     0,
		Bottom:  h,
		Left:    0,
		Right:   w,
		CenterX: w / 2,
		CenterY: h / 2,
		Scale:   ((w + h) / 2) * scaleFactor,
	}
}

// Width returns the screen width.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the screen height.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Area is a sub-rectangle of the screen given as fractions (0..1) of its size.
type Area struct {
	X, Y, Width, Height float64
}

// FullArea covers the whole screen.
var FullArea = Area{X: 0, Y: 0, Width: 1, Height: 1}

// Within maps the fractional area onto b. An empty area maps to b itself.
func (a Area) Within(b Bounds) Bounds {
	if a.Width <= 0 || a.Height <= 0 {
		return b
	}
	sub := b
	sub.Left = b.Left + a.X*b.Width()
	sub.Top = b.Top + a.Y*b.Height()
	sub.Right = sub.Left + a.Width*b.Width()
	sub.Bottom = sub.Top + a.Height*b.Height()
	sub.CenterX = (sub.Left + sub.Right) / 2
	sub.CenterY = (sub.Top + sub.Bottom) / 2
	return sub
}

// State is the mutable top-level game record.
type State struct {
	Score  uint
	Lives  int
	Paused bool
	Muted  bool
}

// Settings contains the customizable game settings.
type Settings struct {
	Name            string
	Lives           int
	MaxTargets      int
	AggressionLevel float64

	StartText    string
	GameOverText string
	PauseText    string

	InstructionsDesktop string
	InstructionsMobile  string

	// Font family used for reaction callouts
	FontFamily string

	// Exclamations shown above a mole when it is whacked
	Reactions []string

	// Named key codes
	PauseCode string
	MuteCode  string
}

// Palette contains the game colors.
type Palette struct {
	Primary  color.RGBA
	Text     color.RGBA
	Point    color.RGBA
	Reaction color.RGBA
	Extra    color.RGBA
}

// ReactionStyle configures one kind of floating text callout.
type ReactionStyle struct {
	SpeedMin    float64
	SpeedMax    float64
	FontSizeMin float64
	FontSizeMax float64
	MinAlpha    float64
}

// Tuning contains gameplay constants. Intervals are in ticks.
type Tuning struct {
	SpawnInterval  int
	AttackInterval int

	MoleBaseWidth  float64
	MoleBaseHeight float64
	MoleSpeed      float64

	RecoilShrink float64
	AngryLunge   float64
	GrowInStep   float64
	SpawnShrink  float64

	ScreenScaleFactor float64
	MotionConstant    float64

	SpawnDistanceFactor float64
	PlacementAttempts   int

	BaseScore  uint
	ExtraEvery uint
	ExtraBand  uint

	MoleReaction  ReactionStyle
	ScoreReaction ReactionStyle
	ExtraReaction ReactionStyle
}
