package game

import (
	"image/color"
	"math"
)

// ReactionOptions configures a floating text callout.
type ReactionOptions struct {
	Position Point
	Text     string
	Color    color.RGBA
	Font     FontSpec
	Speed    float64
	MinAlpha float64
}

// Reaction is text that rises from its origin and fades as it goes.
type Reaction struct {
	pos      Point
	originY  float64
	text     string
	color    color.RGBA
	font     FontSpec
	speed    float64
	alpha    float64
	minAlpha float64
}

// NewReaction creates a fully opaque reaction at its origin.
func NewReaction(opts ReactionOptions) *Reaction {
	return &Reaction{
		pos:      opts.Position,
		originY:  opts.Position.Y,
		text:     opts.Text,
		color:    opts.Color,
		font:     opts.Font,
		speed:    opts.Speed,
		alpha:    1,
		minAlpha: opts.MinAlpha,
	}
}

// Advance rises by speed and recomputes alpha from the remaining height.
func (r *Reaction) Advance(Frame) {
	r.pos.Y -= r.speed
	if r.originY <= 0 {
		r.alpha = r.minAlpha
		return
	}
	r.alpha = r.pos.Y/r.originY + r.minAlpha
}

// Draw renders the text with the current alpha.
func (r *Reaction) Draw(s Surface) {
	if r.text == "" {
		return
	}
	a := Clamp(r.alpha, 0, 1)
	c := color.NRGBA{R: r.color.R, G: r.color.G, B: r.color.B, A: uint8(math.Round(a * 255))}
	s.DrawText(r.text, r.font, r.pos, c)
}

// Expired reports whether the reaction has left the top of the screen.
func (r *Reaction) Expired() bool {
	return r.pos.Y <= 0
}

func (r *Reaction) Position() Point { return r.pos }
func (r *Reaction) Text() string    { return r.text }
func (r *Reaction) Alpha() float64  { return r.alpha }
func (r *Reaction) Speed() float64  { return r.speed }
func (r *Reaction) Font() FontSpec  { return r.font }
