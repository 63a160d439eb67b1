package game

import (
	"image/color"
	"testing"
)

func TestReactionFadesWhileRising(t *testing.T) {
	r := NewReaction(ReactionOptions{
		Position: Point{X: 50, Y: 300},
		Text:     "Ouch!",
		Color:    color.RGBA{R: 255, A: 255},
		Speed:    3,
	})

	prev := r.Alpha()
	for !r.Expired() {
		r.Advance(Frame{})
		if r.Alpha() >= prev {
			t.Fatalf("alpha must strictly decrease: %v -> %v", prev, r.Alpha())
		}
		prev = r.Alpha()
	}
	if r.Position().Y > 0 {
		t.Errorf("expired reaction still at y=%v", r.Position().Y)
	}
}

func TestReactionExpiry(t *testing.T) {
	r := NewReaction(ReactionOptions{Position: Point{X: 0, Y: 6}, Speed: 3})

	r.Advance(Frame{})
	if r.Expired() {
		t.Fatal("reaction at y=3 should still be alive")
	}
	r.Advance(Frame{})
	if !r.Expired() {
		t.Fatal("reaction at y=0 should be expired")
	}
}

func TestReactionMinAlpha(t *testing.T) {
	r := NewReaction(ReactionOptions{Position: Point{X: 0, Y: 100}, Speed: 50, MinAlpha: 0.5})
	r.Advance(Frame{})
	if r.Alpha() != 1 {
		t.Errorf("Alpha = %v, want 0.5 + 0.5", r.Alpha())
	}
}

func TestReactionDraw(t *testing.T) {
	s := &recordingSurface{}

	r := NewReaction(ReactionOptions{Position: Point{X: 10, Y: 100}, Text: "+10", Color: color.RGBA{G: 200, A: 255}, Speed: 50})
	r.Advance(Frame{})
	r.Draw(s)
	if len(s.texts) != 1 || s.texts[0].text != "+10" {
		t.Fatalf("unexpected draw calls %+v", s.texts)
	}
	if c := s.texts[0].color.(color.NRGBA); c.A != 128 || c.G != 200 {
		t.Errorf("color = %+v, want half transparent green", c)
	}

	NewReaction(ReactionOptions{Position: Point{X: 0, Y: 100}}).Draw(s)
	if len(s.texts) != 1 {
		t.Error("empty reactions draw nothing")
	}
}
