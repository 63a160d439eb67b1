package systems

import (
	"image/color"
	"log"

	"github.com/automoto/whackamole/fonts"
	"github.com/automoto/whackamole/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

type drawKind int

const (
	drawFill drawKind = iota
	drawImage
	drawText
)

// DrawCmd is one recorded drawing primitive.
type DrawCmd struct {
	Kind  drawKind
	Box   game.Box
	Image game.Image
	Text  string
	Font  game.FontSpec
	At    game.Point
	Color color.Color
}

// Recorder implements game.Surface by recording draw calls. Ebitengine clears
// the screen every frame while the controller only draws when it ticks, so
// the last committed frame is replayed on every Draw.
type Recorder struct {
	pending []DrawCmd
	frame   []DrawCmd

	warned map[string]bool
}

func NewRecorder() *Recorder {
	return &Recorder{warned: make(map[string]bool)}
}

// Begin starts recording a new frame.
func (r *Recorder) Begin() {
	r.pending = r.pending[:0]
}

// Commit makes the frame recorded since Begin the one that is replayed.
func (r *Recorder) Commit() {
	r.frame, r.pending = r.pending, r.frame[:0]
}

// Discard drops everything recorded since Begin.
func (r *Recorder) Discard() {
	r.pending = r.pending[:0]
}

// Frame returns the committed draw commands.
func (r *Recorder) Frame() []DrawCmd {
	return r.frame
}

func (r *Recorder) FillRect(box game.Box, c color.Color) {
	r.pending = append(r.pending, DrawCmd{Kind: drawFill, Box: box, Color: c})
}

func (r *Recorder) DrawImage(img game.Image, box game.Box) {
	r.pending = append(r.pending, DrawCmd{Kind: drawImage, Image: img, Box: box})
}

func (r *Recorder) DrawText(s string, font game.FontSpec, at game.Point, c color.Color) {
	r.pending = append(r.pending, DrawCmd{Kind: drawText, Text: s, Font: font, At: at, Color: c})
}

// Replay draws the committed frame onto screen with every color scaled by alpha.
func (r *Recorder) Replay(screen *ebiten.Image, alpha float32) {
	if alpha <= 0 {
		return
	}

	for _, cmd := range r.frame {
		switch cmd.Kind {
		case drawFill:
			vector.FillRect(screen,
				float32(cmd.Box.Left), float32(cmd.Box.Top),
				float32(cmd.Box.Width()), float32(cmd.Box.Height()),
				fade(cmd.Color, alpha), false)

		case drawImage:
			img, ok := cmd.Image.(*ebiten.Image)
			if !ok {
				continue
			}
			b := img.Bounds()
			if b.Dx() == 0 || b.Dy() == 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cmd.Box.Width()/float64(b.Dx()), cmd.Box.Height()/float64(b.Dy()))
			op.GeoM.Translate(cmd.Box.Left, cmd.Box.Top)
			op.ColorScale.ScaleAlpha(alpha)
			screen.DrawImage(img, op)

		case drawText:
			face, err := fonts.Face(cmd.Font.Family, cmd.Font.Size)
			if err != nil {
				if !r.warned[cmd.Font.Family] {
					log.Printf("Warning: cannot draw text in %q: %v", cmd.Font.Family, err)
					r.warned[cmd.Font.Family] = true
				}
				continue
			}
			text.Draw(screen, cmd.Text, face, int(cmd.At.X), int(cmd.At.Y), fade(cmd.Color, alpha))
		}
	}
}

// fade scales a color, alpha included, by a.
func fade(c color.Color, a float32) color.Color {
	if a >= 1 {
		return c
	}
	r, g, b, al := c.RGBA()
	return color.RGBA64{
		R: uint16(float32(r) * a),
		G: uint16(float32(g) * a),
		B: uint16(float32(b) * a),
		A: uint16(float32(al) * a),
	}
}

// NewDrawSession creates the renderer replaying rec with the opacity alpha
// returns for the current frame.
func NewDrawSession(rec *Recorder, alpha func() float32) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		rec.Replay(screen, alpha())
	}
}
