package systems

import (
	"github.com/automoto/whackamole/components"
	cfg "github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for touch IDs to avoid allocations
var touchIDs []ebiten.TouchID

// NewUpdateInput creates a system that polls keys and pointers and queues the
// resulting events on the session controller. Presses for which blocked
// returns true belong to the overlay and are not forwarded as taps.
// Must run BEFORE the session update in the system order.
func NewUpdateInput(blocked func(x, y int) bool) ecs.System {
	return func(e *ecs.ECS) {
		session, ok := GetSession(e)
		if !ok {
			return
		}
		input := getOrCreateInput(e)

		// Swap buffers: current becomes previous, then zero out current
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
		for actionID, binding := range cfg.Input.Bindings {
			for _, key := range binding.Keys {
				if ebiten.IsKeyPressed(key) {
					input.Current[actionID] = true
				}
			}
		}

		for _, ev := range ActionEvents(input) {
			session.Controller.Enqueue(ev)
		}

		for _, p := range justPressedPointers() {
			if blocked != nil && blocked(p.X, p.Y) {
				continue
			}
			session.Controller.Enqueue(game.Tap(float64(p.X), float64(p.Y)))
		}
	}
}

// ActionEvents turns the frame-to-frame change of each bound action into key
// events, in action order. Releasing the start action also presses the start
// button.
func ActionEvents(input *components.InputData) []game.Event {
	var events []game.Event
	for id := cfg.ActionNone + 1; id < cfg.ActionCount; id++ {
		binding, ok := cfg.Input.Bindings[id]
		if !ok {
			continue
		}
		cur, prev := input.Current[id], input.Previous[id]
		switch {
		case cur && !prev:
			events = append(events, game.KeyDown(binding.Code))
		case !cur && prev:
			events = append(events, game.KeyUp(binding.Code))
			if id == cfg.ActionStart {
				events = append(events, game.OverlayClick(game.OverlayButton))
			}
		}
	}
	return events
}

type pointer struct {
	X, Y int
}

func justPressedPointers() []pointer {
	var out []pointer
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, pointer{x, y})
	}
	touchIDs = inpututil.AppendJustPressedTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		x, y := ebiten.TouchPosition(id)
		out = append(out, pointer{x, y})
	}
	return out
}

func getOrCreateInput(e *ecs.ECS) *components.InputData {
	if _, ok := components.Input.First(e.World); !ok {
		e.World.Entry(e.World.Create(components.Input))
	}

	ent, _ := components.Input.First(e.World)
	return components.Input.Get(ent)
}
