package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionPause
	ActionMute
	ActionStart
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the keys bound to an action. Code is the named key code
// delivered to the game core in key events.
type InputBinding struct {
	Code string
	Keys []ebiten.Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Named key code that toggles pause on key-up
	PauseCode string
	// Named key code that toggles mute on key-up
	MuteCode string
}

// Named key codes delivered to the game core
const (
	CodePause = "Space"
	CodeMute  = "KeyM"
	CodeStart = "Enter"
)

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		PauseCode: CodePause,
		MuteCode:  CodeMute,
		Bindings: map[ActionID]InputBinding{
			ActionPause: {
				Code: CodePause,
				Keys: []ebiten.Key{ebiten.KeySpace},
			},
			ActionMute: {
				Code: CodeMute,
				Keys: []ebiten.Key{ebiten.KeyM},
			},
			ActionStart: {
				Code: CodeStart,
				Keys: []ebiten.Key{ebiten.KeyEnter},
			},
		},
	}
}
