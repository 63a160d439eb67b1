package components

import (
	"github.com/automoto/whackamole/game"
	"github.com/yohamta/donburi"
)

// SessionData is the singleton holding the running game.
type SessionData struct {
	Controller *game.Controller

	// Ticked is true when the last update ran a game tick.
	Ticked bool

	// Logical screen size the controller was last loaded with.
	Width, Height int
}

var Session = donburi.NewComponentType[SessionData]()
