package systems

import (
	"github.com/automoto/whackamole/components"
	"github.com/automoto/whackamole/game"
	"github.com/yohamta/donburi/ecs"
)

// NewSession creates the session singleton around ctrl.
func NewSession(e *ecs.ECS, ctrl *game.Controller, width, height int) *components.SessionData {
	ent := e.World.Entry(e.World.Create(components.Session))
	components.Session.SetValue(ent, components.SessionData{
		Controller: ctrl,
		Width:      width,
		Height:     height,
	})
	return components.Session.Get(ent)
}

// GetSession returns the session singleton, if one was created.
func GetSession(e *ecs.ECS) (*components.SessionData, bool) {
	ent, ok := components.Session.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Session.Get(ent), true
}

// NewUpdateSession creates the system delivering one frame signal to the
// controller. Whatever the tick draws is recorded into rec and becomes the
// frame shown until the next tick.
func NewUpdateSession(rec *Recorder) ecs.System {
	return func(e *ecs.ECS) {
		session, ok := GetSession(e)
		if !ok {
			return
		}

		rec.Begin()
		session.Ticked = session.Controller.Update()
		if session.Ticked {
			rec.Commit()
		} else {
			rec.Discard()
		}
	}
}

// ResizeSession queues a resize when the logical screen size changed.
func ResizeSession(e *ecs.ECS, width, height int) {
	session, ok := GetSession(e)
	if !ok || width <= 0 || height <= 0 {
		return
	}
	if session.Width == width && session.Height == height {
		return
	}
	session.Width, session.Height = width, height
	session.Controller.Enqueue(game.Resize(width, height))
}
