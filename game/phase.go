package game

import (
	"errors"
	"fmt"
)

// Phase is the game's top-level mode.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhasePlay
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhasePlay:
		return "play"
	case PhaseOver:
		return "over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ErrIllegalTransition is returned when a requested phase change is not in the table.
var ErrIllegalTransition = errors.New("illegal phase transition")

// transitions lists the legal successor of every phase. Staying in the same
// phase is always legal.
var transitions = map[Phase]Phase{
	PhaseLoading: PhaseReady,
	PhaseReady:   PhasePlay,
	PhasePlay:    PhaseOver,
	PhaseOver:    PhaseLoading,
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Phase) bool {
	if from == to {
		_, known := transitions[from]
		return known
	}
	next, ok := transitions[from]
	return ok && next == to
}

// PhaseController tracks the current and previous phase.
type PhaseController struct {
	current  Phase
	previous Phase
}

// NewPhaseController starts in the loading phase.
func NewPhaseController() *PhaseController {
	return &PhaseController{current: PhaseLoading, previous: PhaseLoading}
}

// Current returns the active phase.
func (pc *PhaseController) Current() Phase { return pc.current }

// Previous returns the phase that was active before the last Set.
func (pc *PhaseController) Previous() Phase { return pc.previous }

// Set moves to next if the edge is legal. The outgoing phase is recorded as
// previous, so a self-stay marks the entry edge as handled. Illegal requests
// leave the controller untouched.
func (pc *PhaseController) Set(next Phase) error {
	if !CanTransition(pc.current, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, pc.current, next)
	}
	pc.previous = pc.current
	pc.current = next
	return nil
}

// Entered reports whether the last Set was the edge from -> to.
func (pc *PhaseController) Entered(from, to Phase) bool {
	return pc.previous == from && pc.current == to
}

// Settle records that the current phase's entry side effects have run.
func (pc *PhaseController) Settle() {
	pc.previous = pc.current
}

// Reset returns to loading regardless of the current phase. Used for a full
// reinitialization after a viewport resize.
func (pc *PhaseController) Reset() {
	pc.current = PhaseLoading
	pc.previous = PhaseLoading
}
