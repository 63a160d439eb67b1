package game

import "time"

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// TickHandle identifies a scheduled tick. Zero means none.
type TickHandle uint64

// Frame is the timing record of the most recent tick request.
type Frame struct {
	Handle      TickHandle
	Count       int // ticks run since the scheduler was created
	Time        time.Time
	ElapsedMs   float64
	MotionScale float64
}

// FrameScheduler runs at most one pending callback per platform frame signal
// and derives the motion scale from elapsed wall time.
type FrameScheduler struct {
	clock          Clock
	scaleFactor    float64 // screen scale
	motionConstant float64

	frame      Frame
	nextHandle TickHandle
	pending    func()
}

// NewFrameScheduler creates a scheduler reading time from clock.
func NewFrameScheduler(clock Clock, motionConstant float64) *FrameScheduler {
	if clock == nil {
		clock = time.Now
	}
	return &FrameScheduler{
		clock:          clock,
		motionConstant: motionConstant,
		frame:          Frame{Time: clock()},
	}
}

// SetScreenScale updates the screen scale used for the motion scale.
func (s *FrameScheduler) SetScreenScale(scale float64) {
	s.scaleFactor = scale
}

// Request schedules cb for the next frame signal and records the frame timing.
// When isResume is true the elapsed time is reset to zero so that a long pause
// does not produce a motion jump.
func (s *FrameScheduler) Request(cb func(), isResume bool) Frame {
	now := s.clock()
	elapsed := 0.0
	if !isResume {
		elapsed = float64(now.Sub(s.frame.Time)) / float64(time.Millisecond)
		if elapsed < 0 {
			elapsed = 0
		}
	}

	s.nextHandle++
	s.pending = cb
	s.frame = Frame{
		Handle:      s.nextHandle,
		Count:       s.frame.Count,
		Time:        now,
		ElapsedMs:   elapsed,
		MotionScale: s.scaleFactor * elapsed * s.motionConstant,
	}
	return s.frame
}

// Cancel drops the pending callback scheduled under h. Stale handles and
// handles whose callback already ran are ignored. Returns whether a callback
// was dropped.
func (s *FrameScheduler) Cancel(h TickHandle) bool {
	if h == 0 || s.pending == nil || h != s.frame.Handle {
		return false
	}
	s.pending = nil
	return true
}

// Pending reports whether a callback is waiting for the next frame.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Pump delivers the frame signal: the pending callback, if any, is taken and
// run. Returns whether a callback ran.
func (s *FrameScheduler) Pump() bool {
	cb := s.pending
	if cb == nil {
		return false
	}
	s.pending = nil
	s.frame.Count++
	cb()
	return true
}

// Frame returns the current frame record.
func (s *FrameScheduler) Frame() Frame {
	return s.frame
}
