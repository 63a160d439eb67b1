package game

import (
	"sync"
	"time"
)

// Clip is a decoded sound resource.
type Clip interface {
	Duration() time.Duration
}

// PlayOptions tunes a single playback.
type PlayOptions struct {
	Loop   bool
	Volume float64 // 0 means the sink's default volume
}

// Playback is a sounding instance returned by an AudioSink.
type Playback interface {
	// Pause silences the playback for good and releases it.
	Pause()
}

// AudioSink is the audio output context. done is invoked once, possibly from
// another goroutine, when a non-looping playback finishes on its own. It is not
// invoked for playbacks stopped through Pause.
type AudioSink interface {
	Play(clip Clip, opts PlayOptions, done func()) (Playback, error)
	Suspend()
	Resume()
}

// PlaybackHandle is one registered playback.
type PlaybackHandle struct {
	ID       uint64
	Key      string
	playback Playback
}

// PlaybackPool tracks concurrently playing sound effects by unique id and
// logical key. Completion callbacks may arrive from the audio goroutine at any
// time, so the registry is guarded by a mutex.
type PlaybackPool struct {
	sink AudioSink

	mu        sync.Mutex
	nextID    uint64
	handles   map[uint64]*PlaybackHandle
	suspended bool
}

// NewPlaybackPool creates an empty pool playing through sink.
func NewPlaybackPool(sink AudioSink) *PlaybackPool {
	return &PlaybackPool{
		sink:    sink,
		handles: make(map[uint64]*PlaybackHandle),
	}
}

// Play starts clip and registers it under key. It returns the handle id and
// whether playback was issued; nothing plays while the pool is suspended or
// when the clip is missing.
func (p *PlaybackPool) Play(key string, clip Clip, opts PlayOptions) (uint64, bool) {
	if p.sink == nil || clip == nil {
		return 0, false
	}

	p.mu.Lock()
	if p.suspended {
		p.mu.Unlock()
		return 0, false
	}
	p.nextID++
	id := p.nextID
	h := &PlaybackHandle{ID: id, Key: key}
	p.handles[id] = h
	p.mu.Unlock()

	// The sink may report completion before Play returns, so it is called
	// without holding the lock.
	pb, err := p.sink.Play(clip, opts, func() { p.finish(id) })

	p.mu.Lock()
	if err != nil {
		delete(p.handles, id)
		p.mu.Unlock()
		return 0, false
	}
	_, alive := p.handles[id]
	if alive {
		h.playback = pb
	}
	p.mu.Unlock()

	// stopped or finished before the sink returned
	if !alive {
		pb.Pause()
	}
	return id, true
}

// finish removes a naturally completed playback.
func (p *PlaybackPool) finish(id uint64) {
	p.mu.Lock()
	delete(p.handles, id)
	p.mu.Unlock()
}

// StopByKey silences and removes every playback registered under key.
func (p *PlaybackPool) StopByKey(key string) {
	p.mu.Lock()
	var stopped []Playback
	for id, h := range p.handles {
		if h.Key != key {
			continue
		}
		if h.playback != nil {
			stopped = append(stopped, h.playback)
		}
		delete(p.handles, id)
	}
	p.mu.Unlock()

	for _, pb := range stopped {
		pb.Pause()
	}
}

// StopAll silences and removes every playback.
func (p *PlaybackPool) StopAll() {
	p.mu.Lock()
	stopped := make([]Playback, 0, len(p.handles))
	for id, h := range p.handles {
		if h.playback != nil {
			stopped = append(stopped, h.playback)
		}
		delete(p.handles, id)
	}
	p.mu.Unlock()

	for _, pb := range stopped {
		pb.Pause()
	}
}

// Playing reports whether any playback is registered under key.
func (p *PlaybackPool) Playing(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.handles {
		if h.Key == key {
			return true
		}
	}
	return false
}

// Len returns the number of registered playbacks.
func (p *PlaybackPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}

// Suspend closes the gate and suspends the output context.
func (p *PlaybackPool) Suspend() {
	p.mu.Lock()
	p.suspended = true
	p.mu.Unlock()
	if p.sink != nil {
		p.sink.Suspend()
	}
}

// Resume opens the gate and resumes the output context.
func (p *PlaybackPool) Resume() {
	p.mu.Lock()
	p.suspended = false
	p.mu.Unlock()
	if p.sink != nil {
		p.sink.Resume()
	}
}

// Suspended reports whether the gate is closed.
func (p *PlaybackPool) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suspended
}
