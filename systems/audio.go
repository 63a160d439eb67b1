package systems

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/whackamole/assets"
	cfg "github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrUnsupportedClip is returned for clips not decoded by the assets package.
var ErrUnsupportedClip = errors.New("unsupported clip")

// Global audio context - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	audioInitOnce      sync.Once
)

// AudioContext returns the process-wide audio context.
func AudioContext() *audio.Context {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
	})
	return globalAudioContext
}

// player is the part of *audio.Player the sink drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

type playerFactory func(clip *assets.Clip, loop bool) (player, error)

// AudioSink implements game.AudioSink on an Ebitengine audio context.
// Completion of one-shot playbacks is detected by a watcher goroutine per
// playback, polling until the player stops on its own.
type AudioSink struct {
	newPlayer playerFactory
	poll      time.Duration

	mu        sync.Mutex
	active    map[*sinkPlayback]struct{}
	suspended bool
}

// NewAudioSink creates a sink playing through ctx.
func NewAudioSink(ctx *audio.Context) *AudioSink {
	return newAudioSink(func(clip *assets.Clip, loop bool) (player, error) {
		if loop {
			stream := audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
			return ctx.NewPlayer(stream)
		}
		return ctx.NewPlayerFromBytes(clip.PCM), nil
	}, time.Duration(cfg.Audio.CompletionPollMs)*time.Millisecond)
}

func newAudioSink(newPlayer playerFactory, poll time.Duration) *AudioSink {
	if poll <= 0 {
		poll = 50 * time.Millisecond
	}
	return &AudioSink{
		newPlayer: newPlayer,
		poll:      poll,
		active:    make(map[*sinkPlayback]struct{}),
	}
}

// Play starts clip. done runs on the watcher goroutine once a non-looping
// playback reaches its end.
func (s *AudioSink) Play(clip game.Clip, opts game.PlayOptions, done func()) (game.Playback, error) {
	c, ok := clip.(*assets.Clip)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedClip, clip)
	}

	p, err := s.newPlayer(c, opts.Loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %s: %w", c.Name, err)
	}
	if opts.Volume > 0 {
		p.SetVolume(opts.Volume)
	}

	pb := &sinkPlayback{sink: s, player: p, stop: make(chan struct{})}

	s.mu.Lock()
	s.active[pb] = struct{}{}
	if !s.suspended {
		p.Play()
	}
	s.mu.Unlock()

	if !opts.Loop {
		go s.watch(pb, done)
	}
	return pb, nil
}

func (s *AudioSink) watch(pb *sinkPlayback, done func()) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-pb.stop:
			return
		case <-ticker.C:
			if !s.finished(pb) {
				continue
			}
			if !pb.release() {
				return
			}
			if done != nil {
				done()
			}
			return
		}
	}
}

// Suspend pauses every active player until Resume.
func (s *AudioSink) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suspended = true
	for pb := range s.active {
		pb.player.Pause()
	}
}

// Resume restarts the players paused by Suspend.
func (s *AudioSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suspended = false
	for pb := range s.active {
		pb.player.Play()
	}
}

// finished reports whether pb stopped on its own. Suspend and Resume toggle
// players under the same lock, so a suspended player is never mistaken for a
// finished one.
func (s *AudioSink) finished(pb *sinkPlayback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.suspended && !pb.player.IsPlaying()
}

// Active returns the number of playbacks still holding a player.
func (s *AudioSink) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

type sinkPlayback struct {
	sink   *AudioSink
	player player
	stop   chan struct{}
	once   sync.Once
}

// release closes the player and forgets it. It reports false if the playback
// was already released.
func (pb *sinkPlayback) release() bool {
	released := false
	pb.once.Do(func() {
		released = true
		close(pb.stop)

		pb.sink.mu.Lock()
		delete(pb.sink.active, pb)
		pb.sink.mu.Unlock()

		pb.player.Pause()
		_ = pb.player.Close()
	})
	return released
}

// Pause stops the playback for good.
func (pb *sinkPlayback) Pause() {
	pb.release()
}
