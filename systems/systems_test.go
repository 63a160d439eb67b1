package systems

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/automoto/whackamole/assets"
	"github.com/automoto/whackamole/components"
	cfg "github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestActionEventsFromFrameChanges(t *testing.T) {
	input := &components.InputData{}
	input.Current[cfg.ActionPause] = true
	input.Previous[cfg.ActionMute] = true
	input.Previous[cfg.ActionStart] = true

	got := ActionEvents(input)
	want := []game.Event{
		game.KeyDown(cfg.CodePause),
		game.KeyUp(cfg.CodeMute),
		game.KeyUp(cfg.CodeStart),
		game.OverlayClick(game.OverlayButton),
	}
	if len(got) != len(want) {
		t.Fatalf("events = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	held := &components.InputData{}
	held.Current[cfg.ActionPause] = true
	held.Previous[cfg.ActionPause] = true
	if ev := ActionEvents(held); len(ev) != 0 {
		t.Errorf("a held key produces %+v", ev)
	}
}

func TestRecorderCommitAndDiscard(t *testing.T) {
	r := NewRecorder()
	box := game.Box{Right: 10, Bottom: 10}

	r.Begin()
	r.FillRect(box, color.Black)
	r.DrawText("+10", game.FontSpec{Family: "gobold", Size: 30}, game.Point{X: 1, Y: 2}, color.White)
	r.Commit()
	if n := len(r.Frame()); n != 2 {
		t.Fatalf("committed %d commands, want 2", n)
	}

	r.Begin()
	r.FillRect(box, color.White)
	r.Discard()
	frame := r.Frame()
	if len(frame) != 2 || frame[0].Color != color.Black || frame[1].Text != "+10" {
		t.Errorf("discarded commands leaked into the frame: %+v", frame)
	}

	r.Begin()
	r.DrawImage(image.Rect(0, 0, 4, 4), box)
	r.Commit()
	if frame := r.Frame(); len(frame) != 1 || frame[0].Kind != drawImage {
		t.Errorf("frame = %+v", frame)
	}
}

func TestFade(t *testing.T) {
	if got := fade(color.White, 1); got != color.White {
		t.Errorf("full alpha changed the color: %v", got)
	}
	_, _, _, a := fade(color.White, 0.5).RGBA()
	if a < 0x7f00 || a > 0x8100 {
		t.Errorf("alpha = %#x, want about half", a)
	}
}

type fakePlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool
	volume  float64
}

func (p *fakePlayer) Play()               { p.mu.Lock(); p.playing = true; p.mu.Unlock() }
func (p *fakePlayer) Pause()              { p.mu.Lock(); p.playing = false; p.mu.Unlock() }
func (p *fakePlayer) IsPlaying() bool     { p.mu.Lock(); defer p.mu.Unlock(); return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.mu.Lock(); p.volume = v; p.mu.Unlock() }
func (p *fakePlayer) Close() error        { p.mu.Lock(); p.closed = true; p.mu.Unlock(); return nil }
func (p *fakePlayer) isClosed() bool      { p.mu.Lock(); defer p.mu.Unlock(); return p.closed }
func (p *fakePlayer) finish()             { p.Pause() }
func (p *fakePlayer) volumeSet() float64  { p.mu.Lock(); defer p.mu.Unlock(); return p.volume }

type playerLog struct {
	mu      sync.Mutex
	players []*fakePlayer
	fail    bool
}

func (l *playerLog) factory(*assets.Clip, bool) (player, error) {
	if l.fail {
		return nil, errors.New("no device")
	}
	p := &fakePlayer{}
	l.mu.Lock()
	l.players = append(l.players, p)
	l.mu.Unlock()
	return p, nil
}

func (l *playerLog) get(i int) *fakePlayer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.players[i]
}

func testClip() *assets.Clip {
	return &assets.Clip{Name: "whack", PCM: make([]byte, 400), SampleRate: 44100}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAudioSinkReportsCompletion(t *testing.T) {
	log := &playerLog{}
	sink := newAudioSink(log.factory, time.Millisecond)

	done := make(chan struct{})
	pb, err := sink.Play(testClip(), game.PlayOptions{Volume: 0.7}, func() { close(done) })
	if err != nil {
		t.Fatal(err)
	}
	p := log.get(0)
	if !p.IsPlaying() || p.volumeSet() != 0.7 {
		t.Fatalf("player not started with volume: playing=%v volume=%v", p.IsPlaying(), p.volumeSet())
	}

	p.finish()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("completion not reported")
	}
	waitFor(t, p.isClosed)
	if sink.Active() != 0 {
		t.Errorf("active = %d after completion", sink.Active())
	}

	// pausing a finished playback is a no-op
	pb.Pause()
}

func TestAudioSinkPauseSkipsCompletion(t *testing.T) {
	log := &playerLog{}
	sink := newAudioSink(log.factory, time.Millisecond)

	var called bool
	var mu sync.Mutex
	pb, err := sink.Play(testClip(), game.PlayOptions{}, func() {
		mu.Lock()
		called = true
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	pb.Pause()
	if !log.get(0).isClosed() || sink.Active() != 0 {
		t.Fatal("paused playback should be released")
	}

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if called {
		t.Error("done must not run for a paused playback")
	}
}

func TestAudioSinkSuspendHoldsPlaybacks(t *testing.T) {
	log := &playerLog{}
	sink := newAudioSink(log.factory, time.Millisecond)

	done := make(chan struct{}, 1)
	if _, err := sink.Play(testClip(), game.PlayOptions{}, func() { done <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	p := log.get(0)

	sink.Suspend()
	if p.IsPlaying() {
		t.Fatal("suspend should pause active players")
	}
	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("a suspended playback is not finished")
	default:
	}

	if _, err := sink.Play(testClip(), game.PlayOptions{Loop: true}, nil); err != nil {
		t.Fatal(err)
	}
	if log.get(1).IsPlaying() {
		t.Error("playbacks started while suspended stay silent")
	}

	sink.Resume()
	if !p.IsPlaying() || !log.get(1).IsPlaying() {
		t.Error("resume should restart suspended players")
	}
	if sink.Active() != 2 {
		t.Errorf("active = %d, want 2", sink.Active())
	}
}

func TestAudioSinkErrors(t *testing.T) {
	sink := newAudioSink((&playerLog{fail: true}).factory, time.Millisecond)
	if _, err := sink.Play(testClip(), game.PlayOptions{}, nil); err == nil {
		t.Error("expected the player error")
	}

	type otherClip struct{ game.Clip }
	if _, err := sink.Play(otherClip{}, game.PlayOptions{}, nil); !errors.Is(err, ErrUnsupportedClip) {
		t.Errorf("expected ErrUnsupportedClip, got %v", err)
	}
}

type mapItems struct {
	items   map[string][]byte
	loadErr error
	saveErr error
}

func (m *mapItems) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *mapItems) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func TestPrefStoreWritesThrough(t *testing.T) {
	items := &mapItems{items: map[string][]byte{"preloaded": []byte("true")}}
	s := NewPrefStore(items)

	if v, ok := s.Get("preloaded"); !ok || v != "true" {
		t.Errorf("Get(preloaded) = %q, %v", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("missing key reported present")
	}

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if string(items.items["k"]) != "v" {
		t.Error("value not written to disk")
	}

	// a fresh store over the same items sees the value
	if v, ok := NewPrefStore(items).Get("k"); !ok || v != "v" {
		t.Errorf("reopened Get = %q, %v", v, ok)
	}
}

func TestPrefStoreDegradesToMemory(t *testing.T) {
	items := &mapItems{items: map[string][]byte{}, loadErr: errors.New("io"), saveErr: errors.New("read-only")}
	s := NewPrefStore(items)

	if err := s.Set("muted", "true"); err == nil {
		t.Error("expected the save error")
	}
	if v, ok := s.Get("muted"); !ok || v != "true" {
		t.Errorf("value lost for the session: %q, %v", v, ok)
	}

	mem := NewPrefStore(nil)
	muted, err := game.ToggleMuted(mem, "k")
	if err != nil || !muted || !game.LoadMuted(mem, "k") {
		t.Errorf("memory-only toggle = %v, %v", muted, err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := NewPrefStore(&mapItems{items: map[string][]byte{}})
	if LoadSettings(s) != nil {
		t.Error("nothing saved yet")
	}
	if err := SaveSettings(s, SavedSettings{ResolutionIndex: 2, Fullscreen: true}); err != nil {
		t.Fatal(err)
	}
	got := LoadSettings(s)
	if got == nil || got.ResolutionIndex != 2 || !got.Fullscreen {
		t.Errorf("settings = %+v", got)
	}

	_ = s.Set(settingsItem, "{broken")
	if LoadSettings(s) != nil {
		t.Error("corrupt settings should be ignored")
	}
}

type emptyLoader struct{}

func (emptyLoader) Load(context.Context, []game.AssetDescriptor, func(game.Progress)) (game.Bundle, error) {
	return game.Bundle{}, nil
}

func TestSessionRecordsTicks(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	rec := NewRecorder()

	ctrl := game.NewController(game.Options{
		Settings: cfg.Game,
		Tuning:   cfg.Tuning,
		Palette:  cfg.Colors,
		Width:    800,
		Height:   600,
		Loader:   emptyLoader{},
		Surface:  rec,
		Store:    NewPrefStore(nil),
	})
	NewSession(e, ctrl, 800, 600)
	ctrl.Load(context.Background())

	update := NewUpdateSession(rec)
	session, _ := GetSession(e)
	waitFor(t, func() bool {
		update(e)
		return session.Ticked
	})

	frame := rec.Frame()
	if len(frame) == 0 || frame[0].Kind != drawFill || frame[0].Color != cfg.Colors.Primary {
		t.Fatalf("first command = %+v", frame)
	}
	if ctrl.Phase() != game.PhaseReady {
		t.Errorf("phase = %v", ctrl.Phase())
	}
}

func TestResizeSessionQueuesOnChange(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	ctrl := game.NewController(game.Options{Settings: cfg.Game, Tuning: cfg.Tuning, Width: 800, Height: 600, Loader: emptyLoader{}})
	session := NewSession(e, ctrl, 800, 600)

	ResizeSession(e, 800, 600)
	ResizeSession(e, 0, 0)
	if session.Width != 800 || session.Height != 600 {
		t.Fatal("same or empty size should not change the session")
	}

	ResizeSession(e, 1024, 768)
	if session.Width != 1024 || session.Height != 768 {
		t.Errorf("session size = %dx%d", session.Width, session.Height)
	}
	ctrl.Update()
	if ctrl.Bounds().Right != 1024 || ctrl.Bounds().Bottom != 768 {
		t.Errorf("resize not applied, bounds = %+v", ctrl.Bounds())
	}
}
