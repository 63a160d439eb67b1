package game

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"sync"
	"testing"
	"time"
)

type fakeImage struct{ name string }

func (fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 10, 10) }

type fakeClip struct{ d time.Duration }

func (c fakeClip) Duration() time.Duration { return c.d }

type fakePlayback struct {
	mu     sync.Mutex
	paused bool
}

func (p *fakePlayback) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

func (p *fakePlayback) isPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// fakeSink records playbacks and lets tests finish them by hand.
type fakeSink struct {
	mu        sync.Mutex
	played    []PlayOptions
	dones     []func()
	playbacks []*fakePlayback
	suspended bool
	fail      error
}

func (s *fakeSink) Play(clip Clip, opts PlayOptions, done func()) (Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	pb := &fakePlayback{}
	s.played = append(s.played, opts)
	s.dones = append(s.dones, done)
	s.playbacks = append(s.playbacks, pb)
	return pb, nil
}

func (s *fakeSink) Suspend() {
	s.mu.Lock()
	s.suspended = true
	s.mu.Unlock()
}

func (s *fakeSink) Resume() {
	s.mu.Lock()
	s.suspended = false
	s.mu.Unlock()
}

func (s *fakeSink) finish(i int) {
	s.mu.Lock()
	done := s.dones[i]
	s.mu.Unlock()
	done()
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.played)
}

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

type recordingOverlay struct {
	progress     []int
	banner       string
	button       string
	instructions Instructions
	score        uint
	lives        int
	muted        bool
	paused       bool
	visible      map[string]bool
}

func newRecordingOverlay() *recordingOverlay {
	return &recordingOverlay{visible: map[string]bool{}}
}

func (o *recordingOverlay) SetProgress(p int) { o.progress = append(o.progress, p) }
func (o *recordingOverlay) SetBanner(text string) {
	o.banner = text
	o.visible[OverlayBanner] = true
}
func (o *recordingOverlay) SetButton(text string) {
	o.button = text
	o.visible[OverlayButton] = true
}
func (o *recordingOverlay) SetInstructions(in Instructions) { o.instructions = in }
func (o *recordingOverlay) SetScore(score uint)             { o.score = score }
func (o *recordingOverlay) SetLives(lives int)              { o.lives = lives }
func (o *recordingOverlay) SetMute(muted bool)              { o.muted = muted }
func (o *recordingOverlay) SetPause(paused bool)            { o.paused = paused }
func (o *recordingOverlay) Show(keys ...string) {
	for _, k := range keys {
		o.visible[k] = true
	}
}
func (o *recordingOverlay) Hide(keys ...string) {
	for _, k := range keys {
		o.visible[k] = false
	}
}

type textCall struct {
	text  string
	at    Point
	color color.Color
}

type recordingSurface struct {
	fills  int
	images []Box
	texts  []textCall
}

func (s *recordingSurface) FillRect(Box, color.Color)  { s.fills++ }
func (s *recordingSurface) DrawImage(_ Image, box Box) { s.images = append(s.images, box) }
func (s *recordingSurface) DrawText(text string, _ FontSpec, at Point, c color.Color) {
	s.texts = append(s.texts, textCall{text: text, at: at, color: c})
}

type fakeLoader struct {
	bundle Bundle
	err    error
	calls  int
}

func (l *fakeLoader) Load(_ context.Context, descriptors []AssetDescriptor, progress func(Progress)) (Bundle, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	progress(Progress{Percent: 50})
	return l.bundle, nil
}

type recordingReporter struct {
	scores []uint
}

func (r *recordingReporter) ReportScore(score uint) { r.scores = append(r.scores, score) }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testSettings() Settings {
	return Settings{
		Name:                "Whack Test",
		Lives:               3,
		MaxTargets:          5,
		AggressionLevel:     1,
		StartText:           "Start",
		GameOverText:        "Game Over",
		PauseText:           "Paused",
		InstructionsDesktop: "click",
		InstructionsMobile:  "tap",
		FontFamily:          "gameFont",
		Reactions:           []string{"Ouch!", "Hey!"},
		PauseCode:           "Space",
		MuteCode:            "KeyM",
	}
}

func testTuning() Tuning {
	return Tuning{
		SpawnInterval:       60,
		AttackInterval:      120,
		MoleBaseWidth:       60,
		MoleBaseHeight:      50,
		MoleSpeed:           50,
		RecoilShrink:        3,
		AngryLunge:          10,
		GrowInStep:          1,
		SpawnShrink:         0.1,
		ScreenScaleFactor:   0.003,
		MotionConstant:      0.01,
		SpawnDistanceFactor: 2,
		PlacementAttempts:   10,
		BaseScore:           10,
		ExtraEvery:          250,
		ExtraBand:           10,
		MoleReaction:        ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 30, FontSizeMax: 90, MinAlpha: 0.25},
		ScoreReaction:       ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 30, FontSizeMax: 90},
		ExtraReaction:       ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 90, FontSizeMax: 90, MinAlpha: 0.5},
	}
}

func testBundle() Bundle {
	b := Bundle{}
	b.Put(AssetImage, ImageHappyMole, fakeImage{name: "happy"})
	b.Put(AssetImage, ImageAngryMole, fakeImage{name: "angry"})
	b.Put(AssetImage, ImageBackground, fakeImage{name: "bg"})
	for _, name := range []string{SoundWhack, SoundScore, SoundExtra, SoundAttack, SoundGameOver, SoundBackgroundMusic} {
		b.Put(AssetSound, name, fakeClip{d: time.Second})
	}
	b.Put(AssetFont, FontGame, "goregular")
	return b
}

type harness struct {
	c        *Controller
	overlay  *recordingOverlay
	surface  *recordingSurface
	sink     *fakeSink
	store    *memStore
	loader   *fakeLoader
	reporter *recordingReporter
	clock    *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		overlay:  newRecordingOverlay(),
		surface:  &recordingSurface{},
		sink:     &fakeSink{},
		store:    newMemStore(),
		loader:   &fakeLoader{bundle: testBundle()},
		reporter: &recordingReporter{},
		clock:    &fakeClock{now: time.Unix(1000, 0)},
	}
	h.c = NewController(Options{
		Settings: testSettings(),
		Tuning:   testTuning(),
		Width:    800,
		Height:   600,
		Loader:   h.loader,
		Overlay:  h.overlay,
		Surface:  h.surface,
		Sink:     h.sink,
		Store:    h.store,
		Reporter: h.reporter,
		Clock:    h.clock.Now,
		Rand:     rand.New(rand.NewSource(7)),
	})
	return h
}

// load starts a load and pumps Update until the batch has been applied.
func (h *harness) load(t *testing.T) {
	t.Helper()
	h.c.Load(context.Background())
	h.waitLoaded(t)
}

func (h *harness) waitLoaded(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.c.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for asset load")
		}
		h.c.Update()
		time.Sleep(time.Millisecond)
	}
}

// start loads and presses the start button.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.load(t)
	h.c.Enqueue(OverlayClick(OverlayButton))
	h.step()
}

// step advances the fake clock by one 60Hz frame and runs Update.
func (h *harness) step() bool {
	h.clock.Advance(16 * time.Millisecond)
	return h.c.Update()
}

var errBoom = errors.New("boom")
