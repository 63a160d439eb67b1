package game

import (
	"context"
	"errors"
	"image/color"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"time"
)

// Options wires a Controller to its collaborators.
type Options struct {
	Settings Settings
	Tuning   Tuning
	Palette  Palette

	Width, Height int
	Assets        []AssetDescriptor

	Loader   Loader
	Overlay  Overlay
	Surface  Surface
	Sink     AudioSink
	Store    Store
	Reporter ScoreReporter // optional

	// Volumes maps a sound name to its playback volume. Missing names play
	// at the sink default.
	Volumes map[string]float64

	Clock Clock
	Rand  *rand.Rand
}

type loadResult struct {
	bundle Bundle
	err    error
}

type pendingLoad struct {
	cancel   context.CancelFunc
	progress chan Progress
	done     chan loadResult
}

// Controller owns all game state. Input is queued with Enqueue and applied at
// the start of Update, before the scheduled tick runs, so a tick never
// observes a half-applied event.
type Controller struct {
	settings Settings
	tuning   Tuning
	palette  Palette
	assets   []AssetDescriptor

	loader   Loader
	overlay  Overlay
	surface  Surface
	store    Store
	reporter ScoreReporter
	volumes  map[string]float64

	rng        *rand.Rand
	phase      *PhaseController
	scheduler  *FrameScheduler
	tickHandle TickHandle // last scheduled tick, the cancellation token
	placer     *Placer
	pool       *PlaybackPool
	events     EventQueue

	ctx     context.Context
	loading *pendingLoad

	width, height int
	bounds        Bounds
	spawnBounds   Bounds
	state         State
	muteKey       string
	reported      bool

	bundle     Bundle
	background Image
	moleWidth  float64
	moleHeight float64

	moles     []*Mole
	reactions []*Reaction
}

// NewController creates a controller in the loading phase. Call Load to start.
func NewController(opts Options) *Controller {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if opts.Overlay == nil {
		opts.Overlay = nopOverlay{}
	}
	if opts.Surface == nil {
		opts.Surface = nopSurface{}
	}

	placer := NewPlacer(rng)
	if opts.Tuning.PlacementAttempts > 0 {
		placer.MaxAttempts = opts.Tuning.PlacementAttempts
	}

	return &Controller{
		settings:  opts.Settings,
		tuning:    opts.Tuning,
		palette:   opts.Palette,
		assets:    opts.Assets,
		loader:    opts.Loader,
		overlay:   opts.Overlay,
		surface:   opts.Surface,
		store:     opts.Store,
		reporter:  opts.Reporter,
		volumes:   opts.Volumes,
		rng:       rng,
		phase:     NewPhaseController(),
		scheduler: NewFrameScheduler(opts.Clock, opts.Tuning.MotionConstant),
		placer:    placer,
		pool:      NewPlaybackPool(opts.Sink),
		ctx:       context.Background(),
		width:     opts.Width,
		height:    opts.Height,
		muteKey:   MuteKey(opts.Settings.Name),
	}
}

// Load resets the game and starts loading assets in the background. Progress
// and completion are applied by Update.
func (c *Controller) Load(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.init()

	if c.loading != nil {
		c.loading.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	pl := &pendingLoad{
		cancel:   cancel,
		progress: make(chan Progress, 16),
		done:     make(chan loadResult, 1),
	}
	c.loading = pl

	if c.loader == nil {
		pl.done <- loadResult{err: errors.New("no asset loader configured")}
		return
	}

	loader, descriptors := c.loader, c.assets
	go func() {
		bundle, err := loader.Load(loadCtx, descriptors, func(p Progress) {
			select {
			case pl.progress <- p:
			default:
			}
		})
		pl.done <- loadResult{bundle: bundle, err: err}
	}()
}

func (c *Controller) init() {
	c.scheduler.Cancel(c.tickHandle)
	c.pool.StopAll()

	c.bounds = NewBounds(c.width, c.height, c.tuning.ScreenScaleFactor)
	c.spawnBounds = c.bounds
	c.scheduler.SetScreenScale(c.bounds.Scale)

	c.phase.Reset()
	c.state = State{
		Lives: c.settings.Lives,
		Muted: LoadMuted(c.store, c.muteKey),
	}
	c.reported = false
	c.moles = nil
	c.reactions = nil
	c.bundle = nil
	c.background = nil

	c.applyAudioGate()

	c.overlay.SetProgress(0)
	c.overlay.Show(OverlayLoading)
}

// Enqueue buffers an input event until the next Update.
func (c *Controller) Enqueue(e Event) {
	c.events.Push(e)
}

// Update applies finished loads and queued input, then delivers the frame
// signal to the scheduler. It reports whether a tick ran.
func (c *Controller) Update() bool {
	c.pollLoad()
	for _, e := range c.events.Drain() {
		c.handle(e)
	}
	return c.scheduler.Pump()
}

func (c *Controller) pollLoad() {
	pl := c.loading
	if pl == nil {
		return
	}
drain:
	for {
		select {
		case p := <-pl.progress:
			c.overlay.SetProgress(p.Percent)
		default:
			break drain
		}
	}

	select {
	case res := <-pl.done:
		c.loading = nil
		pl.cancel()
		if res.err != nil {
			log.Printf("Warning: asset load failed: %v", res.err)
			return
		}
		c.overlay.SetProgress(100)
		c.create(res.bundle)
	default:
	}
}

func (c *Controller) create(bundle Bundle) {
	c.bundle = bundle
	c.moleWidth = c.tuning.MoleBaseWidth * c.bounds.Scale
	c.moleHeight = c.tuning.MoleBaseHeight * c.bounds.Scale

	c.background = bundle.Image(ImageBackground)
	if st, ok := bundle.Stage(StageMain); ok {
		if st.Background != nil {
			c.background = st.Background
		}
		c.spawnBounds = st.SpawnArea.Within(c.bounds)
	}

	c.setPhase(PhaseReady)
	c.schedule(true)
}

// Tick runs one frame of the game loop immediately.
func (c *Controller) Tick() {
	c.tick()
}

func (c *Controller) tick() {
	frame := c.scheduler.Frame()
	full := Box{Top: c.bounds.Top, Bottom: c.bounds.Bottom, Left: c.bounds.Left, Right: c.bounds.Right}

	c.surface.FillRect(full, c.palette.Primary)
	if c.background != nil {
		c.surface.DrawImage(c.background, full)
	}

	c.overlay.SetScore(c.state.Score)
	c.overlay.SetLives(max(c.state.Lives, 0))

	if c.phase.Entered(PhaseLoading, PhaseReady) {
		c.enterReady()
	}

	if c.phase.Current() == PhasePlay {
		c.play(frame)
	}

	if c.phase.Current() == PhaseOver {
		c.over()
		return
	}

	c.schedule(false)
}

func (c *Controller) schedule(isResume bool) {
	c.tickHandle = c.scheduler.Request(c.tick, isResume).Handle
}

func (c *Controller) enterReady() {
	c.overlay.Hide(OverlayLoading)
	c.overlay.Show(OverlayCanvas)

	c.overlay.SetBanner(c.settings.Name)
	c.overlay.SetButton(c.settings.StartText)
	c.overlay.SetInstructions(Instructions{
		Desktop: c.settings.InstructionsDesktop,
		Mobile:  c.settings.InstructionsMobile,
	})

	c.overlay.Show(OverlayStats)
	c.overlay.SetLives(c.settings.Lives)
	c.overlay.SetScore(c.state.Score)

	c.overlay.SetMute(c.state.Muted)
	c.overlay.SetPause(c.state.Paused)

	c.phase.Settle()
}

func (c *Controller) play(frame Frame) {
	if c.phase.Entered(PhaseReady, PhasePlay) {
		c.overlay.Hide(OverlayBanner, OverlayButton, OverlayInstructions)
		c.phase.Settle()
	}

	if !c.state.Muted && !c.pool.Playing(SoundBackgroundMusic) {
		c.playSound(SoundBackgroundMusic, true)
	}

	c.spawn(frame)
	c.attack(frame)

	for _, m := range c.moles {
		m.Advance(frame)
		m.Draw(c.surface)
	}
	alive := c.moles[:0]
	for _, m := range c.moles {
		if m.Mood() != MoodDone {
			alive = append(alive, m)
		}
	}
	clear(c.moles[len(alive):])
	c.moles = alive
	sort.SliceStable(c.moles, func(i, j int) bool {
		return c.moles[i].Width() < c.moles[j].Width()
	})

	for _, r := range c.reactions {
		r.Advance(frame)
		r.Draw(c.surface)
	}
	live := c.reactions[:0]
	for _, r := range c.reactions {
		if !r.Expired() {
			live = append(live, r)
		}
	}
	clear(c.reactions[len(live):])
	c.reactions = live

	if c.state.Lives < 1 {
		c.setPhase(PhaseOver)
	}
}

func (c *Controller) spawn(frame Frame) {
	interval := max(c.tuning.SpawnInterval, 1)
	if frame.Count%interval != 0 || len(c.moles) >= c.settings.MaxTargets {
		return
	}

	existing := make([]Point, len(c.moles))
	for i, m := range c.moles {
		existing[i] = m.Position()
	}
	location, ok := c.placer.PickAwayFromAll(c.spawnBounds, existing, c.moleWidth*c.tuning.SpawnDistanceFactor)
	if !ok {
		return
	}

	c.moles = append(c.moles, NewMole(MoleOptions{
		Position:     location,
		Width:        c.moleWidth,
		Height:       c.moleHeight,
		Image:        c.bundle.Image(ImageHappyMole),
		AngryImage:   c.bundle.Image(ImageAngryMole),
		Aggression:   c.settings.AggressionLevel,
		Speed:        c.tuning.MoleSpeed,
		Bounds:       c.bounds,
		RecoilShrink: c.tuning.RecoilShrink,
		AngryLunge:   c.tuning.AngryLunge,
		GrowInStep:   c.tuning.GrowInStep,
		SpawnShrink:  c.tuning.SpawnShrink,
		Rand:         c.rng,
	}))
}

func (c *Controller) attack(frame Frame) {
	attackers := 0
	for _, m := range c.moles {
		if m.Width() > c.bounds.Width()/2 {
			attackers++
		}
	}

	if attackers == 0 {
		c.pool.StopByKey(SoundAttack)
		return
	}

	interval := max(c.tuning.AttackInterval, 1)
	if frame.Count%interval == 0 {
		c.playSound(SoundAttack, false)
		c.state.Lives -= attackers
	}
}

func (c *Controller) over() {
	c.overlay.SetBanner(c.settings.GameOverText)

	c.pool.StopByKey(SoundBackgroundMusic)
	c.pool.StopByKey(SoundAttack)
	c.playSound(SoundGameOver, false)

	if c.reporter != nil && !c.reported {
		c.reporter.ReportScore(c.state.Score)
		c.reported = true
	}

	// no tick follows, so the readouts must show the final values now
	c.overlay.SetScore(c.state.Score)
	c.overlay.SetLives(max(c.state.Lives, 0))

	c.scheduler.Cancel(c.tickHandle)
}

func (c *Controller) handle(e Event) {
	switch e.Kind {
	case EventTap:
		c.handleTap(e.At)
	case EventKeyUp:
		c.handleKeyUp(e.Code)
	case EventOverlayClick:
		c.handleClick(e.Target)
	case EventResize:
		c.handleResize(e.Width, e.Height)
	case EventKeyDown:
		// only key-up is meaningful
	}
}

func (c *Controller) handleTap(at Point) {
	if c.phase.Current() == PhaseOver {
		c.setPhase(PhaseLoading)
		c.Load(c.ctx)
		return
	}
	if c.phase.Current() != PhasePlay || c.state.Paused {
		return
	}

	for _, m := range c.moles {
		before := m.HitCount()
		if m.Whack(at) {
			c.handleWhack(m, before)
		}
	}
}

func (c *Controller) handleWhack(m *Mole, hitsBefore uint) {
	delta := ScoreDelta(hitsBefore, c.tuning.BaseScore)
	c.state.Score += delta
	c.playSound(SoundScore, false)
	c.playSound(SoundWhack, false)

	font := c.bundle.Font(FontGame)
	bottom := Point{X: c.randomBetween(c.bounds.Left, c.bounds.Right), Y: c.bounds.Bottom}

	c.reactions = append(c.reactions, NewReaction(ReactionOptions{
		Position: bottom,
		Text:     "+" + strconv.FormatUint(uint64(c.state.Score), 10),
		Color:    c.palette.Point,
		Font:     FontSpec{Family: font, Size: c.randomBetween(c.tuning.ScoreReaction.FontSizeMin, c.tuning.ScoreReaction.FontSizeMax)},
		Speed:    c.reactionSpeed(c.tuning.ScoreReaction),
		MinAlpha: c.tuning.ScoreReaction.MinAlpha,
	}))

	if IsExtra(c.state.Score, c.tuning.ExtraEvery, c.tuning.ExtraBand) {
		c.playSound(SoundExtra, false)
		c.reactions = append(c.reactions, NewReaction(ReactionOptions{
			Position: Point{X: c.randomBetween(c.bounds.Left, c.bounds.Right), Y: c.bounds.Bottom},
			Text:     ExtraText(c.state.Score, c.tuning.ExtraEvery),
			Color:    c.palette.Extra,
			Font:     FontSpec{Family: font, Size: c.tuning.ExtraReaction.FontSizeMax},
			Speed:    c.reactionSpeed(c.tuning.ExtraReaction),
			MinAlpha: c.tuning.ExtraReaction.MinAlpha,
		}))
	}

	if len(c.settings.Reactions) > 0 {
		style := c.tuning.MoleReaction
		c.reactions = append(c.reactions, NewReaction(ReactionOptions{
			Position: m.Position(),
			Text:     c.settings.Reactions[c.rng.Intn(len(c.settings.Reactions))],
			Color:    c.palette.Reaction,
			Font:     FontSpec{Family: font, Size: Clamp(15*float64(m.HitCount()), style.FontSizeMin, style.FontSizeMax)},
			Speed:    c.reactionSpeed(style),
			MinAlpha: style.MinAlpha,
		}))
	}
}

func (c *Controller) handleKeyUp(code string) {
	switch code {
	case c.settings.PauseCode:
		c.togglePause()
	case c.settings.MuteCode:
		if c.phase.Current() != PhaseLoading {
			c.toggleMute()
		}
	}
}

func (c *Controller) handleClick(target string) {
	if c.phase.Current() == PhaseLoading {
		return
	}
	switch target {
	case OverlayMute:
		c.toggleMute()
	case OverlayPause:
		c.togglePause()
	case OverlayButton:
		if c.phase.Current() == PhaseReady {
			c.setPhase(PhasePlay)
		}
	}
}

func (c *Controller) handleResize(width, height int) {
	c.width, c.height = width, height
	c.Load(c.ctx)
}

func (c *Controller) togglePause() {
	if c.phase.Current() != PhasePlay {
		return
	}

	c.state.Paused = !c.state.Paused
	c.overlay.SetPause(c.state.Paused)

	if c.state.Paused {
		c.scheduler.Cancel(c.tickHandle)
		c.pool.Suspend()
		c.overlay.SetBanner(c.settings.PauseText)
		return
	}

	c.schedule(true)
	if !c.state.Muted {
		c.pool.Resume()
	}
	c.overlay.Hide(OverlayBanner)
}

func (c *Controller) toggleMute() {
	muted, err := ToggleMuted(c.store, c.muteKey)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	c.state.Muted = muted
	c.overlay.SetMute(muted)
	c.applyAudioGate()
}

func (c *Controller) applyAudioGate() {
	if c.state.Muted || c.state.Paused {
		c.pool.Suspend()
		return
	}
	c.pool.Resume()
}

func (c *Controller) setPhase(p Phase) {
	if err := c.phase.Set(p); err != nil {
		log.Printf("Warning: %v", err)
	}
}

func (c *Controller) playSound(name string, loop bool) {
	clip := c.bundle.Clip(name)
	if clip == nil {
		return
	}
	c.pool.Play(name, clip, PlayOptions{Loop: loop, Volume: c.volumes[name]})
}

func (c *Controller) reactionSpeed(style ReactionStyle) float64 {
	return c.randomBetween(style.SpeedMin, style.SpeedMax)
}

func (c *Controller) randomBetween(lo, hi float64) float64 {
	return randomBetween(c.rng, lo, hi)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase.Current() }

// State returns a copy of the game state.
func (c *Controller) State() State { return c.state }

// Bounds returns the current screen bounds.
func (c *Controller) Bounds() Bounds { return c.bounds }

// Frame returns the timing of the most recent tick request.
func (c *Controller) Frame() Frame { return c.scheduler.Frame() }

// Moles returns the live moles, smallest first.
func (c *Controller) Moles() []*Mole { return c.moles }

// Reactions returns the live reactions.
func (c *Controller) Reactions() []*Reaction { return c.reactions }

// Pool returns the sound effect pool.
func (c *Controller) Pool() *PlaybackPool { return c.pool }

// Loading reports whether an asset batch is still in flight.
func (c *Controller) Loading() bool { return c.loading != nil }

// TickPending reports whether a tick is scheduled.
func (c *Controller) TickPending() bool { return c.scheduler.Pending() }

type nopOverlay struct{}

func (nopOverlay) SetProgress(int)              {}
func (nopOverlay) SetBanner(string)             {}
func (nopOverlay) SetButton(string)             {}
func (nopOverlay) SetInstructions(Instructions) {}
func (nopOverlay) SetScore(uint)                {}
func (nopOverlay) SetLives(int)                 {}
func (nopOverlay) SetMute(bool)                 {}
func (nopOverlay) SetPause(bool)                {}
func (nopOverlay) Show(...string)               {}
func (nopOverlay) Hide(...string)               {}

type nopSurface struct{}

func (nopSurface) FillRect(Box, color.Color)                     {}
func (nopSurface) DrawImage(Image, Box)                          {}
func (nopSurface) DrawText(string, FontSpec, Point, color.Color) {}
