package scenes

import (
	"context"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/automoto/whackamole/assets"
	cfg "github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/automoto/whackamole/systems"
	"github.com/automoto/whackamole/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameScene runs one whack-a-mole session: the controller, its ECS systems
// and the overlay.
type GameScene struct {
	ecs      *ecs.ECS
	ctrl     *game.Controller
	overlay  *ui.OverlayUI
	recorder *systems.Recorder

	store    game.Store
	reporter game.ScoreReporter

	width, height int
	once          sync.Once
}

// NewGameScene creates the scene. reporter may be nil to disable score
// reporting.
func NewGameScene(width, height int, store game.Store, reporter game.ScoreReporter) *GameScene {
	return &GameScene{
		store:    store,
		reporter: reporter,
		width:    width,
		height:   height,
	}
}

func (gs *GameScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()
}

func (gs *GameScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

// Resize forwards a new logical screen size; the game reloads at that size.
func (gs *GameScene) Resize(width, height int) {
	if gs.ecs == nil {
		gs.width, gs.height = width, height
		return
	}
	systems.ResizeSession(gs.ecs, width, height)
}

func (gs *GameScene) configure() {
	gs.recorder = systems.NewRecorder()
	gs.overlay = ui.NewOverlayUI(func(target string) {
		gs.ctrl.Enqueue(game.OverlayClick(target))
	})

	seed := cfg.Debug.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gs.ctrl = game.NewController(game.Options{
		Settings: cfg.Game,
		Tuning:   cfg.Tuning,
		Palette:  cfg.Colors,
		Width:    gs.width,
		Height:   gs.height,
		Assets:   assets.Descriptors(),
		Loader:   assets.NewLoader(assets.FS(), cfg.Audio.SampleRate, cfg.Stage.SpawnArea),
		Overlay:  gs.overlay,
		Surface:  gs.recorder,
		Sink:     systems.NewAudioSink(systems.AudioContext()),
		Store:    gs.store,
		Reporter: gs.reporter,
		Volumes:  cfg.Volumes(),
		Rand:     rand.New(rand.NewSource(seed)),
	})

	e := ecs.NewECS(donburi.NewWorld())
	systems.NewSession(e, gs.ctrl, gs.width, gs.height)

	// Overlay first so button clicks are queued before input and the tick
	e.AddSystem(func(*ecs.ECS) { gs.overlay.Update() })
	e.AddSystem(systems.NewUpdateInput(gs.overlay.Blocked))
	e.AddSystem(systems.NewUpdateSession(gs.recorder))

	e.AddRenderer(cfg.Default, systems.NewDrawSession(gs.recorder, gs.overlay.CanvasAlpha))
	e.AddRenderer(cfg.Overlay, func(_ *ecs.ECS, screen *ebiten.Image) {
		gs.overlay.Draw(screen)
	})

	gs.ecs = e
	gs.ctrl.Load(context.Background())
}
