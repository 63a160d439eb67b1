package main

import (
	"flag"
	"log"
	"time"

	"github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/fonts"
	"github.com/automoto/whackamole/game"
	"github.com/automoto/whackamole/leaderboard"
	"github.com/automoto/whackamole/scenes"
	"github.com/automoto/whackamole/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
	Resize(width, height int)
}

type Game struct {
	scene Scene
}

func NewGame(store game.Store, reporter game.ScoreReporter) *Game {
	fonts.LoadFont(fonts.Regular, goregular.TTF)
	fonts.LoadFontWithSize(fonts.Bold, gobold.TTF, 32)

	return &Game{
		scene: scenes.NewGameScene(config.C.Width, config.C.Height, store, reporter),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout keeps one logical pixel per window pixel; a new window size
// restarts the game at that size.
func (g *Game) Layout(width, height int) (int, int) {
	g.scene.Resize(width, height)
	return width, height
}

func main() {
	seed := flag.Int64("seed", 0, "Random seed (0 = seed from the clock)")
	resolution := flag.Int("resolution", -1, "Window size preset index (saved for next time)")
	fullscreen := flag.Bool("fullscreen", false, "Start in fullscreen (saved for next time)")
	boardURL := flag.String("leaderboard", config.Leaderboard.URL, "Leaderboard service URL (empty disables score reporting)")
	player := flag.String("player", config.Leaderboard.PlayerName, "Name submitted with scores")
	appName := flag.String("app", config.Persistence.AppName, "Persistence namespace")
	flag.Parse()

	config.Debug.Seed = *seed
	config.Leaderboard.URL = *boardURL
	config.Leaderboard.PlayerName = *player
	config.Persistence.AppName = *appName

	// Initialize persistence and load saved settings
	store, err := systems.OpenPrefs(config.Persistence.AppName)
	if err != nil {
		log.Printf("Warning: preferences will not be saved: %v", err)
	}
	settings := systems.SavedSettings{ResolutionIndex: -1}
	if saved := systems.LoadSettings(store); saved != nil {
		settings = *saved
	}
	if *resolution >= 0 || *fullscreen {
		if *resolution >= 0 {
			settings.ResolutionIndex = *resolution
		}
		settings.Fullscreen = *fullscreen
		_ = systems.SaveSettings(store, settings)
	}
	if i := settings.ResolutionIndex; i >= 0 && i < len(config.C.Resolutions) {
		config.C.Width = config.C.Resolutions[i].Width
		config.C.Height = config.C.Resolutions[i].Height
	}

	var reporter game.ScoreReporter
	if config.Leaderboard.URL != "" {
		client := leaderboard.NewClient(config.Leaderboard.URL, time.Duration(config.Leaderboard.TimeoutSec)*time.Second)
		reporter = leaderboard.NewReporter(client, config.Leaderboard.PlayerName)
	}

	ebiten.SetWindowTitle(config.Game.Name)
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.Fullscreen)

	if err := ebiten.RunGame(NewGame(store, reporter)); err != nil {
		log.Fatal(err)
	}
}
