package config

import (
	"image/color"

	"github.com/automoto/whackamole/game"
	"github.com/yohamta/donburi/ecs"
)

// LeaderboardConfig points the game at an optional remote leaderboard
type LeaderboardConfig struct {
	URL        string // empty disables score reporting
	PlayerName string
	TimeoutSec int
}

// PersistenceConfig names the gdata application namespace
type PersistenceConfig struct {
	AppName string
}

// StageConfig locates the stage map inside the embedded assets
type StageConfig struct {
	Path      string
	SpawnArea string // object group holding the spawn rectangle
}

// Resolution represents a window size option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// UIConfig contains overlay sizes and timings
type UIConfig struct {
	BannerSize float64
	ButtonSize float64
	LabelSize  float64
	SmallSize  float64

	CanvasFadeSec   float32 // fade-in of the playfield once assets are ready
	ProgressEaseSec float32 // easing of the loading readout toward its target
}

// Config holds general window configuration
type Config struct {
	Width       int
	Height      int
	Resolutions []Resolution
}

// Render layers
const (
	Default ecs.LayerID = iota
	Overlay
)

// Global configuration instances
var C *Config
var Game game.Settings
var Colors game.Palette
var Tuning game.Tuning
var Stage StageConfig
var Leaderboard LeaderboardConfig
var Persistence PersistenceConfig
var Debug DebugConfig
var UI UIConfig

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Seed int64 // 0 = seed from the clock
}

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Grass      = color.RGBA{R: 72, G: 140, B: 60, A: 255}
	Gold       = color.RGBA{R: 255, G: 200, B: 40, A: 255}
	LightRed   = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	SkyBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkPanel  = color.RGBA{R: 20, G: 20, B: 30, A: 200}
	ButtonIdle = color.RGBA{R: 40, G: 100, B: 40, A: 255}
	ButtonOver = color.RGBA{R: 60, G: 130, B: 60, A: 255}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
		Resolutions: []Resolution{
			{Width: 800, Height: 600, Label: "800 x 600"},
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
	}

	Game = game.Settings{
		Name:            "Whack-a-Mole",
		Lives:           3,
		MaxTargets:      5,
		AggressionLevel: 1,

		StartText:    "Start",
		GameOverText: "Game Over",
		PauseText:    "Paused",

		InstructionsDesktop: "Click the moles before they get too big! Space to pause, M to mute.",
		InstructionsMobile:  "Tap the moles before they get too big!",

		FontFamily: game.FontGame,

		Reactions: []string{"Ouch!", "Hey!", "Oof!", "Rude!", "Argh!", "Bonk!"},

		PauseCode: CodePause,
		MuteCode:  CodeMute,
	}

	Colors = game.Palette{
		Primary:  Grass,
		Text:     White,
		Point:    Gold,
		Reaction: White,
		Extra:    LightRed,
	}

	Tuning = game.Tuning{
		SpawnInterval:  60,  // ~1 second at 60fps
		AttackInterval: 120, // ~2 seconds at 60fps

		MoleBaseWidth:  60,
		MoleBaseHeight: 50,
		MoleSpeed:      50,

		RecoilShrink: 3,
		AngryLunge:   10,
		GrowInStep:   1,
		SpawnShrink:  0.1,

		ScreenScaleFactor: 0.003,
		MotionConstant:    0.01,

		SpawnDistanceFactor: 2,
		PlacementAttempts:   game.DefaultMaxAttempts,

		BaseScore:  10,
		ExtraEvery: 250,
		ExtraBand:  10,

		MoleReaction:  game.ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 30, FontSizeMax: 90, MinAlpha: 0.25},
		ScoreReaction: game.ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 30, FontSizeMax: 90, MinAlpha: 0},
		ExtraReaction: game.ReactionStyle{SpeedMin: 2, SpeedMax: 4, FontSizeMin: 90, FontSizeMax: 90, MinAlpha: 0.5},
	}

	UI = UIConfig{
		BannerSize: 48,
		ButtonSize: 24,
		LabelSize:  20,
		SmallSize:  14,

		CanvasFadeSec:   0.6,
		ProgressEaseSec: 0.25,
	}

	Stage = StageConfig{
		Path:      "stages/meadow.tmx",
		SpawnArea: "SpawnArea",
	}

	Leaderboard = LeaderboardConfig{
		URL:        "",
		PlayerName: "player",
		TimeoutSec: 5,
	}

	Persistence = PersistenceConfig{
		AppName: "whackamole",
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		Seed: 0,
	}
}
