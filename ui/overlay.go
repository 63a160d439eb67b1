package ui

import (
	"fmt"
	"math"

	"github.com/automoto/whackamole/game"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OverlayState is the widget-independent half of the overlay: everything the
// game has told it, plus the eased values derived from that. It implements
// game.Overlay.
type OverlayState struct {
	Banner       string
	Button       string
	Instructions game.Instructions
	Score        uint
	Lives        int
	Muted        bool
	Paused       bool

	visible map[string]bool

	progress      int
	shownProgress float32
	progressTween *gween.Tween
	easeSec       float32

	canvasAlpha float32
	fade        *gween.Tween
	fadeSec     float32
}

// NewOverlayState creates an empty overlay. fadeSec is the canvas fade-in
// time and easeSec the time the loading readout takes to reach a new value.
func NewOverlayState(fadeSec, easeSec float32) *OverlayState {
	return &OverlayState{
		visible: make(map[string]bool),
		fadeSec: fadeSec,
		easeSec: easeSec,
	}
}

func (s *OverlayState) SetProgress(percent int) {
	percent = max(0, min(percent, 100))
	s.progress = percent
	if percent == 0 || s.easeSec <= 0 {
		s.shownProgress = float32(percent)
		s.progressTween = nil
		return
	}
	s.progressTween = gween.New(s.shownProgress, float32(percent), s.easeSec, ease.Linear)
}

func (s *OverlayState) SetBanner(text string) {
	s.Banner = text
	s.visible[game.OverlayBanner] = true
}

func (s *OverlayState) SetButton(text string) {
	s.Button = text
	s.visible[game.OverlayButton] = true
}

func (s *OverlayState) SetInstructions(in game.Instructions) { s.Instructions = in }
func (s *OverlayState) SetScore(score uint)                  { s.Score = score }
func (s *OverlayState) SetLives(lives int)                   { s.Lives = lives }
func (s *OverlayState) SetMute(muted bool)                   { s.Muted = muted }
func (s *OverlayState) SetPause(paused bool)                 { s.Paused = paused }

func (s *OverlayState) Show(keys ...string) {
	for _, k := range keys {
		if k == game.OverlayCanvas && !s.visible[k] {
			s.canvasAlpha, s.fade = 1, nil
			if s.fadeSec > 0 {
				s.canvasAlpha = 0
				s.fade = gween.New(0, 1, s.fadeSec, ease.OutQuad)
			}
		}
		s.visible[k] = true
	}
}

func (s *OverlayState) Hide(keys ...string) {
	for _, k := range keys {
		if k == game.OverlayCanvas {
			s.canvasAlpha = 0
			s.fade = nil
		}
		s.visible[k] = false
	}
}

// Visible reports whether key is shown.
func (s *OverlayState) Visible(key string) bool {
	return s.visible[key]
}

// Update advances the fade and the loading readout by dt seconds.
func (s *OverlayState) Update(dt float32) {
	if s.progressTween != nil {
		v, done := s.progressTween.Update(dt)
		s.shownProgress = v
		if done {
			s.progressTween = nil
		}
	}

	if s.fade != nil {
		v, done := s.fade.Update(dt)
		s.canvasAlpha = v
		if done {
			s.canvasAlpha = 1
			s.fade = nil
		}
	}
}

// CanvasAlpha is the opacity the game surface is drawn with.
func (s *OverlayState) CanvasAlpha() float32 {
	if !s.visible[game.OverlayCanvas] {
		return 0
	}
	return s.canvasAlpha
}

// ProgressText is the loading readout.
func (s *OverlayState) ProgressText() string {
	return fmt.Sprintf("Loading... %d%%", int(math.Round(float64(s.shownProgress))))
}

// InstructionsText picks the variant for the current device.
func (s *OverlayState) InstructionsText(mobile bool) string {
	if mobile {
		return s.Instructions.Mobile
	}
	return s.Instructions.Desktop
}

func (s *OverlayState) ScoreText() string { return fmt.Sprintf("Score: %d", s.Score) }
func (s *OverlayState) LivesText() string { return fmt.Sprintf("Lives: %d", s.Lives) }

// MuteText labels the mute toggle with the action it performs.
func (s *OverlayState) MuteText() string {
	if s.Muted {
		return "Unmute"
	}
	return "Mute"
}

// PauseText labels the pause toggle with the action it performs.
func (s *OverlayState) PauseText() string {
	if s.Paused {
		return "Resume"
	}
	return "Pause"
}

var _ game.Overlay = (*OverlayState)(nil)
