package config

import "github.com/automoto/whackamole/game"

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate  int
	MusicVolume float64
	SFXVolume   float64
	// How often a playback watcher checks for natural completion
	CompletionPollMs int
}

// SoundConfig maps sound names to embedded file paths
type SoundConfig struct {
	Paths             map[string]string
	VolumeMultipliers map[string]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:       44100,
		MusicVolume:      0.5,
		SFXVolume:        1.0,
		CompletionPollMs: 50,
	}

	Sound = SoundConfig{
		Paths: map[string]string{
			game.SoundWhack:           "audio/sfx/whack.wav",
			game.SoundScore:           "audio/sfx/score.wav",
			game.SoundExtra:           "audio/sfx/extra.wav",
			game.SoundAttack:          "audio/sfx/attack.wav",
			game.SoundGameOver:        "audio/sfx/game_over.wav",
			game.SoundBackgroundMusic: "audio/music/background.wav",
		},
		VolumeMultipliers: map[string]float64{
			game.SoundBackgroundMusic: 0.6,
			game.SoundAttack:          1.2,
		},
	}
}

// Volume returns the playback volume for the named sound.
func Volume(name string) float64 {
	base := Audio.SFXVolume
	if name == game.SoundBackgroundMusic {
		base = Audio.MusicVolume
	}
	if m, ok := Sound.VolumeMultipliers[name]; ok {
		base *= m
	}
	return base
}

// Volumes returns the volume of every configured sound.
func Volumes() map[string]float64 {
	out := make(map[string]float64, len(Sound.Paths))
	for name := range Sound.Paths {
		out[name] = Volume(name)
	}
	return out
}
