package game

import (
	"context"
	"image"
	"image/color"
)

// Image is a drawable resolved image resource.
type Image interface {
	Bounds() image.Rectangle
}

// FontSpec selects a font family and pixel size for text drawing.
type FontSpec struct {
	Family string
	Size   float64
}

// Surface is the rendering surface. The core issues only these primitive calls.
type Surface interface {
	FillRect(box Box, c color.Color)
	DrawImage(img Image, box Box)
	DrawText(text string, font FontSpec, at Point, c color.Color)
}

// Overlay keys accepted by Show and Hide.
const (
	OverlayLoading      = "loading"
	OverlayBanner       = "banner"
	OverlayButton       = "button"
	OverlayInstructions = "instructions"
	OverlayScore        = "score"
	OverlayLives        = "lives"
	OverlayMute         = "mute"
	OverlayPause        = "pause"
	OverlayStats        = "stats"
	OverlayCanvas       = "canvas" // the game surface itself; shown with a fade-in
)

// Instructions holds the desktop and mobile variants of the how-to-play text.
type Instructions struct {
	Desktop string
	Mobile  string
}

// Overlay is the text-and-visibility sink drawn above the game surface.
// Calls are fire-and-forget. SetBanner and SetButton also make their element
// visible.
type Overlay interface {
	SetProgress(percent int)
	SetBanner(text string)
	SetButton(text string)
	SetInstructions(in Instructions)
	SetScore(score uint)
	SetLives(lives int)
	SetMute(muted bool)
	SetPause(paused bool)
	Show(keys ...string)
	Hide(keys ...string)
}

// Store is the key-value persistence used for the mute preference.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ScoreReporter receives the final score when a game ends. Implementations
// must not block the caller.
type ScoreReporter interface {
	ReportScore(score uint)
}

// AssetType is the kind of an asset descriptor.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetSound AssetType = "sound"
	AssetFont  AssetType = "font"
	AssetStage AssetType = "stage"
)

// AssetDescriptor names one asset to load.
type AssetDescriptor struct {
	Type   AssetType
	Name   string
	Source string
}

// Progress is reported while a batch loads.
type Progress struct {
	Percent int
}

// Bundle maps asset type to name to resolved resource.
type Bundle map[AssetType]map[string]any

// Put stores a resolved resource.
func (b Bundle) Put(t AssetType, name string, v any) {
	if b[t] == nil {
		b[t] = make(map[string]any)
	}
	b[t][name] = v
}

// Image returns the named image, if present.
func (b Bundle) Image(name string) Image {
	img, _ := b[AssetImage][name].(Image)
	return img
}

// Clip returns the named sound, if present.
func (b Bundle) Clip(name string) Clip {
	clip, _ := b[AssetSound][name].(Clip)
	return clip
}

// Font returns the family registered under name, or name itself.
func (b Bundle) Font(name string) string {
	if family, ok := b[AssetFont][name].(string); ok {
		return family
	}
	return name
}

// Stage returns the named stage layout.
func (b Bundle) Stage(name string) (Stage, bool) {
	st, ok := b[AssetStage][name].(Stage)
	return st, ok
}

// Stage is the playfield layout read from a stage map.
type Stage struct {
	Background Image // nil when the map has no rendered image layer
	SpawnArea  Area
}

// Loader resolves a batch of asset descriptors. The whole batch fails if any
// single asset fails.
type Loader interface {
	Load(ctx context.Context, descriptors []AssetDescriptor, progress func(Progress)) (Bundle, error)
}
