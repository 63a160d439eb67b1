package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"log"
	"path"

	"github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

//go:embed all:images all:audio all:stages
var assetFS embed.FS

// FS returns the embedded game assets.
func FS() fs.FS {
	return assetFS
}

// ErrUnknownAssetType is returned for descriptors whose type no loader handles.
var ErrUnknownAssetType = errors.New("unknown asset type")

// Descriptors lists every asset the game needs, built from the configuration.
func Descriptors() []game.AssetDescriptor {
	descs := []game.AssetDescriptor{
		{Type: game.AssetImage, Name: game.ImageHappyMole, Source: "images/mole_happy.png"},
		{Type: game.AssetImage, Name: game.ImageAngryMole, Source: "images/mole_angry.png"},
	}
	for _, name := range []string{
		game.SoundWhack,
		game.SoundScore,
		game.SoundExtra,
		game.SoundAttack,
		game.SoundGameOver,
		game.SoundBackgroundMusic,
	} {
		descs = append(descs, game.AssetDescriptor{Type: game.AssetSound, Name: name, Source: config.Sound.Paths[name]})
	}
	descs = append(descs,
		game.AssetDescriptor{Type: game.AssetFont, Name: game.FontGame, Source: "gobold"},
		game.AssetDescriptor{Type: game.AssetStage, Name: game.StageMain, Source: config.Stage.Path},
	)
	return descs
}

// StageData is a stage map flattened for drawing.
type StageData struct {
	Name       string
	Width      int
	Height     int
	Background image.Image // nil when no layer is marked for rendering
	SpawnArea  game.Area
}

// StageLoader reads Tiled stage maps.
type StageLoader struct {
	fsys       fs.FS
	spawnGroup string
}

func NewStageLoader(fsys fs.FS, spawnGroup string) *StageLoader {
	return &StageLoader{fsys: fsys, spawnGroup: spawnGroup}
}

// LoadStage parses the map at stagePath. Image and tile layers with a true
// "render" property are flattened into the background, in map order.
func (l *StageLoader) LoadStage(stagePath string) (StageData, error) {
	stageMap, err := tiled.LoadFile(stagePath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return StageData{}, fmt.Errorf("failed to load stage %s: %w", stagePath, err)
	}

	stage := StageData{
		Name:      stagePath,
		Width:     stageMap.Width * stageMap.TileWidth,
		Height:    stageMap.Height * stageMap.TileHeight,
		SpawnArea: game.FullArea,
	}

	for _, og := range stageMap.ObjectGroups {
		if og.Name != l.spawnGroup || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		if stage.Width > 0 && stage.Height > 0 && o.Width > 0 && o.Height > 0 {
			w, h := float64(stage.Width), float64(stage.Height)
			stage.SpawnArea = game.Area{X: o.X / w, Y: o.Y / h, Width: o.Width / w, Height: o.Height / h}
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, stage.Width, stage.Height))
	drawn := false

	// Render image layers first (backgrounds)
	for _, imgLayer := range stageMap.ImageLayers {
		if !imgLayer.Properties.GetBool("render") || imgLayer.Image == nil {
			continue
		}
		imgPath := path.Join(path.Dir(stagePath), imgLayer.Image.Source)
		img, err := l.readImage(imgPath)
		if err != nil {
			log.Printf("Warning: Failed to load image layer %s: %v", imgLayer.Name, err)
			continue
		}
		offset := image.Pt(imgLayer.OffsetX, imgLayer.OffsetY)
		drawWithOpacity(canvas, img, offset, float64(imgLayer.Opacity))
		drawn = true
	}

	renderer, err := render.NewRendererWithFileSystem(stageMap, l.fsys)
	if err != nil {
		return StageData{}, fmt.Errorf("failed to create renderer for %s: %w", stagePath, err)
	}
	for i, layer := range stageMap.Layers {
		if !layer.Properties.GetBool("render") {
			continue
		}
		if err := renderer.RenderLayer(i); err != nil {
			log.Printf("Warning: Failed to render layer %d: %v", i, err)
			continue
		}
		drawWithOpacity(canvas, renderer.Result, image.Point{}, float64(layer.Opacity))
		renderer.Clear()
		drawn = true
	}

	if drawn {
		stage.Background = canvas
	}
	return stage, nil
}

func (l *StageLoader) readImage(p string) (image.Image, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	return img, nil
}

// drawWithOpacity composites src over dst. go-tiled reports a missing opacity
// as 1; fully transparent layers are skipped.
func drawWithOpacity(dst draw.Image, src image.Image, offset image.Point, opacity float64) {
	if opacity <= 0 {
		return
	}
	r := src.Bounds().Add(offset.Sub(src.Bounds().Min))
	if opacity >= 1 {
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	draw.DrawMask(dst, r, src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

// EbitenImage uploads img to the GPU.
func EbitenImage(img image.Image) game.Image {
	return ebiten.NewImageFromImage(img)
}
