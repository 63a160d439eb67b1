package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io/fs"

	"github.com/automoto/whackamole/fonts"
	"github.com/automoto/whackamole/game"
)

// Loader resolves asset descriptors against a file system. It implements
// game.Loader and is safe to run off the game goroutine.
type Loader struct {
	fsys       fs.FS
	sampleRate int
	stages     *StageLoader

	// NewImage converts decoded pixels into a drawable image.
	NewImage func(image.Image) game.Image
}

// NewLoader creates a loader decoding sounds at sampleRate.
func NewLoader(fsys fs.FS, sampleRate int, spawnGroup string) *Loader {
	return &Loader{
		fsys:       fsys,
		sampleRate: sampleRate,
		stages:     NewStageLoader(fsys, spawnGroup),
		NewImage:   EbitenImage,
	}
}

// Load resolves every descriptor in order, reporting percent progress after
// each one. The whole batch fails on the first asset that fails.
func (l *Loader) Load(ctx context.Context, descriptors []game.AssetDescriptor, progress func(game.Progress)) (game.Bundle, error) {
	bundle := game.Bundle{}
	total := len(descriptors)

	for i, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := l.loadOne(d)
		if err != nil {
			return nil, fmt.Errorf("load %s %q: %w", d.Type, d.Name, err)
		}
		bundle.Put(d.Type, d.Name, v)

		if progress != nil {
			progress(game.Progress{Percent: (i + 1) * 100 / total})
		}
	}
	return bundle, nil
}

func (l *Loader) loadOne(d game.AssetDescriptor) (any, error) {
	switch d.Type {
	case game.AssetImage:
		data, err := fs.ReadFile(l.fsys, d.Source)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", d.Source, err)
		}
		return l.NewImage(img), nil

	case game.AssetSound:
		data, err := fs.ReadFile(l.fsys, d.Source)
		if err != nil {
			return nil, err
		}
		return DecodeClip(d.Source, data, l.sampleRate)

	case game.AssetFont:
		return fonts.Resolve(d.Source)

	case game.AssetStage:
		st, err := l.stages.LoadStage(d.Source)
		if err != nil {
			return nil, err
		}
		stage := game.Stage{SpawnArea: st.SpawnArea}
		if st.Background != nil {
			stage.Background = l.NewImage(st.Background)
		}
		return stage, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAssetType, d.Type)
}
