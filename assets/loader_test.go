package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"
	"time"

	"github.com/automoto/whackamole/game"
)

func rawImage(img image.Image) game.Image { return img }

func newTestLoader() *Loader {
	l := NewLoader(FS(), 44100, "SpawnArea")
	l.NewImage = rawImage
	return l
}

func TestLoaderLoadsEmbeddedAssets(t *testing.T) {
	var progress []int
	bundle, err := newTestLoader().Load(context.Background(), Descriptors(), func(p game.Progress) {
		progress = append(progress, p.Percent)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(progress) != len(Descriptors()) || progress[len(progress)-1] != 100 {
		t.Errorf("progress = %v", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Fatalf("progress went backwards: %v", progress)
		}
	}

	if img := bundle.Image(game.ImageHappyMole); img == nil || img.Bounds().Dx() != 60 {
		t.Errorf("happy mole image = %v", img)
	}
	clip := bundle.Clip(game.SoundWhack)
	if clip == nil {
		t.Fatal("whack sound missing")
	}
	if d := clip.Duration(); d < 100*time.Millisecond || d > 140*time.Millisecond {
		t.Errorf("whack duration = %v, want about 120ms", d)
	}
	if got := bundle.Font(game.FontGame); got != "gobold" {
		t.Errorf("font family = %q", got)
	}

	stage, ok := bundle.Stage(game.StageMain)
	if !ok {
		t.Fatal("stage missing")
	}
	if stage.Background == nil || stage.Background.Bounds().Dx() != 800 {
		t.Fatalf("stage background = %v", stage.Background)
	}
	want := game.Area{X: 40.0 / 800, Y: 160.0 / 600, Width: 720.0 / 800, Height: 400.0 / 600}
	if stage.SpawnArea != want {
		t.Errorf("spawn area = %+v, want %+v", stage.SpawnArea, want)
	}
}

func TestStageFlattensLayers(t *testing.T) {
	st, err := NewStageLoader(FS(), "SpawnArea").LoadStage("stages/meadow.tmx")
	if err != nil {
		t.Fatal(err)
	}
	if st.Width != 800 || st.Height != 600 {
		t.Fatalf("size = %dx%d", st.Width, st.Height)
	}

	bg := st.Background
	if got := color.RGBAModel.Convert(bg.At(0, 0)).(color.RGBA); got != (color.RGBA{R: 110, G: 180, B: 255, A: 255}) {
		t.Errorf("sky pixel = %+v", got)
	}
	// center of the mound tile at column 17, row 3
	if got := color.RGBAModel.Convert(bg.At(17*40+20, 3*40+26)).(color.RGBA); got != (color.RGBA{R: 100, G: 70, B: 40, A: 255}) {
		t.Errorf("mound pixel = %+v", got)
	}
}

const bareStage = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="10" tileheight="10" infinite="0">
 <objectgroup id="1" name="Other">
  <object id="1" x="1" y="1" width="5" height="5"/>
 </objectgroup>
</map>
`

func TestStageWithoutRenderedLayers(t *testing.T) {
	fsys := fstest.MapFS{"bare.tmx": {Data: []byte(bareStage)}}

	st, err := NewStageLoader(fsys, "SpawnArea").LoadStage("bare.tmx")
	if err != nil {
		t.Fatal(err)
	}
	if st.Background != nil {
		t.Error("no layer is marked for rendering")
	}
	if st.SpawnArea != game.FullArea {
		t.Errorf("spawn area = %+v, want the full screen", st.SpawnArea)
	}
}

func TestLoaderFailsWholeBatch(t *testing.T) {
	descs := []game.AssetDescriptor{
		{Type: game.AssetImage, Name: game.ImageHappyMole, Source: "images/mole_happy.png"},
		{Type: game.AssetSound, Name: game.SoundWhack, Source: "audio/sfx/missing.wav"},
	}
	bundle, err := newTestLoader().Load(context.Background(), descs, nil)
	if err == nil {
		t.Fatal("expected an error for the missing sound")
	}
	if bundle != nil {
		t.Error("a failed batch returns no bundle")
	}
}

func TestLoaderUnknownType(t *testing.T) {
	descs := []game.AssetDescriptor{{Type: "shader", Name: "tint", Source: "tint.kage"}}
	_, err := newTestLoader().Load(context.Background(), descs, nil)
	if !errors.Is(err, ErrUnknownAssetType) {
		t.Fatalf("expected ErrUnknownAssetType, got %v", err)
	}
}

func TestLoaderHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestLoader().Load(ctx, Descriptors(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeClipRejectsUnknownFormat(t *testing.T) {
	if _, err := DecodeClip("theme.mp3", []byte{1, 2, 3}, 44100); err == nil {
		t.Fatal("expected an error")
	}
}

func TestClipDuration(t *testing.T) {
	c := &Clip{PCM: make([]byte, 44100*bytesPerFrame/2), SampleRate: 44100}
	if d := c.Duration(); d != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", d)
	}
	if d := (&Clip{PCM: make([]byte, 8)}).Duration(); d != 0 {
		t.Errorf("zero sample rate gives %v", d)
	}
}

func TestDrawWithOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src := image.NewUniform(color.RGBA{R: 200, A: 255})
	drawWithOpacity(dst, image.NewRGBA(image.Rect(0, 0, 0, 0)), image.Point{}, 1)

	tile := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tile.Set(x, y, src.C)
		}
	}
	drawWithOpacity(dst, tile, image.Point{}, 0)
	if dst.RGBAAt(0, 0).A != 0 {
		t.Error("transparent layers must be skipped")
	}
	drawWithOpacity(dst, tile, image.Point{}, 0.5)
	if a := dst.RGBAAt(1, 1).A; a < 120 || a > 135 {
		t.Errorf("alpha = %d, want about half", a)
	}
}
