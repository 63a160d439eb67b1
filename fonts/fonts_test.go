package fonts

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceResolvesBuiltin(t *testing.T) {
	face, err := Face(string(Bold), 30.4)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Face(string(Bold), 29.6)
	if err != nil {
		t.Fatal(err)
	}
	if face != again {
		t.Error("sizes rounding to the same pixel size should share a face")
	}
	if face.Metrics().Height <= 0 {
		t.Error("face has no height")
	}
}

func TestFaceUnknownFamily(t *testing.T) {
	_, err := Face("comic-sans", 12)
	if !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("expected ErrUnknownFont, got %v", err)
	}
}

func TestRegisterRejectsGarbage(t *testing.T) {
	if _, err := Register("broken", []byte("not a font")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFontWithSize(t *testing.T) {
	LoadFontWithSize("hud", goregular.TTF, 18)
	if FontName("hud").Get() == nil {
		t.Fatal("expected a face")
	}
	if got, err := Resolve("hud"); err != nil || got != "hud" {
		t.Errorf("Resolve(hud) = %q, %v", got, err)
	}
}
