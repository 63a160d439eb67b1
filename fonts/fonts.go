package fonts

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "goregular"
	Bold    FontName = "gobold"
)

// ErrUnknownFont is returned when a family has not been registered.
var ErrUnknownFont = errors.New("unknown font")

func (f FontName) Get() font.Face {
	return getFont(f)
}

// WithSize returns the face of f at the given pixel size.
func (f FontName) WithSize(size float64) font.Face {
	face, err := Face(string(f), size)
	if err != nil {
		panic(err)
	}
	return face
}

type faceKey struct {
	family string
	size   int
}

var (
	mu      sync.Mutex
	parsed  = map[string]*truetype.Font{}
	fonts   = map[FontName]font.Face{}
	bySize  = map[faceKey]font.Face{}
	builtin = map[FontName][]byte{
		Regular: goregular.TTF,
		Bold:    gobold.TTF,
	}
)

func LoadFont(name FontName, ttf []byte) {
	LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, err := Register(string(name), ttf)
	if err != nil {
		panic(err)
	}
	mu.Lock()
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	mu.Unlock()
}

// Register parses ttf and makes it available under family.
func Register(family string, ttf []byte) (*truetype.Font, error) {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", family, err)
	}
	mu.Lock()
	parsed[family] = fontData
	mu.Unlock()
	return fontData, nil
}

// Resolve makes sure family is usable, registering a built-in Go font when
// family names one. It returns the family to draw with.
func Resolve(family string) (string, error) {
	mu.Lock()
	_, ok := parsed[family]
	mu.Unlock()
	if ok {
		return family, nil
	}
	ttf, ok := builtin[FontName(family)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFont, family)
	}
	if _, err := Register(family, ttf); err != nil {
		return "", err
	}
	return family, nil
}

// Face returns a cached face of family at size, rounded to whole pixels.
func Face(family string, size float64) (font.Face, error) {
	key := faceKey{family: family, size: max(int(math.Round(size)), 1)}

	mu.Lock()
	if face, ok := bySize[key]; ok {
		mu.Unlock()
		return face, nil
	}
	fontData, ok := parsed[family]
	mu.Unlock()

	if !ok {
		if _, err := Resolve(family); err != nil {
			return nil, err
		}
		mu.Lock()
		fontData = parsed[family]
		mu.Unlock()
	}

	face := truetype.NewFace(fontData, &truetype.Options{Size: float64(key.size)})
	mu.Lock()
	bySize[key] = face
	mu.Unlock()
	return face, nil
}

func getFont(name FontName) font.Face {
	mu.Lock()
	f, ok := fonts[name]
	mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
