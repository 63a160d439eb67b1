package assets

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// bytesPerFrame is the size of one decoded sample frame: 16-bit stereo.
const bytesPerFrame = 4

// Clip is a fully decoded sound kept in memory so it can be played any number
// of times without decode lag.
type Clip struct {
	Name       string
	PCM        []byte
	SampleRate int
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	frames := len(c.PCM) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// DecodeClip decodes ogg or wav data, chosen by the extension of path, and
// resamples it to sampleRate.
func DecodeClip(path string, data []byte, sampleRate int) (*Clip, error) {
	var decoded []byte
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		decoded, err = io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
		}

	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		decoded, err = io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
		}

	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	return &Clip{Name: path, PCM: decoded, SampleRate: sampleRate}, nil
}
