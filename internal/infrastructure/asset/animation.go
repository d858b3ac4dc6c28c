// Package asset loads images, sprite animations and fonts for rendering.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"github.com/disintegration/imaging"

	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

var (
	ErrUnknownTag = errors.New("unknown animation tag")
	ErrFrameRange = errors.New("frame outside sheet")
)

// Frame is one decoded animation frame
type Frame struct {
	Image    image.Image
	Duration time.Duration
}

// AnimationProvider decodes animation frames from an encoded sheet
type AnimationProvider interface {
	// Frames returns the frames of tag and the total cycle length
	Frames(blob []byte, tag string) ([]Frame, time.Duration, error)
	// Image returns a single frame by index, counted row-major over the sheet
	Image(blob []byte, index int) (image.Image, error)
}

// StripProvider reads PNG sheets laid out as one animation per row with
// fixed-size frames
type StripProvider struct {
	sprite config.SpriteConfig
}

// NewStripProvider creates a provider for sheets described by sprite
func NewStripProvider(sprite config.SpriteConfig) *StripProvider {
	return &StripProvider{sprite: sprite}
}

// Frames implements AnimationProvider
func (p *StripProvider) Frames(blob []byte, tag string) ([]Frame, time.Duration, error) {
	anim, ok := p.sprite.Animations[tag]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	sheet, err := decode(blob)
	if err != nil {
		return nil, 0, err
	}

	fps := max(1, anim.FPS)
	each := time.Second / time.Duration(fps)
	frames := make([]Frame, 0, anim.Frames)
	for i := 0; i < anim.Frames; i++ {
		img, err := p.crop(sheet, i, anim.Row)
		if err != nil {
			return nil, 0, fmt.Errorf("animation %q: %w", tag, err)
		}
		frames = append(frames, Frame{Image: img, Duration: each})
	}
	return frames, each * time.Duration(len(frames)), nil
}

// Image implements AnimationProvider
func (p *StripProvider) Image(blob []byte, index int) (image.Image, error) {
	sheet, err := decode(blob)
	if err != nil {
		return nil, err
	}
	cols := sheet.Bounds().Dx() / max(1, p.sprite.FrameWidth)
	if cols == 0 || index < 0 {
		return nil, fmt.Errorf("%w: index %d", ErrFrameRange, index)
	}
	return p.crop(sheet, index%cols, index/cols)
}

func (p *StripProvider) crop(sheet image.Image, col, row int) (image.Image, error) {
	w, h := p.sprite.FrameWidth, p.sprite.FrameHeight
	b := sheet.Bounds()
	r := image.Rect(col*w, row*h, (col+1)*w, (row+1)*h).Add(b.Min)
	if w <= 0 || h <= 0 || !r.In(b) {
		return nil, fmt.Errorf("%w: col %d row %d", ErrFrameRange, col, row)
	}
	return imaging.Crop(sheet, r), nil
}

func decode(blob []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	return img, nil
}
