package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// testSheet encodes a 4x2 grid of 4px frames. Frame (col, row) is filled
// with red = col*40, green = row*40.
func testSheet(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x/4) * 40, G: uint8(y/4) * 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testSprite() config.SpriteConfig {
	return config.SpriteConfig{
		Sheet:       "sprites/test.png",
		FrameWidth:  4,
		FrameHeight: 4,
		Animations: map[string]config.AnimationConfig{
			"idle": {Row: 0, Frames: 2, FPS: 2},
			"walk": {Row: 1, Frames: 4, FPS: 8},
		},
	}
}

func frameColor(img image.Image) color.NRGBA {
	b := img.Bounds()
	return color.NRGBAModel.Convert(img.At(b.Min.X+1, b.Min.Y+1)).(color.NRGBA)
}

func TestStripProvider_Frames(t *testing.T) {
	blob := testSheet(t)
	p := NewStripProvider(testSprite())

	t.Run("walk row", func(t *testing.T) {
		frames, total, err := p.Frames(blob, "walk")
		require.NoError(t, err)
		require.Len(t, frames, 4)
		assert.Equal(t, 500*time.Millisecond, total)

		for i, f := range frames {
			assert.Equal(t, 125*time.Millisecond, f.Duration)
			assert.Equal(t, 4, f.Image.Bounds().Dx())
			assert.Equal(t, 4, f.Image.Bounds().Dy())
			assert.Equal(t, color.NRGBA{R: uint8(i) * 40, G: 40, A: 255}, frameColor(f.Image))
		}
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, _, err := p.Frames(blob, "pounce")
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	t.Run("more frames than the sheet holds", func(t *testing.T) {
		sprite := testSprite()
		sprite.Animations["walk"] = config.AnimationConfig{Row: 1, Frames: 5, FPS: 8}

		_, _, err := NewStripProvider(sprite).Frames(blob, "walk")
		assert.ErrorIs(t, err, ErrFrameRange)
	})

	t.Run("bad data", func(t *testing.T) {
		_, _, err := p.Frames([]byte("not a png"), "walk")
		assert.Error(t, err)
	})
}

func TestStripProvider_Image(t *testing.T) {
	blob := testSheet(t)
	p := NewStripProvider(testSprite())

	img, err := p.Image(blob, 5)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 40, G: 40, A: 255}, frameColor(img))

	_, err = p.Image(blob, 8)
	assert.ErrorIs(t, err, ErrFrameRange)

	_, err = p.Image(blob, -1)
	assert.ErrorIs(t, err, ErrFrameRange)
}

func TestLoadFrames(t *testing.T) {
	fsys := fstest.MapFS{"sprites/test.png": {Data: testSheet(t)}}

	t.Run("every tag", func(t *testing.T) {
		sprite := testSprite()
		frames, err := LoadFrames(fsys, sprite, NewStripProvider(sprite))
		require.NoError(t, err)
		assert.Len(t, frames["idle"], 2)
		assert.Len(t, frames["walk"], 4)
	})

	t.Run("still image without animations", func(t *testing.T) {
		sprite := testSprite()
		sprite.Animations = nil
		frames, err := LoadFrames(fsys, sprite, NewStripProvider(sprite))
		require.NoError(t, err)
		require.Len(t, frames[TagIdle], 1)
		assert.Equal(t, color.NRGBA{A: 255}, frameColor(frames[TagIdle][0].Image))
	})

	t.Run("missing sheet", func(t *testing.T) {
		sprite := testSprite()
		sprite.Sheet = "sprites/none.png"
		_, err := LoadFrames(fsys, sprite, NewStripProvider(sprite))
		assert.Error(t, err)
	})
}

func TestLoadImage(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png":   {Data: testSheet(t)},
		"bad.png": {Data: []byte("nope")},
	}

	img, err := LoadImage(fsys, "a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	_, err = LoadImage(fsys, "bad.png")
	assert.Error(t, err)

	_, err = LoadImage(fsys, "none.png")
	assert.Error(t, err)
}

func TestClip_Index(t *testing.T) {
	ms := time.Millisecond
	clip := &Clip{
		Durations: []time.Duration{100 * ms, 200 * ms, 100 * ms},
		Total:     400 * ms,
	}

	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, 0},
		{99 * ms, 0},
		{100 * ms, 1},
		{299 * ms, 1},
		{300 * ms, 2},
		{400 * ms, 0},
		{750 * ms, 2},
		{-50 * ms, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clip.Index(tt.at), "at %v", tt.at)
	}

	assert.Zero(t, (&Clip{}).Index(time.Second))
	assert.Nil(t, (&Clip{}).At(time.Second))
}

func TestSpriteSet_Clip(t *testing.T) {
	idle := &Clip{}
	walk := &Clip{}
	set := &SpriteSet{Clips: map[string]*Clip{TagIdle: idle, TagWalk: walk}}

	assert.Same(t, walk, set.Clip(TagWalk))
	assert.Same(t, idle, set.Clip("pounce"))
}

func TestLoadFonts(t *testing.T) {
	fonts, err := LoadFonts()
	require.NoError(t, err)
	require.NotNil(t, fonts.HUD)
	require.NotNil(t, fonts.Title)

	hw, hh := Measure(fonts.HUD, "Score 10")
	tw, th := Measure(fonts.Title, "Score 10")
	assert.Positive(t, hw)
	assert.Greater(t, tw, hw)
	assert.Greater(t, th, hh)
}
