package asset

import (
	"bytes"
	"fmt"
	"image"
	"io/fs"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// Registry holds every image the playing scene draws. It is built once
// per stage load and read-only afterwards, apart from the tile cache.
type Registry struct {
	atlas    *ebiten.Image
	tileSize int
	tiles    map[entity.AtlasCoord]*ebiten.Image

	Cat        *SpriteSet
	Mouse      *SpriteSet
	BonusMouse *SpriteSet
}

// NewRegistry loads the stage atlas and the actor sprite sheets from fsys
func NewRegistry(fsys fs.FS, stage *entity.Stage, entities *config.EntitiesConfig) (*Registry, error) {
	r := &Registry{
		tileSize: stage.TileSize,
		tiles:    make(map[entity.AtlasCoord]*ebiten.Image),
	}

	if stage.Atlas != "" {
		img, err := LoadImage(fsys, stage.Atlas)
		if err != nil {
			return nil, err
		}
		r.atlas = ebiten.NewImageFromImage(img)
	}

	var err error
	if r.Cat, err = loadSpriteSet(fsys, entities.Player.Sprite); err != nil {
		return nil, fmt.Errorf("player sprite: %w", err)
	}
	if r.Mouse, err = loadSpriteSet(fsys, entities.Mouse.Sprite); err != nil {
		return nil, fmt.Errorf("mouse sprite: %w", err)
	}
	if r.BonusMouse, err = loadSpriteSet(fsys, entities.Mouse.BonusSprite); err != nil {
		return nil, fmt.Errorf("bonus mouse sprite: %w", err)
	}
	return r, nil
}

// Tile returns the atlas cell for c, nil when there is no atlas or the
// cell lies outside it
func (r *Registry) Tile(c entity.AtlasCoord) *ebiten.Image {
	if r.atlas == nil {
		return nil
	}
	if img, ok := r.tiles[c]; ok {
		return img
	}

	s := r.tileSize
	rect := image.Rect(c.Col*s, c.Row*s, (c.Col+1)*s, (c.Row+1)*s)
	var img *ebiten.Image
	if rect.In(r.atlas.Bounds()) {
		img = r.atlas.SubImage(rect).(*ebiten.Image)
	}
	r.tiles[c] = img
	return img
}

// Sprites returns the sprite set for an actor
func (r *Registry) Sprites(a *entity.Actor) *SpriteSet {
	switch {
	case a.Kind == entity.ActorCat:
		return r.Cat
	case a.IsBonus():
		return r.BonusMouse
	default:
		return r.Mouse
	}
}

// LoadImage reads and decodes an image from fsys
func LoadImage(fsys fs.FS, path string) (image.Image, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFrames decodes every animation of a sprite sheet, keyed by tag
func LoadFrames(fsys fs.FS, sprite config.SpriteConfig, provider AnimationProvider) (map[string][]Frame, error) {
	blob, err := fs.ReadFile(fsys, sprite.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sprite.Sheet, err)
	}

	tags := make([]string, 0, len(sprite.Animations))
	for tag := range sprite.Animations {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	out := make(map[string][]Frame, len(tags))
	for _, tag := range tags {
		frames, _, err := provider.Frames(blob, tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sprite.Sheet, err)
		}
		out[tag] = frames
	}
	if len(out) == 0 {
		// No animations: the first frame is the still image
		img, err := provider.Image(blob, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sprite.Sheet, err)
		}
		out[TagIdle] = []Frame{{Image: img}}
	}
	return out, nil
}

func loadSpriteSet(fsys fs.FS, sprite config.SpriteConfig) (*SpriteSet, error) {
	frames, err := LoadFrames(fsys, sprite, NewStripProvider(sprite))
	if err != nil {
		return nil, err
	}

	set := &SpriteSet{
		Clips:  make(map[string]*Clip, len(frames)),
		Width:  sprite.FrameWidth,
		Height: sprite.FrameHeight,
	}
	for tag, ff := range frames {
		clip := &Clip{}
		for _, f := range ff {
			clip.Frames = append(clip.Frames, ebiten.NewImageFromImage(f.Image))
			clip.Durations = append(clip.Durations, f.Duration)
			clip.Total += f.Duration
		}
		set.Clips[tag] = clip
	}
	return set, nil
}
