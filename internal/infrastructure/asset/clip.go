package asset

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clip is a looping animation ready to draw
type Clip struct {
	Frames    []*ebiten.Image
	Durations []time.Duration
	Total     time.Duration
}

// Index returns the frame shown t into the loop
func (c *Clip) Index(t time.Duration) int {
	if len(c.Durations) == 0 || c.Total <= 0 {
		return 0
	}
	t %= c.Total
	if t < 0 {
		t += c.Total
	}
	for i, d := range c.Durations {
		if t < d {
			return i
		}
		t -= d
	}
	return len(c.Durations) - 1
}

// At returns the frame image shown t into the loop
func (c *Clip) At(t time.Duration) *ebiten.Image {
	if len(c.Frames) == 0 {
		return nil
	}
	return c.Frames[c.Index(t)]
}

// SpriteSet holds the clips of one actor kind by tag
type SpriteSet struct {
	Clips  map[string]*Clip
	Width  int
	Height int
}

// Clip returns the clip for tag, falling back to idle
func (s *SpriteSet) Clip(tag string) *Clip {
	if c, ok := s.Clips[tag]; ok {
		return c
	}
	return s.Clips[TagIdle]
}

// Animation tags
const (
	TagIdle = "idle"
	TagWalk = "walk"
)
