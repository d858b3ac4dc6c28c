package system

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/younwookim/catscapade/internal/domain/entity"
)

const (
	tagPlayer = "player"
	tagMouse  = "mouse"
)

// CaptureSystem finds mice touching the player. A resolv space over the
// stage bounds narrows candidates to shared cells before the exact
// rectangle test.
type CaptureSystem struct {
	space  *resolv.Space
	origin entity.Vec2
}

// NewCaptureSystem creates a space covering the stage.
// resolv cells start at zero so objects are stored relative to the grid origin.
func NewCaptureSystem(stage *entity.Stage) *CaptureSystem {
	b := stage.Bounds()
	cell := max(1, int(stage.CellSize()))
	return &CaptureSystem{
		space:  resolv.NewSpace(int(math.Ceil(b.W)), int(math.Ceil(b.H)), cell, cell),
		origin: entity.Vec2{X: b.X, Y: b.Y},
	}
}

// Track adds an actor to the space and returns its object
func (s *CaptureSystem) Track(a *entity.Actor) *resolv.Object {
	tag := tagMouse
	if a.Kind == entity.ActorCat {
		tag = tagPlayer
	}
	local := a.Position.Sub(s.origin)
	obj := resolv.NewObject(local.X, local.Y, a.Size.X, a.Size.Y, tag)
	obj.Data = a
	s.space.Add(obj)
	return obj
}

// Sync moves an object to its actor's current position
func (s *CaptureSystem) Sync(obj *resolv.Object) {
	a, ok := obj.Data.(*entity.Actor)
	if !ok {
		return
	}
	local := a.Position.Sub(s.origin)
	obj.X = local.X
	obj.Y = local.Y
	obj.Update()
}

// Untrack removes an object from the space
func (s *CaptureSystem) Untrack(obj *resolv.Object) {
	s.space.Remove(obj)
}

// Captures returns the mice whose rectangles overlap the player's
func (s *CaptureSystem) Captures(player *resolv.Object) []*entity.Actor {
	cat, ok := player.Data.(*entity.Actor)
	if !ok {
		return nil
	}
	check := player.Check(0, 0, tagMouse)
	if check == nil {
		return nil
	}

	var caught []*entity.Actor
	for _, obj := range check.ObjectsByTags(tagMouse) {
		mouse, ok := obj.Data.(*entity.Actor)
		if ok && cat.Rect().Overlaps(mouse.Rect()) {
			caught = append(caught, mouse)
		}
	}
	return caught
}
