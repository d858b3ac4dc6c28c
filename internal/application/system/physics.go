package system

import (
	"math"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// cornerInset pulls right and bottom samples inside the rectangle so an
// actor flush against a wall does not sample the wall cell
const cornerInset = 1e-6

// PhysicsSystem moves actors through the tile grid
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
	}
}

// Move integrates one frame of intent for an actor
func (s *PhysicsSystem) Move(a *entity.Actor, intent entity.Vec2, dt float64) {
	a.Velocity = a.Velocity.Add(intent.Scale(a.Acceleration * dt))

	a.Position, a.Velocity = s.Resolve(a.Position, a.Size, a.Velocity)

	a.Velocity = a.Velocity.Scale(a.Damping)
	eps := s.config.Movement.Epsilon
	if math.Abs(a.Velocity.X) < eps && math.Abs(a.Velocity.Y) < eps {
		a.Velocity = entity.Vec2{}
	}

	// Keep the last facing while idle
	if !intent.IsZero() {
		a.Facing = intent.Angle()
		a.LastIntent = intent
	}
}

// Resolve applies displacement disp to a rectangle at pos and returns the
// corrected position and the displacement with any blocked axis zeroed.
//
// Corners are tested in the order top-left, top-right, bottom-left,
// bottom-right; only the first one that lands in a solid or out-of-grid
// cell is resolved. The axis that carried the corner into that cell is
// clamped to the cell edge and zeroed, the other keeps its full
// displacement so actors slide along walls.
func (s *PhysicsSystem) Resolve(pos, size, disp entity.Vec2) (entity.Vec2, entity.Vec2) {
	target := pos.Add(disp)

	for _, c := range rectCorners(size) {
		p := sample(target, size, c)
		if !s.stage.IsSolidAt(p.X, p.Y) {
			continue
		}

		tx, ty := s.stage.TileCoord(p.X, p.Y)
		cell := s.stage.CellRect(tx, ty)
		resolved, vel, boundX := s.clampToCell(pos, size, disp, c, cell)

		if s.isSolidRect(resolved, size) {
			return s.settle(pos, size, resolved, vel, boundX)
		}
		return resolved, vel
	}

	return target, disp
}

// clampToCell pushes the rectangle out of cell along one axis
func (s *PhysicsSystem) clampToCell(pos, size, disp, c entity.Vec2, cell entity.Rect) (entity.Vec2, entity.Vec2, bool) {
	target := pos.Add(disp)
	before := sample(pos, size, c)
	after := sample(target, size, c)

	enteredX := !within(before.X, cell.X, cell.W) && within(after.X, cell.X, cell.W)
	enteredY := !within(before.Y, cell.Y, cell.H) && within(after.Y, cell.Y, cell.H)

	var boundX bool
	switch {
	case enteredX && !enteredY:
		boundX = true
	case enteredY && !enteredX:
		boundX = false
	default:
		// Diagonal corner contact or an existing overlap
		boundX = depth(target.X, size.X, disp.X, cell.X, cell.W) <= depth(target.Y, size.Y, disp.Y, cell.Y, cell.H)
	}

	vel := disp
	if boundX {
		target.X = edge(target.X, size.X, disp.X, cell.X, cell.W)
		vel.X = 0
	} else {
		target.Y = edge(target.Y, size.Y, disp.Y, cell.Y, cell.H)
		vel.Y = 0
	}
	return target, vel, boundX
}

// settle handles concave corners where the sliding axis is blocked as well
func (s *PhysicsSystem) settle(pos, size, resolved, vel entity.Vec2, boundX bool) (entity.Vec2, entity.Vec2) {
	if boundX {
		resolved.Y = pos.Y
		vel.Y = 0
	} else {
		resolved.X = pos.X
		vel.X = 0
	}
	if !s.isSolidRect(resolved, size) {
		return resolved, vel
	}
	return pos, entity.Vec2{}
}

// isSolidRect checks every cell the rectangle covers
func (s *PhysicsSystem) isSolidRect(pos, size entity.Vec2) bool {
	startX, startY := s.stage.TileCoord(pos.X, pos.Y)
	end := sample(pos, size, size)
	endX, endY := s.stage.TileCoord(end.X, end.Y)

	for ty := startY; ty <= endY; ty++ {
		for tx := startX; tx <= endX; tx++ {
			if s.stage.Grid.IsSolid(tx, ty) {
				return true
			}
		}
	}
	return false
}

// Overlaps reports whether an actor rectangle touches any solid cell
func (s *PhysicsSystem) Overlaps(a *entity.Actor) bool {
	return s.isSolidRect(a.Position, a.Size)
}

// rectCorners returns corner offsets: top-left, top-right, bottom-left, bottom-right
func rectCorners(size entity.Vec2) [4]entity.Vec2 {
	return [4]entity.Vec2{
		{X: 0, Y: 0},
		{X: size.X, Y: 0},
		{X: 0, Y: size.Y},
		{X: size.X, Y: size.Y},
	}
}

// sample returns the world point tested for corner offset c
func sample(pos, size, c entity.Vec2) entity.Vec2 {
	p := pos.Add(c)
	if c.X > 0 && c.X >= size.X {
		p.X -= cornerInset
	}
	if c.Y > 0 && c.Y >= size.Y {
		p.Y -= cornerInset
	}
	return p
}

func within(v, start, length float64) bool {
	return v >= start && v < start+length
}

// edge returns the position that puts the rectangle flush against the
// cell on the side it approached from
func edge(pos, extent, d, cellStart, cellLen float64) float64 {
	x0 := cellStart - extent
	x1 := cellStart + cellLen
	switch {
	case d > 0:
		return x0
	case d < 0:
		return x1
	case pos+extent/2 < cellStart+cellLen/2:
		return x0
	default:
		return x1
	}
}

// depth returns how far the rectangle reaches into the cell along one axis
func depth(pos, extent, d, cellStart, cellLen float64) float64 {
	fromLow := pos + extent - cellStart
	fromHigh := cellStart + cellLen - pos
	switch {
	case d > 0:
		return fromLow
	case d < 0:
		return fromHigh
	default:
		return math.Min(fromLow, fromHigh)
	}
}
