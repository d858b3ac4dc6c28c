package entity

import "math"

// Vec2 is a 2D vector in world pixels
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the vector length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns atan2(y, x)
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns the unit vector at angle a
func FromAngle(a float64) Vec2 {
	return Vec2{math.Cos(a), math.Sin(a)}
}

// Point is an integer tile coordinate
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle in world pixels
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles share any area
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the rectangle center
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Body is the physical state shared by every actor.
// Position is the top-left of the rectangle.
type Body struct {
	Position Vec2
	Size     Vec2
	Velocity Vec2
}

// Rect returns the body's rectangle
func (b *Body) Rect() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, W: b.Size.X, H: b.Size.Y}
}

// Center returns the body's center point
func (b *Body) Center() Vec2 {
	return b.Rect().Center()
}

// FloorDiv divides v by cell and rounds toward negative infinity
func FloorDiv(v, cell float64) int {
	return int(math.Floor(v / cell))
}

// FloorDivInt divides a by b and rounds toward negative infinity
func FloorDivInt(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
