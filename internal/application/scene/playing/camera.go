package playing

import (
	"math"

	"github.com/younwookim/catscapade/internal/domain/entity"
)

// Camera is the top-left of the view in world pixels
type Camera struct {
	X, Y float64
	W, H float64 // view size
}

// NewCamera creates a camera with a w x h view
func NewCamera(w, h int) *Camera {
	return &Camera{W: float64(w), H: float64(h)}
}

// Follow centers the view on target without showing past bounds.
// An axis where bounds is smaller than the view is centered instead.
func (c *Camera) Follow(target entity.Vec2, bounds entity.Rect) {
	c.X = math.Round(follow(target.X-c.W/2, bounds.X, bounds.W, c.W))
	c.Y = math.Round(follow(target.Y-c.H/2, bounds.Y, bounds.H, c.H))
}

func follow(v, start, extent, view float64) float64 {
	if extent <= view {
		return start - (view-extent)/2
	}
	return math.Max(start, math.Min(v, start+extent-view))
}

// ToScreen converts a world position to screen pixels
func (c *Camera) ToScreen(p entity.Vec2) (x, y float64) {
	return p.X - c.X, p.Y - c.Y
}

// ToWorld converts screen pixels to a world position
func (c *Camera) ToWorld(x, y float64) entity.Vec2 {
	return entity.Vec2{X: x + c.X, Y: y + c.Y}
}

// VisibleTiles returns the inclusive tile range under the view
func (c *Camera) VisibleTiles(cell float64) (x0, y0, x1, y1 int) {
	x0, y0 = entity.FloorDiv(c.X, cell), entity.FloorDiv(c.Y, cell)
	x1, y1 = entity.FloorDiv(c.X+c.W, cell), entity.FloorDiv(c.Y+c.H, cell)
	return x0, y0, x1, y1
}
