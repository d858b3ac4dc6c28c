package playing

import (
	"fmt"
	"strings"

	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/ecs"
)

// DebugContext holds the developer overlays. It is toggled from input and
// read by the renderer; nothing in the simulation depends on it.
type DebugContext struct {
	ShowGrid  bool // Tab: cell grid and actor boxes
	ShowStats bool // F3: counters
}

// Handle applies the toggle keys of one frame
func (d *DebugContext) Handle(in system.InputState) {
	if in.ToggleDebug {
		d.ShowGrid = !d.ShowGrid
	}
	if in.ToggleStats {
		d.ShowStats = !d.ShowStats
	}
}

// Enabled reports whether any overlay is on
func (d *DebugContext) Enabled() bool {
	return d.ShowGrid || d.ShowStats
}

// statsText formats the F3 panel
func statsText(sim *ecs.Simulation, tps float64) string {
	cat := sim.Player()
	tx, ty := sim.Stage().TileCoord(cat.Center().X, cat.Center().Y)

	var b strings.Builder
	fmt.Fprintf(&b, "TPS %.1f  frame %d  seed %d\n", tps, sim.Frame(), sim.Seed())
	fmt.Fprintf(&b, "cat (%.1f, %.1f) tile (%d, %d)\n", cat.Position.X, cat.Position.Y, tx, ty)
	fmt.Fprintf(&b, "vel (%.2f, %.2f)\n", cat.Velocity.X, cat.Velocity.Y)
	fmt.Fprintf(&b, "mice %d  waves %d  next %.1fs", sim.MouseCount(), sim.Waves(), sim.NextWave())
	return b.String()
}
