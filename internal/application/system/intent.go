package system

import "github.com/younwookim/catscapade/internal/domain/entity"

// MoveIntent turns held direction keys into a unit intent vector.
// Opposite keys cancel; diagonals are normalized.
func MoveIntent(in InputState) entity.Vec2 {
	var v entity.Vec2
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	if in.Up {
		v.Y--
	}
	if in.Down {
		v.Y++
	}
	return v.Normalize()
}
