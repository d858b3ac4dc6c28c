package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/catscapade/internal/domain/entity"
)

func TestCaptureSystem(t *testing.T) {
	stage := createTestStage(
		"......",
		"......",
		"......",
		"......",
	)

	t.Run("overlapping mouse is caught", func(t *testing.T) {
		sys := NewCaptureSystem(stage)
		cat := entity.NewCat(16, 16, 16, 16, 30, 0.85)
		near := entity.NewMouse(28, 20, 12, 12, 18, 0.85, 1, false)
		touching := entity.NewMouse(32, 16, 12, 12, 18, 0.85, 1, false)
		far := entity.NewMouse(70, 40, 12, 12, 18, 0.85, 1, false)

		player := sys.Track(cat)
		sys.Track(near)
		sys.Track(touching)
		sys.Track(far)

		caught := sys.Captures(player)

		require.Len(t, caught, 1)
		assert.Same(t, near, caught[0])
	})

	t.Run("sync follows movement", func(t *testing.T) {
		sys := NewCaptureSystem(stage)
		cat := entity.NewCat(0, 0, 16, 16, 30, 0.85)
		mouse := entity.NewMouse(60, 40, 12, 12, 18, 0.85, 1, false)

		player := sys.Track(cat)
		sys.Track(mouse)
		assert.Empty(t, sys.Captures(player))

		cat.Position = entity.Vec2{X: 52, Y: 36}
		sys.Sync(player)

		assert.Len(t, sys.Captures(player), 1)
	})

	t.Run("untracked mice are ignored", func(t *testing.T) {
		sys := NewCaptureSystem(stage)
		cat := entity.NewCat(16, 16, 16, 16, 30, 0.85)
		mouse := entity.NewMouse(20, 20, 12, 12, 18, 0.85, 1, false)

		player := sys.Track(cat)
		obj := sys.Track(mouse)
		sys.Untrack(obj)

		assert.Empty(t, sys.Captures(player))
	})

	t.Run("negative origin", func(t *testing.T) {
		tiles := make([]entity.Tile, 16)
		shifted := &entity.Stage{
			Grid:        entity.NewTileGrid(tiles, 4, -2, -2),
			TileSize:    16,
			RenderScale: 1,
		}
		sys := NewCaptureSystem(shifted)
		cat := entity.NewCat(-30, -30, 16, 16, 30, 0.85)
		mouse := entity.NewMouse(-20, -24, 12, 12, 18, 0.85, 1, false)

		player := sys.Track(cat)
		sys.Track(mouse)

		assert.Len(t, sys.Captures(player), 1)
	})
}
