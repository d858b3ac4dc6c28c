package system

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
	"github.com/younwookim/catscapade/internal/infrastructure/tmx"
)

var (
	ErrEmptyMap    = errors.New("map has no tiles")
	ErrBadColumns  = errors.New("tileset column count must be positive")
	ErrBadSpawn    = errors.New("player spawn is not on an open tile")
	ErrMapTooLarge = errors.New("map exceeds the tile limit")
)

// chunkKey is a chunk origin in tile units
type chunkKey struct{ x, y int }

// LayerBounds returns the tight box over a layer's nonzero cells
func LayerBounds(layer entity.Layer) entity.TileBounds {
	var b entity.TileBounds
	for i := range layer.Chunks {
		if cb, ok := layer.Chunks[i].Bounds(); ok {
			b = b.Union(cb)
		}
	}
	return b
}

// Compose builds the tile grid from parsed layers. The grid covers exactly
// the union of every layer's nonzero cells; each cell stacks one atlas
// coordinate per contributing layer in declaration order. A box of more
// than maxCells tiles fails with ErrMapTooLarge before anything is allocated.
func Compose(layers []entity.Layer, columns, maxCells int) (*entity.TileGrid, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadColumns, columns)
	}

	var box entity.TileBounds
	for _, layer := range layers {
		box = box.Union(LayerBounds(layer))
	}
	if !box.Valid {
		return nil, ErrEmptyMap
	}

	// A span wider than the int range wraps to a non-positive size
	width, height := box.Width(), box.Height()
	if width <= 0 || height <= 0 || width > maxCells/height {
		return nil, fmt.Errorf("%w: %d..%d x %d..%d, limit %d cells",
			ErrMapTooLarge, box.MinX, box.MaxX, box.MinY, box.MaxY, maxCells)
	}

	index := make([]map[chunkKey]*entity.Chunk, len(layers))
	for i := range layers {
		index[i] = make(map[chunkKey]*entity.Chunk, len(layers[i].Chunks))
		for j := range layers[i].Chunks {
			c := &layers[i].Chunks[j]
			index[i][chunkKey{c.X, c.Y}] = c
		}
	}

	tiles := make([]entity.Tile, 0, width*height)
	for y := box.MinY; y <= box.MaxY; y++ {
		cy := entity.FloorDivInt(y, entity.ChunkSize) * entity.ChunkSize
		for x := box.MinX; x <= box.MaxX; x++ {
			cx := entity.FloorDivInt(x, entity.ChunkSize) * entity.ChunkSize

			var tile entity.Tile
			for i, layer := range layers {
				chunk, ok := index[i][chunkKey{cx, cy}]
				if !ok {
					continue
				}
				id := chunk.At(x-cx, y-cy)
				if id == 0 {
					continue
				}
				gid := int(id - 1)
				tile.Textures = append(tile.Textures, entity.AtlasCoord{
					Col: gid % columns,
					Row: gid / columns,
				})
				tile.Kinds = tile.Kinds.With(layer.Kind)
				if layer.Kind == entity.KindCollision {
					tile.Solid = true
				}
			}
			tiles = append(tiles, tile)
		}
	}

	return entity.NewTileGrid(tiles, width, box.MinX, box.MinY), nil
}

// LoadStage reads the stage's map from fsys and composites it into a Stage
func LoadStage(fsys fs.FS, stageCfg *config.StageConfig, cfg *config.PhysicsConfig) (*entity.Stage, error) {
	m, err := tmx.Load(fsys, stageCfg.Map)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", stageCfg.ID, err)
	}
	if m.TileWidth != 0 && m.TileWidth != cfg.Map.TileSize {
		return nil, fmt.Errorf("stage %s: map tile width %d, config tile size %d: %w",
			stageCfg.ID, m.TileWidth, cfg.Map.TileSize, config.ErrInvalid)
	}

	grid, err := Compose(m.Layers, m.Columns(), cfg.Map.MaxCells)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", stageCfg.ID, err)
	}

	stage := &entity.Stage{
		Name:        stageCfg.Name,
		Grid:        grid,
		Atlas:       m.AtlasPath,
		TileSize:    cfg.Map.TileSize,
		RenderScale: cfg.Map.RenderScale,
	}

	spawn := stageCfg.PlayerSpawn
	if tile, ok := grid.At(spawn.X, spawn.Y); !ok || tile.Solid {
		return nil, fmt.Errorf("stage %s: %w: tile (%d,%d)", stageCfg.ID, ErrBadSpawn, spawn.X, spawn.Y)
	}
	cell := stage.CellRect(spawn.X, spawn.Y)
	stage.SpawnX = cell.X
	stage.SpawnY = cell.Y

	return stage, nil
}
