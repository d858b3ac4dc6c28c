package entity

import "math/rand"

// AtlasCoord is a (column, row) cell in the tileset atlas
type AtlasCoord struct {
	Col int
	Row int
}

// Tile is a composited grid cell
type Tile struct {
	Textures []AtlasCoord // one per contributing layer, in layer order
	Kinds    KindSet
	Solid    bool
}

// IsFloorOnly reports whether the only contributing layer kind is Floor.
// Spawning uses these cells.
func (t Tile) IsFloorOnly() bool {
	return t.Kinds == KindSet(0).With(KindFloor)
}

// boundaryTile is returned for lookups outside the grid
var boundaryTile = Tile{Solid: true}

// TileGrid is the dense, read-only tile map built at level load.
// Cell (wx, wy) in world tile coordinates is stored at
// (wy-originY)*width + (wx-originX).
type TileGrid struct {
	tiles   []Tile
	width   int
	originX int
	originY int

	floorCells []Point
}

// NewTileGrid wraps tiles laid out row-major with the given width.
// len(tiles) must be a multiple of width.
func NewTileGrid(tiles []Tile, width, originX, originY int) *TileGrid {
	g := &TileGrid{
		tiles:   tiles,
		width:   width,
		originX: originX,
		originY: originY,
	}
	for i, t := range tiles {
		if t.IsFloorOnly() {
			g.floorCells = append(g.floorCells, Point{
				X: originX + i%width,
				Y: originY + i/width,
			})
		}
	}
	return g
}

// Width returns the grid width in cells
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the grid height in cells
func (g *TileGrid) Height() int {
	if g.width == 0 {
		return 0
	}
	return len(g.tiles) / g.width
}

// Len returns the number of cells
func (g *TileGrid) Len() int {
	return len(g.tiles)
}

// Origin returns the world tile coordinate of the grid's top-left cell
func (g *TileGrid) Origin() (x, y int) {
	return g.originX, g.originY
}

// Index maps a world tile coordinate to its linear index
func (g *TileGrid) Index(wx, wy int) (int, bool) {
	lx := wx - g.originX
	ly := wy - g.originY
	if lx < 0 || lx >= g.width || ly < 0 || ly >= g.Height() {
		return 0, false
	}
	return ly*g.width + lx, true
}

// Coord maps a linear index back to its world tile coordinate
func (g *TileGrid) Coord(i int) (wx, wy int) {
	return g.originX + i%g.width, g.originY + i/g.width
}

// At returns the tile at a world tile coordinate
func (g *TileGrid) At(wx, wy int) (Tile, bool) {
	i, ok := g.Index(wx, wy)
	if !ok {
		return boundaryTile, false
	}
	return g.tiles[i], true
}

// IsSolid reports whether a world tile coordinate blocks movement.
// Cells outside the grid are solid.
func (g *TileGrid) IsSolid(wx, wy int) bool {
	i, ok := g.Index(wx, wy)
	if !ok {
		return true
	}
	return g.tiles[i].Solid
}

// FloorCells returns the cells whose only layer kind is Floor.
// The slice is shared; callers must not modify it.
func (g *TileGrid) FloorCells() []Point {
	return g.floorCells
}

// Stage is a loaded level: the tile grid plus its world scale
type Stage struct {
	Name        string
	Grid        *TileGrid
	Atlas       string  // tileset image path, empty when the tileset has none
	TileSize    int     // tile edge in source pixels
	RenderScale float64 // world pixels per source pixel
	SpawnX      float64 // player spawn, world pixels
	SpawnY      float64
}

// CellSize returns the edge of one cell in world pixels
func (s *Stage) CellSize() float64 {
	return float64(s.TileSize) * s.RenderScale
}

// Width returns the grid width in cells
func (s *Stage) Width() int {
	return s.Grid.Width()
}

// Height returns the grid height in cells
func (s *Stage) Height() int {
	return s.Grid.Height()
}

// TileCoord converts world pixel coordinates to a world tile coordinate
func (s *Stage) TileCoord(worldX, worldY float64) (tx, ty int) {
	cell := s.CellSize()
	return FloorDiv(worldX, cell), FloorDiv(worldY, cell)
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	t, _ := s.Grid.At(tx, ty)
	return t
}

// CellAt returns the tile under a world pixel position
func (s *Stage) CellAt(worldX, worldY float64) (Tile, bool) {
	tx, ty := s.TileCoord(worldX, worldY)
	return s.Grid.At(tx, ty)
}

// IsSolidAt checks if the tile at world pixel coordinates is solid
func (s *Stage) IsSolidAt(worldX, worldY float64) bool {
	tx, ty := s.TileCoord(worldX, worldY)
	return s.Grid.IsSolid(tx, ty)
}

// CellRect returns the world pixel rectangle of a tile coordinate
func (s *Stage) CellRect(tx, ty int) Rect {
	cell := s.CellSize()
	return Rect{X: float64(tx) * cell, Y: float64(ty) * cell, W: cell, H: cell}
}

// Bounds returns the grid extent in world pixels
func (s *Stage) Bounds() Rect {
	ox, oy := s.Grid.Origin()
	cell := s.CellSize()
	return Rect{
		X: float64(ox) * cell,
		Y: float64(oy) * cell,
		W: float64(s.Grid.Width()) * cell,
		H: float64(s.Grid.Height()) * cell,
	}
}

// RandomFloorCell picks a uniformly random floor-only cell
func (s *Stage) RandomFloorCell(rng *rand.Rand) (x, y int, ok bool) {
	cells := s.Grid.FloorCells()
	if len(cells) == 0 {
		return 0, 0, false
	}
	p := cells[rng.Intn(len(cells))]
	return p.X, p.Y, true
}
