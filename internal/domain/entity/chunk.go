package entity

import "strings"

// ChunkSize is the edge length of a map chunk in tiles
const ChunkSize = 16

// ChunkCells is the number of tile ids in one chunk
const ChunkCells = ChunkSize * ChunkSize

// LayerKind classifies a map layer
type LayerKind uint8

const (
	KindFloor LayerKind = iota
	KindDecor
	KindCollision
)

// String returns the string representation of the layer kind
func (k LayerKind) String() string {
	switch k {
	case KindFloor:
		return "Floor"
	case KindDecor:
		return "Decor"
	case KindCollision:
		return "Collision"
	default:
		return "Unknown"
	}
}

// LayerKindFromName classifies a layer by substring of its name.
// Collision wins over floor, floor over decor.
func LayerKindFromName(name string) (LayerKind, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "collision"):
		return KindCollision, true
	case strings.Contains(lower, "floor"):
		return KindFloor, true
	case strings.Contains(lower, "decor"):
		return KindDecor, true
	default:
		return 0, false
	}
}

// KindSet is a set of layer kinds
type KindSet uint8

// With returns the set with k added
func (s KindSet) With(k LayerKind) KindSet {
	return s | 1<<k
}

// Has reports whether k is in the set
func (s KindSet) Has(k LayerKind) bool {
	return s&(1<<k) != 0
}

// Empty reports whether no kind is in the set
func (s KindSet) Empty() bool {
	return s == 0
}

// Chunk is a 16x16 block of tile ids at a tile-unit origin.
// Origins are multiples of ChunkSize; 0 means no tile.
type Chunk struct {
	X, Y int
	Data [ChunkCells]uint32
}

// At returns the id at local coordinates
func (c *Chunk) At(lx, ly int) uint32 {
	return c.Data[ly*ChunkSize+lx]
}

// IsEmpty reports whether every id in the chunk is zero
func (c *Chunk) IsEmpty() bool {
	for _, v := range c.Data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bounds returns the tight box over the chunk's nonzero cells
func (c *Chunk) Bounds() (TileBounds, bool) {
	var b TileBounds
	for i, v := range c.Data {
		if v == 0 {
			continue
		}
		b = b.Include(c.X+i%ChunkSize, c.Y+i/ChunkSize)
	}
	return b, b.Valid
}

// Layer is a named set of chunks parsed from the map
type Layer struct {
	Name   string
	Kind   LayerKind
	Chunks []Chunk
}

// TileBounds is an inclusive box in tile units
type TileBounds struct {
	MinX, MinY int
	MaxX, MaxY int
	Valid      bool
}

// Include grows the box to cover (x, y)
func (b TileBounds) Include(x, y int) TileBounds {
	if !b.Valid {
		return TileBounds{MinX: x, MinY: y, MaxX: x, MaxY: y, Valid: true}
	}
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
	return b
}

// Union returns the box covering both
func (b TileBounds) Union(o TileBounds) TileBounds {
	if !o.Valid {
		return b
	}
	if !b.Valid {
		return o
	}
	return b.Include(o.MinX, o.MinY).Include(o.MaxX, o.MaxY)
}

// Width returns the inclusive width
func (b TileBounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the inclusive height
func (b TileBounds) Height() int {
	return b.MaxY - b.MinY + 1
}
