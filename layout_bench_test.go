package main

import (
	"math/rand"
	"testing"

	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// benchChunks is the side of the benchmark map in chunks
const benchChunks = 8

// Two layouts for the same map: the composited dense grid the game uses,
// and the sparse chunk map it is decoded from.
var (
	benchGrid   *entity.TileGrid
	benchChunkM map[[2]int]*entity.Chunk
	benchProbes [][2]int
)

func init() {
	rng := rand.New(rand.NewSource(1))

	var floor, walls entity.Layer
	floor.Kind = entity.KindFloor
	walls.Kind = entity.KindCollision
	benchChunkM = make(map[[2]int]*entity.Chunk)

	// Origins straddle zero so lookups exercise negative coordinates
	for cy := 0; cy < benchChunks; cy++ {
		for cx := 0; cx < benchChunks; cx++ {
			x, y := (cx-benchChunks/2)*entity.ChunkSize, (cy-benchChunks/2)*entity.ChunkSize
			f := entity.Chunk{X: x, Y: y}
			w := entity.Chunk{X: x, Y: y}
			for i := range f.Data {
				f.Data[i] = 1
				if rng.Intn(5) == 0 {
					w.Data[i] = 9
				}
			}
			floor.Chunks = append(floor.Chunks, f)
			walls.Chunks = append(walls.Chunks, w)
		}
	}
	for i := range walls.Chunks {
		c := &walls.Chunks[i]
		benchChunkM[[2]int{c.X, c.Y}] = c
	}

	grid, err := system.Compose([]entity.Layer{floor, walls}, 8, config.DefaultMaxCells)
	if err != nil {
		panic(err)
	}
	benchGrid = grid

	half := benchChunks / 2 * entity.ChunkSize
	benchProbes = make([][2]int, 4096)
	for i := range benchProbes {
		benchProbes[i] = [2]int{rng.Intn(2*half+8) - half - 4, rng.Intn(2*half+8) - half - 4}
	}
}

func chunkMapSolid(x, y int) bool {
	cx := entity.FloorDivInt(x, entity.ChunkSize) * entity.ChunkSize
	cy := entity.FloorDivInt(y, entity.ChunkSize) * entity.ChunkSize
	c, ok := benchChunkM[[2]int{cx, cy}]
	if !ok {
		return true
	}
	return c.At(x-cx, y-cy) != 0
}

// Case 1: random probes, as the collision resolver issues them

func BenchmarkRandomLookup_DenseGrid(b *testing.B) {
	solid := 0
	for n := 0; n < b.N; n++ {
		p := benchProbes[n%len(benchProbes)]
		if benchGrid.IsSolid(p[0], p[1]) {
			solid++
		}
	}
	_ = solid
}

func BenchmarkRandomLookup_ChunkMap(b *testing.B) {
	solid := 0
	for n := 0; n < b.N; n++ {
		p := benchProbes[n%len(benchProbes)]
		if chunkMapSolid(p[0], p[1]) {
			solid++
		}
	}
	_ = solid
}

// Case 2: full row-major sweep, as the renderer walks visible tiles

func BenchmarkSweep_DenseGrid(b *testing.B) {
	ox, oy := benchGrid.Origin()
	solid := 0
	for n := 0; n < b.N; n++ {
		for y := oy; y < oy+benchGrid.Height(); y++ {
			for x := ox; x < ox+benchGrid.Width(); x++ {
				if benchGrid.IsSolid(x, y) {
					solid++
				}
			}
		}
	}
	_ = solid
}

func BenchmarkSweep_ChunkMap(b *testing.B) {
	ox, oy := benchGrid.Origin()
	solid := 0
	for n := 0; n < b.N; n++ {
		for y := oy; y < oy+benchGrid.Height(); y++ {
			for x := ox; x < ox+benchGrid.Width(); x++ {
				if chunkMapSolid(x, y) {
					solid++
				}
			}
		}
	}
	_ = solid
}

func TestLayoutsAgree(t *testing.T) {
	for _, p := range benchProbes {
		if got, want := benchGrid.IsSolid(p[0], p[1]), chunkMapSolid(p[0], p[1]); got != want {
			t.Fatalf("(%d,%d): dense %v, chunk map %v", p[0], p[1], got, want)
		}
	}
}
