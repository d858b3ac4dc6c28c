package system

import (
	"math/rand"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// Spawner releases waves of mice onto floor cells on a fixed clock.
// It owns no actors; callers add the returned mice to the world.
type Spawner struct {
	config config.SpawnerConfig
	mice   config.MouseConfig
	stage  *entity.Stage

	clock float64
	waves int
	cells []entity.Point // sampling scratch
}

// NewSpawner creates a spawner whose first wave fires after InitialDelay
func NewSpawner(cfg config.SpawnerConfig, stage *entity.Stage, mice config.MouseConfig) *Spawner {
	return &Spawner{
		config: cfg,
		mice:   mice,
		stage:  stage,
		clock:  cfg.InitialDelay,
	}
}

// SetConfig swaps tuning values without touching the clock
func (s *Spawner) SetConfig(cfg config.SpawnerConfig, mice config.MouseConfig) {
	s.config = cfg
	s.mice = mice
}

// Reset restores the initial clock
func (s *Spawner) Reset() {
	s.clock = s.config.InitialDelay
	s.waves = 0
}

// Waves returns how many waves have been released
func (s *Spawner) Waves() int {
	return s.waves
}

// Remaining returns the seconds until the next wave
func (s *Spawner) Remaining() float64 {
	return max(0, s.clock)
}

// Update advances the clock and returns the mice of a wave when it expires
func (s *Spawner) Update(dt float64, rng *rand.Rand) []*entity.Actor {
	s.clock -= dt
	if s.clock > 0 {
		return nil
	}
	s.clock = s.config.Interval
	return s.Wave(rng)
}

// Wave places up to WaveSize mice on distinct floor-only cells.
// A wave larger than the number of eligible cells is truncated.
func (s *Spawner) Wave(rng *rand.Rand) []*entity.Actor {
	floor := s.stage.Grid.FloorCells()
	n := min(s.config.WaveSize, len(floor))
	if n <= 0 {
		return nil
	}

	// Partial Fisher-Yates: the first n slots become the sample
	s.cells = append(s.cells[:0], floor...)
	mice := make([]*entity.Actor, 0, n)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(s.cells)-i)
		s.cells[i], s.cells[j] = s.cells[j], s.cells[i]
		mice = append(mice, s.newMouse(s.cells[i], rng))
	}

	s.waves++
	return mice
}

func (s *Spawner) newMouse(p entity.Point, rng *rand.Rand) *entity.Actor {
	bonus := rng.Float64() < s.config.BonusChance

	sprite, accel, score := s.mice.Sprite, s.mice.Acceleration, s.mice.Score
	if bonus {
		sprite, accel, score = s.mice.BonusSprite, s.mice.BonusAcceleration, s.mice.BonusScore
	}

	w := float64(sprite.FrameWidth) * s.stage.RenderScale
	h := float64(sprite.FrameHeight) * s.stage.RenderScale
	c := s.stage.CellRect(p.X, p.Y).Center()
	return entity.NewMouse(c.X-w/2, c.Y-h/2, w, h, accel, s.mice.Damping, score, bonus)
}
