package ecs

import (
	"math/rand"

	"github.com/yohamta/donburi"

	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// StepResult reports what changed during one frame
type StepResult struct {
	Captured []*entity.Actor // mice caught this frame, already removed
	Spawned  int             // mice added by a wave this frame
	Wave     int             // wave number when Spawned > 0
}

// Simulation runs the frame pipeline over a world: player motion, NPC
// behavior and motion, capture, then spawning
type Simulation struct {
	cfg   *config.GameConfig
	stage *entity.Stage
	seed  int64

	world    *World
	rng      *rand.Rand
	physics  *system.PhysicsSystem
	behavior *system.BehaviorSystem
	spawner  *system.Spawner

	score    int
	captures int
	frame    int
	elapsed  float64
}

// NewSimulation creates a simulation with the player at the stage spawn
func NewSimulation(cfg *config.GameConfig, stage *entity.Stage, seed int64) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		stage: stage,
		seed:  seed,
	}
	s.Reset()
	return s
}

// Reset starts a new round with the same seed
func (s *Simulation) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.world = NewWorld(s.stage)
	s.physics = system.NewPhysicsSystem(s.cfg.Physics, s.stage)
	s.behavior = system.NewBehaviorSystem(s.cfg.Physics.Behavior, s.rng)
	s.spawner = system.NewSpawner(s.cfg.Physics.Spawner, s.stage, s.cfg.Entities.Mouse)
	s.world.CreatePlayer(s.newCat())

	s.score = 0
	s.captures = 0
	s.frame = 0
	s.elapsed = 0
}

func (s *Simulation) newCat() *entity.Actor {
	p := s.cfg.Entities.Player
	w := float64(p.Sprite.FrameWidth) * s.stage.RenderScale
	h := float64(p.Sprite.FrameHeight) * s.stage.RenderScale
	cell := s.stage.CellSize()
	x := s.stage.SpawnX + (cell-w)/2
	y := s.stage.SpawnY + (cell-h)/2
	return entity.NewCat(x, y, w, h, p.Acceleration, p.Damping)
}

// Step advances one frame with the player's intent
func (s *Simulation) Step(intent entity.Vec2, dt float64) StepResult {
	var res StepResult

	player := s.world.player
	cat := Actor.Get(player).Actor
	s.physics.Move(cat, intent, dt)
	s.world.sync(player)

	center := cat.Center()
	Mouse.Each(s.world.World, func(e *donburi.Entry) {
		mouse := Actor.Get(e).Actor
		s.physics.Move(mouse, s.behavior.Update(mouse, center, dt), dt)
		s.world.sync(e)
	})

	for _, mouse := range s.world.captures() {
		s.score += mouse.Score
		s.captures++
		s.world.Destroy(mouse)
		res.Captured = append(res.Captured, mouse)
	}

	if mice := s.spawner.Update(dt, s.rng); len(mice) > 0 {
		for _, mouse := range mice {
			s.world.CreateMouse(mouse)
		}
		res.Spawned = len(mice)
		res.Wave = s.spawner.Waves()
	}

	s.frame++
	s.elapsed += dt
	return res
}

// ApplyConfig swaps tuning values into the running round.
// The stage and existing positions are kept.
func (s *Simulation) ApplyConfig(cfg *config.GameConfig) {
	s.cfg = cfg
	s.physics = system.NewPhysicsSystem(cfg.Physics, s.stage)
	s.behavior.SetConfig(cfg.Physics.Behavior)
	s.spawner.SetConfig(cfg.Physics.Spawner, cfg.Entities.Mouse)

	cat := s.world.PlayerActor()
	cat.Acceleration = cfg.Entities.Player.Acceleration
	cat.Damping = cfg.Entities.Player.Damping

	mice := cfg.Entities.Mouse
	s.world.EachMouse(func(a *entity.Actor) {
		a.Damping = mice.Damping
		a.Acceleration = mice.Acceleration
		if a.IsBonus() {
			a.Acceleration = mice.BonusAcceleration
		}
	})
}

// Player returns the player actor
func (s *Simulation) Player() *entity.Actor {
	return s.world.PlayerActor()
}

// EachMouse calls fn for every live mouse
func (s *Simulation) EachMouse(fn func(a *entity.Actor)) {
	s.world.EachMouse(fn)
}

// MouseCount returns the number of live mice
func (s *Simulation) MouseCount() int {
	return s.world.MouseCount()
}

// Stage returns the stage being simulated
func (s *Simulation) Stage() *entity.Stage {
	return s.stage
}

// Seed returns the seed every round starts from
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Score returns the points earned this round
func (s *Simulation) Score() int {
	return s.score
}

// Captures returns the number of mice caught this round
func (s *Simulation) Captures() int {
	return s.captures
}

// Frame returns the number of steps taken this round
func (s *Simulation) Frame() int {
	return s.frame
}

// Waves returns the number of waves released this round
func (s *Simulation) Waves() int {
	return s.spawner.Waves()
}

// NextWave returns the seconds until the next wave
func (s *Simulation) NextWave() float64 {
	return s.spawner.Remaining()
}

// Remaining returns the seconds left in a timed round, 0 when untimed
func (s *Simulation) Remaining() float64 {
	d := s.cfg.Physics.Round.Duration
	if d <= 0 {
		return 0
	}
	return max(0, d-s.elapsed)
}

// Over reports whether a timed round has run out
func (s *Simulation) Over() bool {
	d := s.cfg.Physics.Round.Duration
	return d > 0 && s.elapsed >= d
}
