package system

import (
	"math"
	"math/rand"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// BehaviorSystem drives flee/wander actors
type BehaviorSystem struct {
	config config.BehaviorConfig
	rng    *rand.Rand
}

// NewBehaviorSystem creates a behavior system drawing from rng
func NewBehaviorSystem(cfg config.BehaviorConfig, rng *rand.Rand) *BehaviorSystem {
	return &BehaviorSystem{
		config: cfg,
		rng:    rng,
	}
}

// SetConfig swaps tuning values, used by hot reload
func (s *BehaviorSystem) SetConfig(cfg config.BehaviorConfig) {
	s.config = cfg
}

// Update advances the actor's cooldowns and returns its intent for this
// frame. player is the player's center in world pixels.
func (s *BehaviorSystem) Update(a *entity.Actor, player entity.Vec2, dt float64) entity.Vec2 {
	fw, ok := a.Behavior.(*entity.FleeWander)
	if !ok {
		return entity.Vec2{}
	}

	fw.ScareCooldown = math.Max(0, fw.ScareCooldown-dt)
	fw.RedirectCooldown = math.Max(0, fw.RedirectCooldown-dt)

	away := a.Center().Sub(player)
	switch {
	case fw.ScareCooldown == 0 && away.Len() < s.config.ScareDistance:
		dir := away.Normalize()
		if dir.IsZero() {
			dir = s.randomDirection()
		}
		fw.Direction = dir
		fw.ScareCooldown = s.scareCooldown(fw)
		fw.RedirectCooldown = math.Max(fw.RedirectCooldown, fw.ScareCooldown)

	case fw.RedirectCooldown == 0:
		fw.Direction = s.randomDirection()
		fw.RedirectCooldown = s.config.RedirectMin + s.rng.Float64()*(s.config.RedirectMax-s.config.RedirectMin)
	}

	return fw.Direction
}

func (s *BehaviorSystem) scareCooldown(fw *entity.FleeWander) float64 {
	if fw.Bonus {
		return s.config.BonusScareCooldown
	}
	return s.config.ScareCooldown
}

func (s *BehaviorSystem) randomDirection() entity.Vec2 {
	return entity.FromAngle(s.rng.Float64() * 2 * math.Pi)
}
