package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks configuration values outside their allowed range
var ErrInvalid = errors.New("invalid config")

func (c *PhysicsConfig) applyDefaults() {
	if c.Display.Framerate == 0 {
		c.Display.Framerate = 60
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = 1
	}
	if c.Map.RenderScale == 0 {
		c.Map.RenderScale = 1
	}
	if c.Map.MaxCells == 0 {
		c.Map.MaxCells = DefaultMaxCells
	}
	if c.Movement.Epsilon == 0 {
		c.Movement.Epsilon = 0.01
	}
	if c.Feedback.PopupDuration == 0 {
		c.Feedback.PopupDuration = 0.8
	}
	if c.Feedback.PopupRise == 0 {
		c.Feedback.PopupRise = 16
	}
	if c.Feedback.BannerDuration == 0 {
		c.Feedback.BannerDuration = 1.5
	}
}

// Validate reports every out-of-range value at once
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := c.Physics
	check(p.Display.ScreenWidth > 0 && p.Display.ScreenHeight > 0, "display size %dx%d", p.Display.ScreenWidth, p.Display.ScreenHeight)
	check(p.Display.Framerate > 0, "framerate %d", p.Display.Framerate)
	check(p.Map.TileSize > 0, "map.tileSize %d", p.Map.TileSize)
	check(p.Map.RenderScale > 0, "map.renderScale %v", p.Map.RenderScale)
	check(p.Map.MaxCells > 0, "map.maxCells %d", p.Map.MaxCells)
	check(p.Movement.Epsilon > 0, "movement.epsilon %v", p.Movement.Epsilon)
	check(p.Behavior.ScareDistance >= 0, "behavior.scareDistance %v", p.Behavior.ScareDistance)
	check(p.Behavior.ScareCooldown >= 0 && p.Behavior.BonusScareCooldown >= 0, "behavior scare cooldowns must not be negative")
	check(p.Behavior.RedirectMin > 0 && p.Behavior.RedirectMin <= p.Behavior.RedirectMax,
		"behavior redirect range [%v, %v]", p.Behavior.RedirectMin, p.Behavior.RedirectMax)
	check(p.Spawner.Interval > 0, "spawner.interval %v", p.Spawner.Interval)
	check(p.Spawner.InitialDelay >= 0, "spawner.initialDelay %v", p.Spawner.InitialDelay)
	check(p.Spawner.WaveSize >= 0, "spawner.waveSize %d", p.Spawner.WaveSize)
	check(p.Spawner.BonusChance >= 0 && p.Spawner.BonusChance <= 1, "spawner.bonusChance %v", p.Spawner.BonusChance)
	check(p.Round.Duration >= 0, "round.duration %v", p.Round.Duration)

	e := c.Entities
	check(validDamping(e.Player.Damping), "player.damping %v", e.Player.Damping)
	check(validDamping(e.Mouse.Damping), "mouse.damping %v", e.Mouse.Damping)
	check(e.Player.Acceleration > 0, "player.acceleration %v", e.Player.Acceleration)
	check(e.Mouse.Acceleration > 0 && e.Mouse.BonusAcceleration > 0, "mouse accelerations must be positive")
	checkFrame := func(name string, s SpriteConfig) {
		check(s.FrameWidth > 0 && s.FrameHeight > 0, "%s frame size %dx%d", name, s.FrameWidth, s.FrameHeight)
		// Corner sampling can step over a one-tile wall with a larger body
		check(s.FrameWidth <= p.Map.TileSize && s.FrameHeight <= p.Map.TileSize,
			"%s frame %dx%d larger than map.tileSize %d", name, s.FrameWidth, s.FrameHeight, p.Map.TileSize)
	}
	checkFrame("player sprite", e.Player.Sprite)
	checkFrame("mouse sprite", e.Mouse.Sprite)
	checkFrame("mouse bonusSprite", e.Mouse.BonusSprite)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// damping is a per-frame multiplier: 1 keeps all velocity, 0 stops dead
func validDamping(d float64) bool {
	return d > 0 && d <= 1
}
