package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestGameConfig() *GameConfig {
	physics := &PhysicsConfig{
		Display: DisplayConfig{ScreenWidth: 320, ScreenHeight: 240, Scale: 2, Framerate: 60},
		Map:     MapConfig{TileSize: 16, RenderScale: 1, MaxCells: DefaultMaxCells},
		Behavior: BehaviorConfig{
			ScareDistance:      40,
			ScareCooldown:      1,
			BonusScareCooldown: 2,
			RedirectMin:        0.5,
			RedirectMax:        2,
		},
		Spawner: SpawnerConfig{Interval: 10, WaveSize: 30, BonusChance: 0.02},
		Round:   RoundConfig{Duration: 90},
	}
	physics.applyDefaults()

	sprite := SpriteConfig{FrameWidth: 16, FrameHeight: 16}
	return &GameConfig{
		Physics: physics,
		Entities: &EntitiesConfig{
			Player: PlayerConfig{Sprite: sprite, Acceleration: 30, Damping: 0.85},
			Mouse:  MouseConfig{Sprite: sprite, BonusSprite: sprite, Acceleration: 18, BonusAcceleration: 26, Damping: 0.85},
		},
	}
}

func TestGameConfig_Validate(t *testing.T) {
	require.NoError(t, createTestGameConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *GameConfig)
		want   string
	}{
		{"zero tile size", func(c *GameConfig) { c.Physics.Map.TileSize = 0 }, "map.tileSize"},
		{"damping above one", func(c *GameConfig) { c.Entities.Player.Damping = 1.5 }, "player.damping"},
		{"zero damping", func(c *GameConfig) { c.Entities.Mouse.Damping = 0 }, "mouse.damping"},
		{"inverted redirect range", func(c *GameConfig) { c.Physics.Behavior.RedirectMax = 0.1 }, "redirect range"},
		{"negative wave", func(c *GameConfig) { c.Physics.Spawner.WaveSize = -1 }, "spawner.waveSize"},
		{"bonus chance above one", func(c *GameConfig) { c.Physics.Spawner.BonusChance = 2 }, "spawner.bonusChance"},
		{"zero interval", func(c *GameConfig) { c.Physics.Spawner.Interval = 0 }, "spawner.interval"},
		{"zero tile limit", func(c *GameConfig) { c.Physics.Map.MaxCells = 0 }, "map.maxCells"},
		{"missing bonus sprite", func(c *GameConfig) { c.Entities.Mouse.BonusSprite = SpriteConfig{} }, "mouse bonusSprite frame size"},
		{"player wider than a tile", func(c *GameConfig) { c.Entities.Player.Sprite.FrameWidth = 17 }, "player sprite frame 17x16 larger than map.tileSize 16"},
		{"bonus mouse taller than a tile", func(c *GameConfig) { c.Entities.Mouse.BonusSprite.FrameHeight = 20 }, "mouse bonusSprite frame 16x20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestGameConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGameConfig_ValidateReportsAll(t *testing.T) {
	cfg := createTestGameConfig()
	cfg.Physics.Map.TileSize = 0
	cfg.Entities.Player.Acceleration = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.tileSize")
	assert.Contains(t, err.Error(), "player.acceleration")
}

func TestGameConfig_ValidateFrameFitsTile(t *testing.T) {
	cfg := createTestGameConfig()
	cfg.Physics.Map.TileSize = 12
	cfg.Entities.Player.Sprite = SpriteConfig{FrameWidth: 12, FrameHeight: 12}
	cfg.Entities.Mouse.Sprite = SpriteConfig{FrameWidth: 8, FrameHeight: 12}
	cfg.Entities.Mouse.BonusSprite = SpriteConfig{FrameWidth: 10, FrameHeight: 10}

	assert.NoError(t, cfg.Validate(), "frames equal to the tile size are allowed")
}
