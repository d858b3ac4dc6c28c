package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	Map      MapConfig      `yaml:"map"`
	Movement MovementConfig `yaml:"movement"`
	Behavior BehaviorConfig `yaml:"behavior"`
	Spawner  SpawnerConfig  `yaml:"spawner"`
	Round    RoundConfig    `yaml:"round"`
	Feedback FeedbackConfig `yaml:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// DefaultMaxCells bounds a composited map at 2048x2048 tiles
const DefaultMaxCells = 1 << 22

// MapConfig sets the world scale: one tile covers TileSize*RenderScale world pixels
type MapConfig struct {
	TileSize    int     `yaml:"tileSize"`
	RenderScale float64 `yaml:"renderScale"`
	// MaxCells caps the tile count of the composited grid
	MaxCells int `yaml:"maxCells"`
}

// CellSize returns the edge of one tile in world pixels
func (m MapConfig) CellSize() float64 {
	return float64(m.TileSize) * m.RenderScale
}

type MovementConfig struct {
	// Velocity components below Epsilon snap to zero after damping
	Epsilon float64 `yaml:"epsilon"`
}

// BehaviorConfig tunes the mouse flee/wander state machine
type BehaviorConfig struct {
	ScareDistance      float64 `yaml:"scareDistance"`      // pixels, center to center
	ScareCooldown      float64 `yaml:"scareCooldown"`      // seconds
	BonusScareCooldown float64 `yaml:"bonusScareCooldown"` // seconds
	RedirectMin        float64 `yaml:"redirectMin"`        // seconds
	RedirectMax        float64 `yaml:"redirectMax"`        // seconds
}

type SpawnerConfig struct {
	InitialDelay float64 `yaml:"initialDelay"` // seconds before the first wave
	Interval     float64 `yaml:"interval"`     // seconds between waves
	WaveSize     int     `yaml:"waveSize"`
	BonusChance  float64 `yaml:"bonusChance"` // 0..1 per spawned mouse
}

type RoundConfig struct {
	Duration float64 `yaml:"duration"` // seconds, 0 = untimed
}

type FeedbackConfig struct {
	PopupDuration  float64 `yaml:"popupDuration"`  // seconds a score popup lives
	PopupRise      float64 `yaml:"popupRise"`      // pixels a popup floats up
	BannerDuration float64 `yaml:"bannerDuration"` // seconds the wave banner shows
}
