package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Player PlayerConfig `yaml:"player"`
	Mouse  MouseConfig  `yaml:"mouse"`
}

type PlayerConfig struct {
	ID           string       `yaml:"id"`
	Sprite       SpriteConfig `yaml:"sprite"`
	Acceleration float64      `yaml:"acceleration"`
	Damping      float64      `yaml:"damping"`
}

type MouseConfig struct {
	ID                string       `yaml:"id"`
	Sprite            SpriteConfig `yaml:"sprite"`
	BonusSprite       SpriteConfig `yaml:"bonusSprite"`
	Acceleration      float64      `yaml:"acceleration"`
	BonusAcceleration float64      `yaml:"bonusAcceleration"`
	Damping           float64      `yaml:"damping"`
	Score             int          `yaml:"score"`
	BonusScore        int          `yaml:"bonusScore"`
}

// SpriteConfig describes a sheet with one animation per row
type SpriteConfig struct {
	Sheet       string                     `yaml:"sheet"`
	FrameWidth  int                        `yaml:"frameWidth"`
	FrameHeight int                        `yaml:"frameHeight"`
	Animations  map[string]AnimationConfig `yaml:"animations"`
}

type AnimationConfig struct {
	Row    int `yaml:"row"`
	Frames int `yaml:"frames"`
	FPS    int `yaml:"fps"`
}
