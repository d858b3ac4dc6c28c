package config

// StageConfig is the root config for stage YAML files
type StageConfig struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Map         string           `yaml:"map"` // .tmx path relative to the config root
	Background  BackgroundConfig `yaml:"background"`
	PlayerSpawn PositionConfig   `yaml:"playerSpawn"` // tile coordinates

	// Key is the name the stage was loaded by (stages/<Key>.yaml)
	Key string `yaml:"-"`
}

type BackgroundConfig struct {
	Color string `yaml:"color"` // #rrggbb
}

type PositionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}
