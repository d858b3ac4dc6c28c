package main

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
