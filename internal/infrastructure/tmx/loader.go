package tmx

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/lafriks/go-tiled"
)

// Map is a parsed map document with its single tileset resolved
type Map struct {
	*Document
	Tileset *tiled.Tileset

	// AtlasPath is the tileset image path inside the same fs.FS,
	// empty when the tileset has no image.
	AtlasPath string
}

// Columns returns the tileset column count used to decode gids
func (m *Map) Columns() int {
	return m.Tileset.Columns
}

// Load reads a map and its tileset from fsys. Paths use forward slashes
// and the tileset source is resolved relative to the map.
func Load(fsys fs.FS, mapPath string) (*Map, error) {
	f, err := fsys.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", mapPath, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", mapPath, err)
	}
	if len(doc.Tilesets) == 0 {
		return nil, fmt.Errorf("load map %s: %w: no tileset", mapPath, ErrUnsupported)
	}

	ref := doc.Tilesets[0]
	m := &Map{Document: doc, Tileset: ref.Inline}
	tsDir := path.Dir(mapPath)

	if ref.Inline == nil {
		tsPath := path.Join(tsDir, ref.Source)
		ts, err := loadTileset(fsys, tsPath)
		if err != nil {
			return nil, fmt.Errorf("load map %s: %w", mapPath, err)
		}
		m.Tileset = ts
		tsDir = path.Dir(tsPath)
	}

	if m.Tileset.Image != nil && m.Tileset.Image.Source != "" {
		m.AtlasPath = path.Join(tsDir, m.Tileset.Image.Source)
	}
	return m, nil
}

func loadTileset(fsys fs.FS, tsPath string) (*tiled.Tileset, error) {
	f, err := fsys.Open(tsPath)
	if err != nil {
		return nil, fmt.Errorf("load tileset %s: %w", tsPath, err)
	}
	defer func() { _ = f.Close() }()

	ts, err := ParseTileset(f)
	if err != nil {
		return nil, fmt.Errorf("load tileset %s: %w", tsPath, err)
	}
	return ts, nil
}
