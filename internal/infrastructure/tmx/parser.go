// Package tmx reads Tiled maps saved as CSV-encoded infinite maps.
//
// The map document is tokenized with encoding/xml into layer and chunk
// records; compositing them into a grid is left to the caller. Tilesets
// decode into github.com/lafriks/go-tiled's Tileset model.
package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/younwookim/catscapade/internal/domain/entity"
)

// Tiled stores flip/rotation flags in the top bits of a gid
const flipMask = 0xE0000000

// Document is the structured content of a map file
type Document struct {
	TileWidth  int
	TileHeight int
	Tilesets   []TilesetRef
	Layers     []entity.Layer
}

// TilesetRef is a <tileset> entry of the map. External tilesets have a
// Source; inline ones are decoded in place.
type TilesetRef struct {
	FirstGID uint32
	Source   string
	Inline   *tiled.Tileset
}

type parser struct {
	dec *xml.Decoder
	doc Document

	sawMap bool
	layer  *entity.Layer
	inData bool

	chunk     *entity.Chunk
	chunkLine int
	chunkCol  int
	body      strings.Builder
}

// ParseMap reads a map document into layer and chunk records.
// All-zero chunks are dropped. Any malformed input fails with a *ParseError.
func ParseMap(r io.Reader) (*Document, error) {
	p := &parser{dec: xml.NewDecoder(r)}

	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, p.syntaxError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = p.start(t)
		case xml.EndElement:
			err = p.end(t)
		case xml.CharData:
			err = p.text(t)
		}
		if err != nil {
			return nil, err
		}
	}

	if !p.sawMap {
		return nil, p.errorf(ErrUnsupported, "no <map> element")
	}
	return &p.doc, nil
}

func (p *parser) start(t xml.StartElement) error {
	switch t.Name.Local {
	case "map":
		p.sawMap = true
		var err error
		if p.doc.TileWidth, _, err = intAttr(t, "tilewidth"); err != nil {
			return p.wrap(err)
		}
		if p.doc.TileHeight, _, err = intAttr(t, "tileheight"); err != nil {
			return p.wrap(err)
		}
		return nil

	case "tileset":
		return p.tileset(t)

	case "layer":
		name, ok := attr(t, "name")
		if !ok {
			return p.errorf(ErrMissingAttribute, "layer has no name")
		}
		kind, ok := entity.LayerKindFromName(name)
		if !ok {
			return p.errorf(ErrUnknownLayer, "layer %q is not floor, decor or collision", name)
		}
		p.layer = &entity.Layer{Name: name, Kind: kind}
		return nil

	case "data":
		if p.layer == nil {
			return p.errorf(ErrUnsupported, "<data> outside a layer")
		}
		if enc, _ := attr(t, "encoding"); enc != "csv" {
			return p.errorf(ErrUnsupported, "encoding %q, only csv is read", enc)
		}
		if comp, ok := attr(t, "compression"); ok && comp != "" {
			return p.errorf(ErrUnsupported, "compression %q", comp)
		}
		p.inData = true
		return nil

	case "chunk":
		return p.startChunk(t)

	case "group":
		// Nested layers are read as if they were top level
		for _, off := range []string{"offsetx", "offsety"} {
			v, _, err := floatAttr(t, off)
			if err != nil {
				return p.wrap(err)
			}
			if v != 0 {
				return p.errorf(ErrUnsupported, "group %s %g", off, v)
			}
		}
		return nil

	default:
		// objectgroup, imagelayer, properties and anything newer
		if err := p.dec.Skip(); err != nil {
			return p.syntaxError(err)
		}
		return nil
	}
}

func (p *parser) tileset(t xml.StartElement) error {
	if len(p.doc.Tilesets) > 0 {
		return p.errorf(ErrUnsupported, "more than one tileset")
	}

	firstGID, ok, err := intAttr(t, "firstgid")
	if err != nil {
		return p.wrap(err)
	}
	if !ok {
		return p.errorf(ErrMissingAttribute, "tileset has no firstgid")
	}
	if firstGID != 1 {
		return p.errorf(ErrUnsupported, "tileset firstgid %d, want 1", firstGID)
	}

	ref := TilesetRef{FirstGID: uint32(firstGID)}
	if src, ok := attr(t, "source"); ok {
		ref.Source = src
		if err := p.dec.Skip(); err != nil {
			return p.syntaxError(err)
		}
	} else {
		ts, err := decodeTileset(p.dec, t)
		if err != nil {
			return p.wrap(err)
		}
		ref.Inline = ts
	}

	p.doc.Tilesets = append(p.doc.Tilesets, ref)
	return nil
}

func (p *parser) startChunk(t xml.StartElement) error {
	if !p.inData {
		return p.errorf(ErrUnsupported, "<chunk> outside layer data")
	}

	x, okX, err := intAttr(t, "x")
	if err != nil {
		return p.wrap(err)
	}
	y, okY, err := intAttr(t, "y")
	if err != nil {
		return p.wrap(err)
	}
	if !okX || !okY {
		return p.errorf(ErrMissingAttribute, "chunk needs x and y")
	}

	p.chunk = &entity.Chunk{X: x, Y: y}
	p.chunkLine, p.chunkCol = p.dec.InputPos()
	p.body.Reset()

	for _, dim := range []string{"width", "height"} {
		v, ok, err := intAttr(t, dim)
		if err != nil {
			return p.wrap(err)
		}
		if ok && v != entity.ChunkSize {
			return p.errorf(ErrChunkSize, "chunk %s %d, want %d", dim, v, entity.ChunkSize)
		}
	}
	if x%entity.ChunkSize != 0 || y%entity.ChunkSize != 0 {
		return p.errorf(ErrChunkOrigin, "origin must be a multiple of %d", entity.ChunkSize)
	}
	return nil
}

func (p *parser) end(t xml.EndElement) error {
	switch t.Name.Local {
	case "chunk":
		if p.chunk == nil {
			return nil
		}
		if err := parseCSV(p.body.String(), &p.chunk.Data); err != nil {
			return p.chunkError(err)
		}
		if !p.chunk.IsEmpty() {
			p.layer.Chunks = append(p.layer.Chunks, *p.chunk)
		}
		p.chunk = nil
	case "data":
		p.inData = false
	case "layer":
		if p.layer != nil {
			p.doc.Layers = append(p.doc.Layers, *p.layer)
			p.layer = nil
		}
	}
	return nil
}

func (p *parser) text(t xml.CharData) error {
	if p.chunk != nil {
		p.body.Write(t)
		return nil
	}
	if p.inData && len(strings.TrimSpace(string(t))) > 0 {
		return p.errorf(ErrUnsupported, "tile data outside a chunk (finite map)")
	}
	return nil
}

// parseCSV reads exactly ChunkCells comma-separated ids into dst
func parseCSV(body string, dst *[entity.ChunkCells]uint32) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: no values", ErrChunkSize)
	}

	n := 0
	rest := body
	for {
		field := rest
		i := strings.IndexByte(rest, ',')
		if i >= 0 {
			field, rest = rest[:i], rest[i+1:]
		}
		if n == entity.ChunkCells {
			return fmt.Errorf("%w: more than %d values", ErrChunkSize, entity.ChunkCells)
		}

		field = strings.TrimSpace(field)
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: value %d %q", ErrBadNumber, n, field)
		}
		if v&flipMask != 0 {
			return fmt.Errorf("%w: flipped tile at value %d", ErrUnsupported, n)
		}
		dst[n] = uint32(v)
		n++

		if i < 0 {
			break
		}
	}

	if n != entity.ChunkCells {
		return fmt.Errorf("%w: got %d values, want %d", ErrChunkSize, n, entity.ChunkCells)
	}
	return nil
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// intAttr returns (0, false, nil) when the attribute is absent
func intAttr(t xml.StartElement, name string) (int, bool, error) {
	s, ok := attr(t, name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%q on <%s>", ErrBadNumber, name, s, t.Name.Local)
	}
	return v, true, nil
}

// floatAttr returns (0, false, nil) when the attribute is absent
func floatAttr(t xml.StartElement, name string) (float64, bool, error) {
	s, ok := attr(t, name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%q on <%s>", ErrBadNumber, name, s, t.Name.Local)
	}
	return v, true, nil
}

func (p *parser) position() *ParseError {
	line, col := p.dec.InputPos()
	pe := &ParseError{Line: line, Column: col}
	if p.layer != nil {
		pe.Layer = p.layer.Name
	}
	return pe
}

func (p *parser) wrap(err error) error {
	pe := p.position()
	pe.Err = err
	return pe
}

func (p *parser) errorf(sentinel error, format string, args ...any) error {
	return p.wrap(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

func (p *parser) chunkError(err error) error {
	pe := p.position()
	pe.Line, pe.Column = p.chunkLine, p.chunkCol
	pe.InChunk = true
	pe.ChunkX, pe.ChunkY = p.chunk.X, p.chunk.Y
	pe.Err = err
	return pe
}

func (p *parser) syntaxError(err error) error {
	pe := p.position()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		pe.Line = se.Line
	}
	pe.Err = fmt.Errorf("%w: %v", ErrSyntax, err)
	return pe
}
