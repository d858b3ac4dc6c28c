package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/lafriks/go-tiled"
)

// ParseTileset reads a .tsx document. The columns attribute is required
// and must be positive; every tile id in the map is decoded against it.
func ParseTileset(r io.Reader) (*tiled.Tileset, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: fmt.Errorf("%w: no <tileset> element", ErrUnsupported)}
		}
		if err != nil {
			line, col := dec.InputPos()
			return nil, &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "tileset" {
			return nil, &ParseError{Err: fmt.Errorf("%w: root element <%s>", ErrUnsupported, start.Name.Local)}
		}

		ts, err := decodeTileset(dec, start)
		if err != nil {
			line, col := dec.InputPos()
			return nil, &ParseError{Line: line, Column: col, Err: err}
		}
		return ts, nil
	}
}

// decodeTileset validates columns on start and decodes the element body
func decodeTileset(dec *xml.Decoder, start xml.StartElement) (*tiled.Tileset, error) {
	columns, ok, err := intAttr(start, "columns")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: tileset has no columns", ErrMissingAttribute)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("%w: columns=%d", ErrBadNumber, columns)
	}

	var ts tiled.Tileset
	if err := dec.DecodeElement(&ts, &start); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	ts.Columns = columns
	return &ts, nil
}
