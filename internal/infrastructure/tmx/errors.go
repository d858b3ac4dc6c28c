package tmx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSyntax           = errors.New("malformed document")
	ErrMissingAttribute = errors.New("missing attribute")
	ErrBadNumber        = errors.New("malformed number")
	ErrChunkSize        = errors.New("wrong chunk size")
	ErrChunkOrigin      = errors.New("chunk origin not aligned")
	ErrUnknownLayer     = errors.New("unknown layer kind")
	ErrUnsupported      = errors.New("unsupported map feature")
)

// ParseError locates a failure inside a map or tileset document
type ParseError struct {
	Line   int
	Column int
	Layer  string // empty outside a layer

	InChunk        bool
	ChunkX, ChunkY int

	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d:%d", e.Line, e.Column)
	if e.Layer != "" {
		fmt.Fprintf(&b, ": layer %q", e.Layer)
	}
	if e.InChunk {
		fmt.Fprintf(&b, ": chunk (%d,%d)", e.ChunkX, e.ChunkY)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
