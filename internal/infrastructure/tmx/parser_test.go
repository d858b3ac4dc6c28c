package tmx

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/catscapade/internal/domain/entity"
)

// csvBody renders n comma-separated ids produced by fill, 16 per line
func csvBody(n int, fill func(i int) uint32) string {
	var b strings.Builder
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d", fill(i))
		if i < n-1 {
			b.WriteString(",")
		}
		if (i+1)%entity.ChunkSize == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func fillWith(v uint32) func(int) uint32 {
	return func(int) uint32 { return v }
}

func chunkXML(x, y int, body string) string {
	return fmt.Sprintf(`<chunk x="%d" y="%d" width="16" height="16">%s</chunk>`, x, y, body)
}

func layerXML(name string, chunks ...string) string {
	return fmt.Sprintf(`<layer id="1" name="%s" width="16" height="16">
  <data encoding="csv">
%s
  </data>
 </layer>`, name, strings.Join(chunks, "\n"))
}

func mapXML(layers ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="30" height="20" tilewidth="16" tileheight="16" infinite="1">
 <tileset firstgid="1" source="meadow.tsx"/>
 ` + strings.Join(layers, "\n ") + `
</map>`
}

func TestParseMap(t *testing.T) {
	src := mapXML(
		layerXML("Floor", chunkXML(0, 0, csvBody(256, fillWith(1))), chunkXML(-16, 16, csvBody(256, fillWith(2)))),
		`<objectgroup id="3" name="spawns"><object id="1" x="8" y="8"/></objectgroup>`,
		layerXML("collision", chunkXML(0, 0, csvBody(256, func(i int) uint32 {
			if i < 16 {
				return 9
			}
			return 0
		}))),
	)

	doc, err := ParseMap(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 16, doc.TileWidth)
	assert.Equal(t, 16, doc.TileHeight)
	require.Len(t, doc.Tilesets, 1)
	assert.Equal(t, "meadow.tsx", doc.Tilesets[0].Source)
	assert.Equal(t, uint32(1), doc.Tilesets[0].FirstGID)

	require.Len(t, doc.Layers, 2, "object groups are skipped")

	floorLayer := doc.Layers[0]
	assert.Equal(t, "Floor", floorLayer.Name)
	assert.Equal(t, entity.KindFloor, floorLayer.Kind)
	require.Len(t, floorLayer.Chunks, 2)
	assert.Equal(t, -16, floorLayer.Chunks[1].X)
	assert.Equal(t, 16, floorLayer.Chunks[1].Y)
	assert.Equal(t, uint32(2), floorLayer.Chunks[1].At(15, 15))

	collision := doc.Layers[1]
	assert.Equal(t, entity.KindCollision, collision.Kind)
	require.Len(t, collision.Chunks, 1)
	assert.Equal(t, uint32(9), collision.Chunks[0].At(15, 0))
	assert.Equal(t, uint32(0), collision.Chunks[0].At(0, 1))
}

func TestParseMap_DropsEmptyChunks(t *testing.T) {
	src := mapXML(layerXML("decor",
		chunkXML(0, 0, csvBody(256, fillWith(0))),
		chunkXML(16, 0, csvBody(256, fillWith(3))),
	))

	doc, err := ParseMap(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, doc.Layers, 1)
	require.Len(t, doc.Layers[0].Chunks, 1)
	assert.Equal(t, 16, doc.Layers[0].Chunks[0].X)
}

func TestParseMap_Groups(t *testing.T) {
	src := mapXML(
		layerXML("floor", chunkXML(0, 0, csvBody(256, fillWith(1)))),
		`<group id="4" name="walls">
  <group id="5" name="inner">
  `+layerXML("collision", chunkXML(0, 0, csvBody(256, fillWith(9))))+`
  </group>
 </group>`,
		layerXML("decor", chunkXML(16, 0, csvBody(256, fillWith(3)))),
	)

	doc, err := ParseMap(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, doc.Layers, 3)
	assert.Equal(t, entity.KindFloor, doc.Layers[0].Kind)
	assert.Equal(t, entity.KindCollision, doc.Layers[1].Kind)
	require.Len(t, doc.Layers[1].Chunks, 1)
	assert.Equal(t, uint32(9), doc.Layers[1].Chunks[0].At(7, 7))
	assert.Equal(t, entity.KindDecor, doc.Layers[2].Kind)
}

func TestParseMap_EmptyLayerKept(t *testing.T) {
	src := mapXML(`<layer id="1" name="decor"><data encoding="csv"></data></layer>`)

	doc, err := ParseMap(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Layers, 1)
	assert.Empty(t, doc.Layers[0].Chunks)
}

func TestParseMap_InlineTileset(t *testing.T) {
	src := `<map tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="inline" tilewidth="16" tileheight="16" tilecount="64" columns="8">
  <image source="atlas.png" width="128" height="128"/>
 </tileset>
` + layerXML("floor", chunkXML(0, 0, csvBody(256, fillWith(1)))) + `
</map>`

	doc, err := ParseMap(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, doc.Tilesets, 1)
	ts := doc.Tilesets[0].Inline
	require.NotNil(t, ts)
	assert.Equal(t, 8, ts.Columns)
	assert.Equal(t, "inline", ts.Name)
	require.NotNil(t, ts.Image)
	assert.Equal(t, "atlas.png", ts.Image.Source)
}

func TestParseMap_Errors(t *testing.T) {
	good := csvBody(256, fillWith(1))

	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "layer without name",
			src:  mapXML(`<layer id="1"><data encoding="csv"></data></layer>`),
			want: ErrMissingAttribute,
		},
		{
			name: "unknown layer name",
			src:  mapXML(layerXML("objects", chunkXML(0, 0, good))),
			want: ErrUnknownLayer,
		},
		{
			name: "chunk without y",
			src:  mapXML(layerXML("floor", `<chunk x="0">`+good+`</chunk>`)),
			want: ErrMissingAttribute,
		},
		{
			name: "non numeric chunk origin",
			src:  mapXML(layerXML("floor", `<chunk x="zero" y="0">`+good+`</chunk>`)),
			want: ErrBadNumber,
		},
		{
			name: "unknown layer inside a group",
			src:  mapXML(`<group id="2" name="g">`+layerXML("objects", chunkXML(0, 0, good))+`</group>`),
			want: ErrUnknownLayer,
		},
		{
			name: "offset group",
			src:  mapXML(`<group id="2" name="g" offsetx="8">`+layerXML("collision", chunkXML(0, 0, good))+`</group>`),
			want: ErrUnsupported,
		},
		{
			name: "unaligned chunk origin",
			src:  mapXML(layerXML("floor", chunkXML(8, 0, good))),
			want: ErrChunkOrigin,
		},
		{
			name: "chunk width not 16",
			src:  mapXML(layerXML("floor", `<chunk x="0" y="0" width="32" height="16">`+good+`</chunk>`)),
			want: ErrChunkSize,
		},
		{
			name: "too few values",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, csvBody(255, fillWith(1))))),
			want: ErrChunkSize,
		},
		{
			name: "too many values",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, csvBody(257, fillWith(1))))),
			want: ErrChunkSize,
		},
		{
			name: "empty chunk body",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, "  \n "))),
			want: ErrChunkSize,
		},
		{
			name: "non numeric value",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, "a,"+csvBody(255, fillWith(1))))),
			want: ErrBadNumber,
		},
		{
			name: "negative value",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, "-1,"+csvBody(255, fillWith(1))))),
			want: ErrBadNumber,
		},
		{
			name: "trailing comma",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, good+","))),
			want: ErrChunkSize,
		},
		{
			name: "missing delimiter",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, "1 1,"+csvBody(255, fillWith(1))))),
			want: ErrBadNumber,
		},
		{
			name: "flipped gid",
			src:  mapXML(layerXML("floor", chunkXML(0, 0, "2147483649,"+csvBody(255, fillWith(1))))),
			want: ErrUnsupported,
		},
		{
			name: "base64 encoding",
			src:  mapXML(`<layer name="floor"><data encoding="base64">AAAA</data></layer>`),
			want: ErrUnsupported,
		},
		{
			name: "finite map data",
			src:  mapXML(`<layer name="floor"><data encoding="csv">1,1,1,1</data></layer>`),
			want: ErrUnsupported,
		},
		{
			name: "second tileset",
			src:  strings.Replace(mapXML(), `<tileset firstgid="1" source="meadow.tsx"/>`, `<tileset firstgid="1" source="a.tsx"/><tileset firstgid="65" source="b.tsx"/>`, 1),
			want: ErrUnsupported,
		},
		{
			name: "tileset not starting at gid 1",
			src:  strings.Replace(mapXML(), `firstgid="1"`, `firstgid="2"`, 1),
			want: ErrUnsupported,
		},
		{
			name: "not a map",
			src:  `<world><maps/></world>`,
			want: ErrUnsupported,
		},
		{
			name: "unclosed element",
			src:  `<map><layer name="floor"><data encoding="csv">`,
			want: ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseMap(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Nil(t, doc, "no partial map on error")
			assert.ErrorIs(t, err, tt.want)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe), "error should be a *ParseError")
		})
	}
}

func TestParseMap_ErrorLocation(t *testing.T) {
	src := mapXML(
		layerXML("floor", chunkXML(0, 0, csvBody(256, fillWith(1)))),
		layerXML("walls collision", chunkXML(32, -16, csvBody(200, fillWith(1)))),
	)

	_, err := ParseMap(strings.NewReader(src))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "walls collision", pe.Layer)
	assert.True(t, pe.InChunk)
	assert.Equal(t, 32, pe.ChunkX)
	assert.Equal(t, -16, pe.ChunkY)
	assert.Greater(t, pe.Line, 20, "chunk is in the second layer")
	assert.Contains(t, pe.Error(), `layer "walls collision"`)
	assert.Contains(t, pe.Error(), "chunk (32,-16)")
}
