package asset

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts are the HUD and overlay faces
type Fonts struct {
	HUD   font.Face
	Title font.Face
}

// LoadFonts parses the bundled Go Regular face at HUD and title sizes
func LoadFonts() (*Fonts, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Fonts{
		HUD:   truetype.NewFace(tt, &truetype.Options{Size: 10, Hinting: font.HintingFull}),
		Title: truetype.NewFace(tt, &truetype.Options{Size: 20, Hinting: font.HintingFull}),
	}, nil
}

// Measure returns the advance width and line height of s in face
func Measure(face font.Face, s string) (width, height int) {
	adv := font.MeasureString(face, s)
	m := face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}
