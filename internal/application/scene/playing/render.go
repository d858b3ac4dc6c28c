package playing

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"golang.org/x/image/font"

	"github.com/younwookim/catscapade/internal/application/state"
	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/asset"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 46, 31, 255}
	colorFloor     = color.RGBA{60, 110, 60, 255}
	colorWall      = color.RGBA{40, 70, 40, 255}
	colorCat       = color.RGBA{230, 160, 60, 255}
	colorMouse     = color.RGBA{170, 170, 180, 255}
	colorBonus     = color.RGBA{255, 215, 0, 255}
	colorText      = color.RGBA{240, 240, 240, 255}
	colorGrid      = color.RGBA{255, 255, 255, 40}
	colorSolidBox  = color.RGBA{200, 50, 50, 90}
	colorActorBox  = color.RGBA{100, 100, 220, 140}
	colorPauseBG   = color.RGBA{0, 0, 0, 128}
	colorGameOver  = color.RGBA{20, 10, 0, 180}
	colorHighlight = color.RGBA{255, 215, 0, 255}
)

// parseHexColor reads "#rrggbb"; anything else yields fallback
func parseHexColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// formatClock renders seconds left as m:ss, rounding up
func formatClock(sec float64) string {
	s := int(math.Ceil(sec))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	p.camera.Follow(p.sim.Player().Center(), p.stage.Bounds())

	p.drawTiles(screen)
	p.sim.EachMouse(func(a *entity.Actor) { p.drawActor(screen, a) })
	p.drawActor(screen, p.sim.Player())
	if p.debug.ShowGrid {
		p.drawDebugGrid(screen)
	}
	p.drawEffects(screen)

	p.drawHUD(screen)
	if p.debug.ShowStats {
		ebitenutil.DebugPrintAt(screen, statsText(p.sim, ebiten.ActualTPS()), 4, 28)
	}

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	cell := p.stage.CellSize()
	x0, y0, x1, y1 := p.camera.VisibleTiles(cell)

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			tile, ok := p.stage.Grid.At(tx, ty)
			if !ok || tile.Kinds.Empty() {
				continue
			}
			r := p.stage.CellRect(tx, ty)
			x, y := p.camera.ToScreen(entity.Vec2{X: r.X, Y: r.Y})
			if p.drawTextures(screen, tile, x, y) {
				continue
			}

			c := colorFloor
			if tile.Solid {
				c = colorWall
			}
			ebitenutil.DrawRect(screen, x, y, cell, cell, c)
		}
	}
}

// drawTextures stacks a tile's atlas cells in layer order
func (p *Playing) drawTextures(screen *ebiten.Image, tile entity.Tile, x, y float64) bool {
	if p.assets == nil {
		return false
	}
	drawn := false
	for _, coord := range tile.Textures {
		img := p.assets.Tile(coord)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.stage.RenderScale, p.stage.RenderScale)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
		drawn = true
	}
	return drawn
}

func (p *Playing) drawActor(screen *ebiten.Image, a *entity.Actor) {
	x, y := p.camera.ToScreen(a.Position)

	var set *asset.SpriteSet
	if p.assets != nil {
		set = p.assets.Sprites(a)
	}
	if set == nil || set.Width == 0 || set.Height == 0 {
		ebitenutil.DrawRect(screen, x, y, a.Size.X, a.Size.Y, actorColor(a))
		return
	}

	tag := asset.TagIdle
	if a.IsMoving() {
		tag = asset.TagWalk
	}
	clip := set.Clip(tag)
	if clip == nil {
		ebitenutil.DrawRect(screen, x, y, a.Size.X, a.Size.Y, actorColor(a))
		return
	}
	img := clip.At(p.animClock)
	if img == nil {
		return
	}

	w, h := float64(set.Width), float64(set.Height)
	op := &ebiten.DrawImageOptions{}
	if math.Cos(a.Facing) < 0 {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	op.GeoM.Scale(a.Size.X/w, a.Size.Y/h)
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}

func actorColor(a *entity.Actor) color.Color {
	switch {
	case a.Kind == entity.ActorCat:
		return colorCat
	case a.IsBonus():
		return colorBonus
	default:
		return colorMouse
	}
}

func (p *Playing) drawDebugGrid(screen *ebiten.Image) {
	cell := p.stage.CellSize()
	x0, y0, x1, y1 := p.camera.VisibleTiles(cell)

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			r := p.stage.CellRect(tx, ty)
			x, y := p.camera.ToScreen(entity.Vec2{X: r.X, Y: r.Y})
			if p.stage.Grid.IsSolid(tx, ty) {
				ebitenutil.DrawRect(screen, x, y, cell, cell, colorSolidBox)
			}
			ebitenutil.DrawLine(screen, x, y, x+cell, y, colorGrid)
			ebitenutil.DrawLine(screen, x, y, x, y+cell, colorGrid)
		}
	}

	box := func(a *entity.Actor) {
		x, y := p.camera.ToScreen(a.Position)
		ebitenutil.DrawRect(screen, x, y, a.Size.X, a.Size.Y, colorActorBox)
		c := a.Center()
		cx, cy := p.camera.ToScreen(c)
		dir := a.Velocity.Scale(4)
		ebitenutil.DrawLine(screen, cx, cy, cx+dir.X, cy+dir.Y, colorText)
	}
	p.sim.EachMouse(box)
	box(p.sim.Player())
}

func (p *Playing) drawEffects(screen *ebiten.Image) {
	for _, pop := range p.effects.popups {
		x, y := p.camera.ToScreen(pop.at)
		c := colorText
		if pop.bonus {
			c = colorHighlight
		}
		p.drawText(screen, pop.text, p.hudFace(), int(x)-4, int(y-float64(pop.dy)), fade(c, pop.alpha))
	}

	if b := p.effects.banner; b != nil {
		p.drawCentered(screen, b.text, p.titleFace(), p.screenH/3, fade(colorHighlight, b.alpha))
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	left := fmt.Sprintf("Score %d  Best %d", p.sim.Score(), max(p.best, p.sim.Score()))
	p.drawText(screen, left, p.hudFace(), 4, 12, colorText)

	right := fmt.Sprintf("Wave %d", p.sim.Waves())
	if p.config.Physics.Round.Duration > 0 {
		right = formatClock(p.sim.Remaining()) + "  " + right
	}
	w, _ := p.measure(p.hudFace(), right)
	p.drawText(screen, right, p.hudFace(), p.screenW-w-4, 12, colorText)

	if p.recorder != nil && p.recorder.IsRecording() {
		ebitenutil.DrawRect(screen, float64(p.screenW-8), float64(p.screenH-8), 4, 4, colorSolidBox)
	}
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorPauseBG)
	p.drawCentered(screen, "PAUSED", p.titleFace(), p.screenH/2-8, colorText)
	p.drawCentered(screen, "Esc to resume  Z to restart", p.hudFace(), p.screenH/2+14, colorText)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorGameOver)
	p.drawCentered(screen, "TIME UP", p.titleFace(), p.screenH/2-24, colorText)

	summary := fmt.Sprintf("Score %d  Mice caught %d", p.sim.Score(), p.sim.Captures())
	p.drawCentered(screen, summary, p.hudFace(), p.screenH/2, colorText)
	if p.newBest {
		p.drawCentered(screen, "New best!", p.hudFace(), p.screenH/2+16, colorHighlight)
	}
	p.drawCentered(screen, "Press Z to play again", p.hudFace(), p.screenH/2+36, colorText)
}

func (p *Playing) hudFace() font.Face {
	if p.fonts == nil {
		return nil
	}
	return p.fonts.HUD
}

func (p *Playing) titleFace() font.Face {
	if p.fonts == nil {
		return nil
	}
	return p.fonts.Title
}

// drawText draws s with its baseline at y, or with the debug font when
// no face is loaded
func (p *Playing) drawText(screen *ebiten.Image, s string, face font.Face, x, y int, c color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y-12)
		return
	}
	text.Draw(screen, s, face, x, y, c)
}

func (p *Playing) drawCentered(screen *ebiten.Image, s string, face font.Face, y int, c color.Color) {
	w, _ := p.measure(face, s)
	p.drawText(screen, s, face, (p.screenW-w)/2, y, c)
}

// measure falls back to the 6x16 debug glyph cell
func (p *Playing) measure(face font.Face, s string) (int, int) {
	if face == nil {
		return 6 * len(s), 16
	}
	return asset.Measure(face, s)
}

// fade applies an alpha in [0,1] to an opaque color
func fade(c color.RGBA, alpha float32) color.NRGBA {
	a := max(0, min(1, alpha))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * a)}
}
