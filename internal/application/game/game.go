// Package game runs the ebiten loop and hands control between scenes.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/catscapade/internal/application/scene"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a Game sized and clocked by display. The initial scene's
// OnEnter is called immediately.
func New(initial scene.Scene, display config.DisplayConfig) *Game {
	g := &Game{
		current: initial,
		screenW: display.ScreenWidth,
		screenH: display.ScreenHeight,
		dt:      1.0 / float64(max(1, display.Framerate)),
	}
	g.current.OnEnter()
	return g
}

// Update steps the current scene by one fixed tick and follows transitions
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// DT returns the fixed tick length in seconds
func (g *Game) DT() float64 {
	return g.dt
}

// Close exits the current scene
func (g *Game) Close() {
	g.current.OnExit()
}
