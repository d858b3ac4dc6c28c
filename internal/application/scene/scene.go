// Package scene defines the Scene interface the game loop drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one game screen. The loop delegates Update and Draw to the
// current scene and switches when Update returns a non-nil next scene.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil next scene
	// replaces this one; an error terminates the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current
	OnEnter()
	// OnExit runs when the scene is replaced or the game closes
	OnExit()
}
