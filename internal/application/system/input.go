package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the input read for one frame
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Pause         bool // just pressed
	Restart       bool // just pressed
	ToggleDebug   bool // just pressed
	ToggleStats   bool // just pressed
	SaveRecording bool // just pressed
}

// KeyBindings maps actions to keys. Any key in a list triggers the action.
type KeyBindings struct {
	Left, Right, Up, Down []ebiten.Key
	Pause                 []ebiten.Key
	Restart               []ebiten.Key
	ToggleDebug           []ebiten.Key
	ToggleStats           []ebiten.Key
	SaveRecording         []ebiten.Key
}

// DefaultKeyBindings returns WASD plus arrow keys for movement
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:          []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:         []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Up:            []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:          []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Pause:         []ebiten.Key{ebiten.KeyEscape},
		Restart:       []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace},
		ToggleDebug:   []ebiten.Key{ebiten.KeyTab},
		ToggleStats:   []ebiten.Key{ebiten.KeyF3},
		SaveRecording: []ebiten.Key{ebiten.KeyF5},
	}
}

// InputSystem reads the keyboard
type InputSystem struct {
	keys KeyBindings
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyBindings) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:          anyPressed(s.keys.Left),
		Right:         anyPressed(s.keys.Right),
		Up:            anyPressed(s.keys.Up),
		Down:          anyPressed(s.keys.Down),
		Pause:         anyJustPressed(s.keys.Pause),
		Restart:       anyJustPressed(s.keys.Restart),
		ToggleDebug:   anyJustPressed(s.keys.ToggleDebug),
		ToggleStats:   anyJustPressed(s.keys.ToggleStats),
		SaveRecording: anyJustPressed(s.keys.SaveRecording),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
