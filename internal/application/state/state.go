// Package state tracks where a round stands.
package state

// GameState represents the current state of a round
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
)

// Event is a round-level trigger
type Event int

const (
	EventPause   Event = iota // toggle pause
	EventRestart              // start a new round
	EventTimeUp               // the round clock ran out
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Next returns the state after e. Events that do not apply leave s unchanged.
func (s GameState) Next(e Event) GameState {
	switch e {
	case EventPause:
		switch s {
		case StatePlaying:
			return StatePaused
		case StatePaused:
			return StatePlaying
		}
	case EventRestart:
		if s == StatePaused || s == StateGameOver {
			return StatePlaying
		}
	case EventTimeUp:
		if s == StatePlaying {
			return StateGameOver
		}
	}
	return s
}

// Simulating reports whether the world advances in s
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
