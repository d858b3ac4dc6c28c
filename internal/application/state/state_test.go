package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateGameOver, "GameOver"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameState_Next(t *testing.T) {
	tests := []struct {
		name  string
		from  GameState
		event Event
		want  GameState
	}{
		{"pause while playing", StatePlaying, EventPause, StatePaused},
		{"unpause", StatePaused, EventPause, StatePlaying},
		{"pause ignored after game over", StateGameOver, EventPause, StateGameOver},
		{"restart from game over", StateGameOver, EventRestart, StatePlaying},
		{"restart from pause", StatePaused, EventRestart, StatePlaying},
		{"restart ignored while playing", StatePlaying, EventRestart, StatePlaying},
		{"time up ends the round", StatePlaying, EventTimeUp, StateGameOver},
		{"time up ignored while paused", StatePaused, EventTimeUp, StatePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next(tt.event))
		})
	}
}

func TestGameState_Simulating(t *testing.T) {
	assert.True(t, StatePlaying.Simulating())
	assert.False(t, StatePaused.Simulating())
	assert.False(t, StateGameOver.Simulating())
}
