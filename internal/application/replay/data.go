package replay

import (
	"github.com/younwookim/catscapade/internal/application/system"
)

// Version tags the recording format
const Version = "2"

// FrameInput records the movement keys held during one frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
}

// NewFrameInput captures the movement part of in
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{F: frame, L: in.Left, R: in.Right, U: in.Up, D: in.Down}
}

// Input expands the frame back into an input state
func (f FrameInput) Input() system.InputState {
	return system.InputState{Left: f.L, Right: f.R, Up: f.U, Down: f.D}
}

// ReplayData contains all data needed to replay one round
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
