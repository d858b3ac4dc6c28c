package main

import (
	"fmt"

	"github.com/younwookim/catscapade/internal/application/replay"
	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/ecs"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// ReplayResult summarizes a headless replay
type ReplayResult struct {
	Stage    string
	Seed     int64
	Frames   int
	Score    int
	Captures int
	Waves    int
}

func (r ReplayResult) String() string {
	return fmt.Sprintf("stage=%s seed=%d frames=%d score=%d captures=%d waves=%d",
		r.Stage, r.Seed, r.Frames, r.Score, r.Captures, r.Waves)
}

// runReplay steps a fresh simulation through every recorded frame, stopping
// early if a timed round runs out
func runReplay(cfg *config.GameConfig, stage *entity.Stage, data replay.ReplayData) ReplayResult {
	sim := ecs.NewSimulation(cfg, stage, data.Seed)
	replayer := replay.NewReplayer(data)
	dt := 1.0 / float64(cfg.Physics.Display.Framerate)

	for !sim.Over() {
		in, ok := replayer.GetInput()
		if !ok {
			break
		}
		sim.Step(system.MoveIntent(in), dt)
	}

	return ReplayResult{
		Stage:    data.Stage,
		Seed:     data.Seed,
		Frames:   sim.Frame(),
		Score:    sim.Score(),
		Captures: sim.Captures(),
		Waves:    sim.Waves(),
	}
}

// replayFile loads a recording and the stage it was made on, then replays it.
// stageName is used when the recording does not name its stage.
func replayFile(loader *config.Loader, cfg *config.GameConfig, path, stageName string) (ReplayResult, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return ReplayResult{}, err
	}
	if data.Stage != "" {
		stageName = data.Stage
	}
	data.Stage = stageName

	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("failed to load stage: %w", err)
	}
	stage, err := system.LoadStage(loader.FS(), stageCfg, cfg.Physics)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("failed to build stage: %w", err)
	}
	return runReplay(cfg, stage, *data), nil
}
