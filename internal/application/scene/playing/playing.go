// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/younwookim/catscapade/internal/application/scene"
	"github.com/younwookim/catscapade/internal/application/state"
	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/ecs"
	"github.com/younwookim/catscapade/internal/infrastructure/asset"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// HighScores is the persistence the scene submits finished rounds to
type HighScores interface {
	Best(stage string) (int, error)
	Submit(stage string, score, captures int) (bool, error)
}

// ConfigSource reloads tuning values
type ConfigSource interface {
	LoadAll() (*config.GameConfig, error)
}

// ChangeFeed reports changed config files without blocking
type ChangeFeed interface {
	Poll() (string, bool)
}

// Options configures a Playing scene. Only Config, StageConfig and Stage
// are required.
type Options struct {
	Config      *config.GameConfig
	StageConfig *config.StageConfig
	Stage       *entity.Stage

	Assets *asset.Registry // nil draws flat rectangles
	Fonts  *asset.Fonts    // nil uses the debug font
	Scores HighScores

	// Hot reload: both set to enable
	Reload  ConfigSource
	Changes ChangeFeed

	Seed       int64  // 0 picks a new seed every round
	RecordPath string // empty disables recording
	Keys       *system.KeyBindings
}

// Playing is the main gameplay scene
type Playing struct {
	config     *config.GameConfig
	stageCfg   *config.StageConfig
	stage      *entity.Stage
	state      state.GameState
	sim        *ecs.Simulation
	input      *system.InputSystem
	camera     *Camera
	effects    *Effects
	debug      DebugContext
	background color.Color
	screenW    int
	screenH    int
	animClock  time.Duration

	assets *asset.Registry
	fonts  *asset.Fonts

	scores  HighScores
	best    int
	newBest bool

	reload  ConfigSource
	changes ChangeFeed

	// Deterministic RNG
	seed      int64
	fixedSeed bool

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene
func New(opts Options) *Playing {
	keys := system.DefaultKeyBindings()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	display := opts.Config.Physics.Display
	p := &Playing{
		config:         opts.Config,
		stageCfg:       opts.StageConfig,
		stage:          opts.Stage,
		state:          state.StatePlaying,
		input:          system.NewInputSystem(keys),
		camera:         NewCamera(display.ScreenWidth, display.ScreenHeight),
		effects:        NewEffects(opts.Config.Physics.Feedback),
		background:     parseHexColor(opts.StageConfig.Background.Color, colorBG),
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		assets:         opts.Assets,
		fonts:          opts.Fonts,
		scores:         opts.Scores,
		reload:         opts.Reload,
		changes:        opts.Changes,
		seed:           opts.Seed,
		fixedSeed:      opts.Seed != 0,
		recordFilename: opts.RecordPath,
	}
	if !p.fixedSeed {
		p.seed = time.Now().UnixNano()
	}
	p.sim = ecs.NewSimulation(p.config, p.stage, p.seed)
	p.loadBest()
	p.startRecording()
	return p
}

// scoreKey names the stage in the high-score store
func (p *Playing) scoreKey() string {
	if p.stageCfg.ID != "" {
		return p.stageCfg.ID
	}
	return p.stage.Name
}

// stageRef names the stage in recordings so replay can load it again
func (p *Playing) stageRef() string {
	if p.stageCfg.Key != "" {
		return p.stageCfg.Key
	}
	return p.scoreKey()
}

func (p *Playing) loadBest() {
	if p.scores == nil {
		return
	}
	best, err := p.scores.Best(p.scoreKey())
	if err != nil {
		log.Printf("Failed to load high score: %v", err)
		return
	}
	p.best = best
}

func (p *Playing) startRecording() {
	if p.recordFilename == "" {
		return
	}
	p.recorder = NewRecorder(p.seed, p.stageRef())
	log.Printf("Recording enabled: %s (seed: %d)", p.recordFilename, p.seed)
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.update(p.input.GetInput(), dt)
	return nil, nil // nil = stay on this scene
}

func (p *Playing) update(in system.InputState, dt float64) {
	p.reloadConfig()
	p.debug.Handle(in)

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(in, dt)
	case state.StatePaused:
		if in.Pause {
			p.state = p.state.Next(state.EventPause)
		} else if in.Restart {
			p.restart()
		}
	case state.StateGameOver:
		if in.Restart {
			p.restart()
		}
	}
}

func (p *Playing) updatePlaying(in system.InputState, dt float64) {
	if in.Pause {
		p.state = p.state.Next(state.EventPause)
		return
	}

	// F5: save recording manually
	if in.SaveRecording {
		p.saveRecording()
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	res := p.sim.Step(system.MoveIntent(in), dt)
	p.animClock += time.Duration(dt * float64(time.Second))

	for _, mouse := range res.Captured {
		p.effects.Popup(fmt.Sprintf("+%d", mouse.Score), mouse.Center(), mouse.IsBonus())
	}
	if res.Spawned > 0 {
		p.effects.Banner(fmt.Sprintf("Wave %d", res.Wave))
		if p.debug.Enabled() {
			log.Printf("Wave %d: %d mice (frame %d)", res.Wave, res.Spawned, p.sim.Frame())
		}
	}
	p.effects.Update(dt)

	if p.sim.Over() {
		p.state = p.state.Next(state.EventTimeUp)
		p.finishRound()
	}
}

// finishRound submits the score and closes the recording
func (p *Playing) finishRound() {
	score := p.sim.Score()
	if p.scores != nil {
		beat, err := p.scores.Submit(p.scoreKey(), score, p.sim.Captures())
		if err != nil {
			log.Printf("Failed to save high score: %v", err)
		} else if beat {
			log.Printf("New high score on %s: %d", p.scoreKey(), score)
		}
		p.newBest = beat
	}
	p.best = max(p.best, score)

	if p.recorder != nil {
		p.saveRecording()
		p.recorder.Stop()
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

func (p *Playing) restart() {
	if !p.fixedSeed {
		p.seed = time.Now().UnixNano()
	}
	p.sim = ecs.NewSimulation(p.config, p.stage, p.seed)
	p.state = p.state.Next(state.EventRestart)
	p.effects.Reset()
	p.animClock = 0
	p.newBest = false

	if p.recordFilename != "" {
		p.recorder = NewRecorder(p.seed, p.stageRef())
		log.Printf("Recording restarted (seed: %d)", p.seed)
	}
}

// reloadConfig applies edited tuning files to the running round
func (p *Playing) reloadConfig() {
	if p.reload == nil || p.changes == nil {
		return
	}

	var changed []string
	for {
		path, ok := p.changes.Poll()
		if !ok {
			break
		}
		changed = append(changed, filepath.Base(path))
	}
	if len(changed) == 0 {
		return
	}

	cfg, err := p.reload.LoadAll()
	if err != nil {
		log.Printf("Failed to reload config: %v", err)
		return
	}
	p.config = cfg
	p.sim.ApplyConfig(cfg)
	p.effects.SetConfig(cfg.Physics.Feedback)
	log.Printf("Config reloaded: %v", changed)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit saves a recording that is still open
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.IsRecording() {
		p.saveRecording()
	}
}

// State returns the round state
func (p *Playing) State() state.GameState {
	return p.state
}

// Simulation returns the running simulation
func (p *Playing) Simulation() *ecs.Simulation {
	return p.sim
}
