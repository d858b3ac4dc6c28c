package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/catscapade/internal/application/game"
	"github.com/younwookim/catscapade/internal/application/scene/playing"
	"github.com/younwookim/catscapade/internal/application/system"
	"github.com/younwookim/catscapade/internal/infrastructure/asset"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
	"github.com/younwookim/catscapade/internal/infrastructure/persist"
)

const appName = "catscapade"

func main() {
	stageFlag := flag.String("stage", "meadow", "Stage to play")
	configsFlag := flag.String("configs", "", "Load configs from this directory instead of the embedded ones")
	watchFlag := flag.Bool("watch", false, "Reload tuning values when files under -configs change")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay a recording without a window and print the result")
	seedFlag := flag.Int64("seed", 0, "Fixed RNG seed; 0 picks a new seed every round")
	flag.Parse()

	loader, err := newLoader(*configsFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		res, err := replayFile(loader, cfg, *replayFlag, *stageFlag)
		if err != nil {
			log.Fatalf("Failed to replay %s: %v", *replayFlag, err)
		}
		fmt.Println(res)
		return
	}

	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	stage, err := system.LoadStage(loader.FS(), stageCfg, cfg.Physics)
	if err != nil {
		log.Fatalf("Failed to build stage: %v", err)
	}
	assets, err := asset.NewRegistry(loader.FS(), stage, cfg.Entities)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}
	fonts, err := asset.LoadFonts()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	opts := playing.Options{
		Config:      cfg,
		StageConfig: stageCfg,
		Stage:       stage,
		Assets:      assets,
		Fonts:       fonts,
		Seed:        *seedFlag,
		RecordPath:  *recordFlag,
	}

	// High scores are optional: play on without them
	if scores, err := persist.Open(appName); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	} else {
		opts.Scores = scores
	}

	if *watchFlag {
		if *configsFlag == "" {
			log.Fatalf("-watch needs -configs")
		}
		watcher, err := config.NewWatcher(*configsFlag)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *configsFlag, err)
		}
		defer func() { _ = watcher.Close() }()
		opts.Reload = loader
		opts.Changes = watcher
		log.Printf("Watching %s for changes", *configsFlag)
	}

	g := game.New(playing.New(opts), cfg.Physics.Display)
	defer g.Close()

	display := cfg.Physics.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(appName)
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game stopped: %v", err)
	}
}
