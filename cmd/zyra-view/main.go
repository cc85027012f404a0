// Command zyra-view opens a window on a running scene: colliders are drawn by
// body type, touching colliders are highlighted and the debug windows are
// available on top.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/zyra/ecs/debugui"
	debugui_ebiten "github.com/plus3/zyra/ecs/debugui/ebiten"
	"github.com/plus3/zyra/engine"
	"github.com/plus3/zyra/internal/logging"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	configPath := flag.String("config", "", "Engine config YAML; defaults are used when empty.")
	scenePath := flag.String("scene", "", "Scene YAML to load.")
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	eng, err := engine.New(cfg,
		engine.WithLogger(logger),
		engine.WithComponents(debugui.RegisterDebugUIComponents))
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	game := &Game{
		engine:    eng,
		backend:   debugui_ebiten.NewImguiBackend("zyra", ScreenWidth, ScreenHeight),
		scenePath: *scenePath,
		camera:    Camera{Zoom: 1},
		dt:        1 / float64(cfg.TickRate),
	}
	if err := game.setup(); err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
