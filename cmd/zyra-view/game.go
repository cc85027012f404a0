package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/ecs/debugui"
	debugui_ebiten "github.com/plus3/zyra/ecs/debugui/ebiten"
	"github.com/plus3/zyra/engine"
	"github.com/plus3/zyra/scene"
	"go.uber.org/zap"
)

// Game implements ebiten.Game around an engine
type Game struct {
	engine    *engine.Engine
	backend   debugui_ebiten.ImguiBackend
	imgui     *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	scenePath string
	camera    Camera
	dt        float64
	paused    bool
}

// setup spawns the debug windows and the scene into a freshly reset world
func (g *Game) setup() error {
	world := g.engine.World()
	g.imgui = debugui_ebiten.Install(world, g.backend)
	debugui.SpawnDebugUI(world)
	debugui.AddSystems(world)
	g.input = ecs.NewSingleton[debugui.ImguiInputState](world)

	if g.scenePath == "" {
		return nil
	}
	s, err := scene.Load(g.scenePath)
	if err != nil {
		return err
	}
	if _, err := s.Spawn(world); err != nil {
		return err
	}
	return nil
}

func (g *Game) reset() {
	g.engine.Reset()
	if err := g.setup(); err != nil {
		g.engine.Logger().Error("reload failed", zap.Error(err))
	}
}

func (g *Game) Update() error {
	g.imgui.Get().BeginFrame()
	g.handleInput()

	// paused frames run with dt 0 so contacts and debug windows stay live
	dt := g.dt
	if g.paused {
		dt = 0
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			dt = g.dt
		}
	}
	g.engine.Step(dt)

	g.imgui.Get().EndFrame()
	return nil
}

func (g *Game) handleInput() {
	keyboardFree := true
	mouseFree := true
	if state := g.input.Get(); state != nil {
		keyboardFree = !state.WantCaptureKeyboard
		mouseFree = !state.WantCaptureMouse
	}

	if keyboardFree {
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.paused = !g.paused
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.reset()
		}
		g.camera.Pan(
			axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
			axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown),
		)
		if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
			g.camera.ZoomBy(1.25)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
			g.camera.ZoomBy(0.8)
		}
	}

	if mouseFree && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		wx, wy := g.camera.ToWorld(float64(x), float64(y))
		g.engine.World().Spawn(
			components.Tag{Name: "crate"},
			components.NewTransform(wx-8, wy-8),
			components.Motion{Friction: 200},
			components.NewPhysicsBody(components.BodyDynamic),
			components.NewColliderAABB(16, 16),
		)
	}
}

func axis(negative, positive ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	return v
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawColliders(screen, g.engine.World(), g.camera)

	clock := g.engine.Time()
	status := "running"
	if g.paused {
		status = "paused (N steps)"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"frame %d  t=%.2fs  entities %d  %s\nP pause  R reload  arrows pan  +/- zoom  click spawns",
		clock.Frame, clock.Elapsed, g.engine.World().Len(), status), 10, ScreenHeight-40)

	g.imgui.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
