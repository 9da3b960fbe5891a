package main

import (
	"infinite-parallax/internal/camera"
	"infinite-parallax/internal/debug"
	"infinite-parallax/internal/engine2D"
	"infinite-parallax/internal/parallax"
	"infinite-parallax/internal/scene"
	"infinite-parallax/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	scene        *scene.Scene
	textures     *engine2D.TextureCache
	renderer     *engine2D.Renderer
	controller   *parallax.Controller
	rig          *camera.Rig
	mode         camera.Mode
	layerNames   []string
	scalingMode  string
	debugOverlay *debug.Overlay
	noX11        bool
}

func NewWindow(s *scene.Scene, scalingMode string) (*Window, error) {
	mode, err := camera.ParseMode(s.Camera.Mode)
	if err != nil {
		return nil, err
	}

	textures := engine2D.NewTextureCache()
	container := engine2D.NewContainer(textures)

	controller := parallax.NewController(container)
	if err := controller.Setup(s.ParallaxConfig()); err != nil {
		textures.Unload()
		return nil, err
	}
	if err := controller.AddLayers(s.ImageNames(), s.LayerNames()); err != nil {
		textures.Unload()
		return nil, err
	}
	utils.Info("Parallax: %d tiles across %d layers", controller.TileCount(), len(s.Layers))

	rig := camera.NewRig(s.Origin.X, float64(s.Resolution.Width), s.Camera.Speed)
	rig.Smoothness = *s.Camera.Smoothness

	return &Window{
		scene:        s,
		textures:     textures,
		renderer:     engine2D.NewRenderer(container, s.Resolution.Width, s.Resolution.Height, s.BackgroundColor()),
		controller:   controller,
		rig:          rig,
		mode:         mode,
		layerNames:   controller.LayerNames(),
		scalingMode:  scalingMode,
		debugOverlay: debug.NewOverlay(),
	}, nil
}

func (window *Window) Run(fps int32) {
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	deltaTime := float64(rl.GetFrameTime())

	window.renderer.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight(), window.scalingMode)

	deltaX := window.rig.Step(window.inputAxis(), deltaTime)
	if err := window.controller.MoveBackground(deltaX, window.rig, window.layerNames); err != nil {
		utils.Error("Parallax: %v", err)
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

// inputAxis returns the requested camera direction: -1 left, 1 right.
func (window *Window) inputAxis() float64 {
	keys := 0.0
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		keys++
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		keys--
	}

	switch window.mode {
	case camera.ModeAuto:
		if keys != 0 {
			return keys
		}
		return 1
	case camera.ModePointer:
		return window.pointerAxis()
	}
	return keys
}

func (window *Window) pointerAxis() float64 {
	deadzone := *window.scene.Camera.Deadzone

	if !window.noX11 {
		x, _, err := utils.GetGlobalMousePosition()
		if err == nil {
			var rootWidth int
			if rootWidth, _, err = utils.GetRootSize(); err == nil {
				return camera.PointerAxis(x, rootWidth, deadzone)
			}
		}
		utils.Warn("X11 pointer unavailable (%v), using the window mouse position", err)
		window.noX11 = true
	}

	mouse := rl.GetMousePosition()
	return camera.PointerAxis(int(mouse.X), rl.GetScreenWidth(), deadzone)
}

func (window *Window) Draw() {
	window.renderer.Render(window.rig.X())

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.renderer, window.controller, window.rig)
	}
}

func (window *Window) Close() {
	window.textures.Unload()
	utils.CloseX11()
}
