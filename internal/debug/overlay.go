package debug

import (
	"fmt"

	"infinite-parallax/internal/camera"
	"infinite-parallax/internal/engine2D"
	"infinite-parallax/internal/parallax"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Overlay draws tile bounds and scroll state on top of the scene.
type Overlay struct {
	ShowBoundingBoxes bool
	fontHeight        int32
	lineHeight        int32
}

func NewOverlay() *Overlay {
	return &Overlay{
		ShowBoundingBoxes: true,
		fontHeight:        16,
		lineHeight:        20,
	}
}

var layerColors = []rl.Color{
	rl.NewColor(0, 255, 0, 255),
	rl.NewColor(0, 255, 255, 255),
	rl.NewColor(255, 255, 0, 255),
	rl.NewColor(255, 0, 255, 255),
	rl.NewColor(255, 128, 0, 255),
}

func layerColor(layer int) rl.Color {
	return layerColors[layer%len(layerColors)]
}

func (d *Overlay) Update() {
	if rl.IsKeyPressed(rl.KeyB) {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}
}

func (d *Overlay) Draw(renderer *engine2D.Renderer, controller *parallax.Controller, rig *camera.Rig) {
	if d.ShowBoundingBoxes {
		d.drawTileBoundingBoxes(renderer, controller, rig.X())
		d.drawViewport(renderer)
	}
	d.drawStats(controller, rig)
}

func (d *Overlay) drawTileBoundingBoxes(renderer *engine2D.Renderer, controller *parallax.Controller, cameraX float64) {
	for _, layer := range controller.Layers() {
		col := layerColor(layer.Index)
		for _, tile := range layer.Tiles {
			node, ok := tile.Sprite.(*engine2D.SpriteNode)
			if !ok {
				continue
			}
			rect := renderer.ScreenRect(node, cameraX)
			// Inset deeper layers so overlapping outlines stay readable.
			inset := float32(layer.Index * 3)
			rl.DrawRectangleLines(int32(rect.X+inset), int32(rect.Y+inset), int32(rect.Width-2*inset), int32(rect.Height-2*inset), col)
			rl.DrawText(fmt.Sprintf("L%d S%d", layer.Index, tile.Slot), int32(rect.X+inset+4), int32(rect.Y+inset+4+float32(layer.Index)*float32(d.lineHeight)), d.fontHeight, col)

			// Draw anchor point as a small red rectangle
			rl.DrawRectangle(int32(rect.X)-2, int32(rect.Y+rect.Height)-2, 4, 4, rl.Red)
		}
	}
}

func (d *Overlay) drawViewport(renderer *engine2D.Renderer) {
	x, y, w, h := renderer.SceneRect()
	rl.DrawRectangleLines(x, y, w, h, rl.Red)
}

func (d *Overlay) drawStats(controller *parallax.Controller, rig *camera.Rig) {
	cfg := controller.Config()
	lines := []string{
		fmt.Sprintf("FPS: %d  Frame: %.2f ms", rl.GetFPS(), rl.GetFrameTime()*1000),
		fmt.Sprintf("Camera x=%.1f view=%.0f velocity=%.1f travelled=%.1f", rig.X(), rig.ViewportWidth(), rig.Velocity(), rig.Travelled),
		fmt.Sprintf("Tiles: %d (%d layers x %d)  tileWidth=%.0f", controller.TileCount(), cfg.LayerCount, cfg.TilesPerLayer(), cfg.TileWidth),
	}
	for _, layer := range controller.Layers() {
		minX, maxX := 0.0, 0.0
		for i, tile := range layer.Tiles {
			if i == 0 || tile.X() < minX {
				minX = tile.X()
			}
			if i == 0 || tile.X() > maxX {
				maxX = tile.X()
			}
		}
		lines = append(lines, fmt.Sprintf("  L%d %-12s depth=%d speed=1/%.0f x=[%.1f, %.1f]",
			layer.Index, layer.Name, parallax.Depth(layer.Index), parallax.SpeedDivisor(layer.Index), minX, maxX))
	}

	height := int32(len(lines))*d.lineHeight + 10
	rl.DrawRectangle(5, 5, 620, height, rl.NewColor(0, 0, 0, 160))
	for i, line := range lines {
		rl.DrawText(line, 10, 10+int32(i)*d.lineHeight, d.fontHeight, rl.White)
	}
}
