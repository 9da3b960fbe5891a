package engine2D

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws a Container's sprites into the scene area of the window.
type Renderer struct {
	Container    *Container
	SceneOffsetX float64
	SceneOffsetY float64
	SceneWidth   int
	SceneHeight  int
	RenderScale  float64
	BgColor      color.RGBA
}

func NewRenderer(container *Container, sceneWidth, sceneHeight int, bg color.RGBA) *Renderer {
	return &Renderer{
		Container:   container,
		SceneWidth:  sceneWidth,
		SceneHeight: sceneHeight,
		RenderScale: 1.0,
		BgColor:     bg,
	}
}

// UpdateViewport calculates and updates render scale and scene offsets based on window size.
func (r *Renderer) UpdateViewport(screenWidth, screenHeight int, scalingMode string) {
	scaleW := float64(screenWidth) / float64(r.SceneWidth)
	scaleH := float64(screenHeight) / float64(r.SceneHeight)

	if scalingMode == "fit" {
		r.RenderScale = math.Min(scaleW, scaleH)
	} else {
		r.RenderScale = math.Max(scaleW, scaleH)
	}

	r.SceneOffsetX = (float64(screenWidth) - float64(r.SceneWidth)*r.RenderScale) / 2
	r.SceneOffsetY = (float64(screenHeight) - float64(r.SceneHeight)*r.RenderScale) / 2
}

// ScreenRect maps a sprite to screen space for a camera whose left edge is at cameraX.
// Scene Y points up, screen Y points down.
func (r *Renderer) ScreenRect(s *SpriteNode, cameraX float64) rl.Rectangle {
	left, _, _, top := s.Bounds()
	x := r.SceneOffsetX + (left-cameraX)*r.RenderScale
	y := r.SceneOffsetY + (float64(r.SceneHeight)-top)*r.RenderScale
	return rl.NewRectangle(float32(x), float32(y), float32(s.size.X*r.RenderScale), float32(s.size.Y*r.RenderScale))
}

// SceneRect returns the window area the scene occupies.
func (r *Renderer) SceneRect() (x, y, w, h int32) {
	return int32(r.SceneOffsetX), int32(r.SceneOffsetY),
		int32(float64(r.SceneWidth) * r.RenderScale), int32(float64(r.SceneHeight) * r.RenderScale)
}

// Render draws all sprites back to front, clipped to the scene area.
func (r *Renderer) Render(cameraX float64) {
	rl.ClearBackground(rl.Black)

	sceneRectX, sceneRectY, sceneRectW, sceneRectH := r.SceneRect()
	rl.BeginScissorMode(sceneRectX, sceneRectY, sceneRectW, sceneRectH)
	rl.ClearBackground(rl.NewColor(r.BgColor.R, r.BgColor.G, r.BgColor.B, 255))

	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	for _, sprite := range r.Container.Children() {
		if !sprite.Visible || sprite.Texture == nil {
			continue
		}

		destRec := r.ScreenRect(sprite, cameraX)
		// Culling: check if sprite is outside screen
		if destRec.X+destRec.Width < 0 || destRec.X > screenW ||
			destRec.Y+destRec.Height < 0 || destRec.Y > screenH {
			continue
		}

		sourceRec := rl.NewRectangle(0, 0, float32(sprite.Texture.Width), float32(sprite.Texture.Height))
		rl.DrawTexturePro(*sprite.Texture, sourceRec, destRec, rl.NewVector2(0, 0), 0, rl.White)
	}

	rl.EndScissorMode()
}
